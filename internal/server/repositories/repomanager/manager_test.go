package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/chainvote/internal/server/models"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/users"
)

func TestOpen_Memory(t *testing.T) {
	m, err := Open(context.Background(), MemoryDSN)
	require.NoError(t, err)
	defer m.Close()

	_, ok := m.(*MemoryRepositoryManager)
	assert.True(t, ok)
	assert.NoError(t, m.RunMigrations(context.Background()))
	assert.NoError(t, m.Ping(context.Background()))
}

func TestOpen_Postgres(t *testing.T) {
	orig := openPostgres
	defer func() { openPostgres = orig }()

	var gotDSN string
	openPostgres = func(ctx context.Context, dsn string) (RepositoryManager, error) {
		gotDSN = dsn
		return nil, errors.New("no db")
	}

	_, err := Open(context.Background(), "postgres://u:p@h/db")
	assert.EqualError(t, err, "no db")
	assert.Equal(t, "postgres://u:p@h/db", gotDSN)
}

func TestMemoryManager_WithTxSharesStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()

	err := m.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.Create(ctx, &models.User{WalletAddress: "a", WalletIndex: "idx"})
		return err
	})
	require.NoError(t, err)

	n, err := m.Users().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemoryManager_WithTxCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemoryRepositoryManager()
	called := false
	err := m.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.ErrorIs(t, m.Ping(ctx), context.Canceled)
}
