package repomanager

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/chainvote/internal/server/repositories/users"
)

// MemoryDSN selects the in-process store.
const MemoryDSN = "memory://"

// TxFunc runs inside one store transaction with a repository bound to it.
type TxFunc func(ctx context.Context, users users.Repository) error

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	WithTx(ctx context.Context, fn TxFunc) error
	Ping(ctx context.Context) error
	Close() error
}

// openPostgres is a seam so Open can be tested without a database.
var openPostgres = func(ctx context.Context, dsn string) (RepositoryManager, error) {
	return NewPostgresRepositoryManager(ctx, dsn)
}

// Open returns the manager for dsn: the in-memory store for MemoryDSN,
// PostgreSQL otherwise.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, MemoryDSN) {
		return NewMemoryRepositoryManager(), nil
	}
	return openPostgres(ctx, dsn)
}
