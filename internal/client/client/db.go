package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/chainvote/internal/client/migrations"
	"github.com/dmitrijs2005/chainvote/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/chainvote/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// sessionPool keeps a single connection so ":memory:" databases survive
// between calls.
var sessionPool = dbx.PoolOptions{MaxOpenConns: 1, MaxIdleConns: 1}

// Repositories bundles the local session database and its repositories.
type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
}

// Close releases the underlying database.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the sqlite database at dsn and
// brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := dbx.Open(ctx, "sqlite", dsn, sessionPool)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
	}, nil
}
