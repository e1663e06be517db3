package store

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	pgdriver "github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Config holds connection settings for the template store.
type Config struct {
	DSN   string
	Debug bool
}

// Database wraps the bun connection.
type Database struct {
	bun *bun.DB
}

// NewDatabase opens a Postgres connection through pgdriver.
func NewDatabase(cfg Config) (*Database, error) {
	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN))
	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Database{bun: db}, nil
}

// Bun exposes the underlying bun.DB.
func (d *Database) Bun() *bun.DB {
	return d.bun
}

// Close releases the connection pool.
func (d *Database) Close() error {
	return d.bun.Close()
}

// Ping verifies connectivity.
func (d *Database) Ping(ctx context.Context) error {
	return d.bun.PingContext(ctx)
}

// Bootstrap creates the pgvector extension, the prompt_versions table
// and its indexes when missing.
func (d *Database) Bootstrap(ctx context.Context) error {
	if _, err := d.bun.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return err
	}
	if _, err := d.bun.NewCreateTable().
		Model((*PromptVersion)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}
	_, err := d.bun.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS prompt_versions_name_version ON prompt_versions (name, version)`)
	return err
}
