package xpgx

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the store's view of a Postgres connection pool: squirrel
// builders in, scanned structs out.
type Pool interface {
	Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error)
	Getx(ctx context.Context, dest interface{}, sqlizer squirrel.Sqlizer) error
	Selectx(ctx context.Context, dest interface{}, sqlizer squirrel.Sqlizer) error
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

type pool struct {
	*pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	return &pool{Pool: p}, nil
}

func (p *pool) Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build query: %w", err)
	}

	return p.Pool.Exec(ctx, sql, args...)
}

func (p *pool) Getx(ctx context.Context, dest interface{}, sqlizer squirrel.Sqlizer) error {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	return pgxscan.Get(ctx, p.Pool, dest, sql, args...)
}

func (p *pool) Selectx(ctx context.Context, dest interface{}, sqlizer squirrel.Sqlizer) error {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	return pgxscan.Select(ctx, p.Pool, dest, sql, args...)
}

func (p *pool) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return p.Pool.Exec(ctx, sql, args...)
}

func (p *pool) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}
