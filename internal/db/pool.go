package db

import (
	"context"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewDBPoolParams struct {
	DBHost         string
	DBPort         string
	DBName         string
	TracingEnabled bool
	// AppName shows up in pg_stat_activity; empty leaves the server default.
	AppName string
	// MaxConns overrides the pgxpool default when positive.
	MaxConns int32
}

func (p NewDBPoolParams) ConnString() string {
	return fmt.Sprintf(
		"postgres://postgres@%s:%s/%s",
		p.DBHost, p.DBPort, p.DBName,
	)
}

func (p NewDBPoolParams) poolConfig() (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(p.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if p.AppName != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = p.AppName
	}
	if p.MaxConns > 0 {
		poolConfig.MaxConns = p.MaxConns
		if poolConfig.MinConns > p.MaxConns {
			poolConfig.MinConns = p.MaxConns
		}
	}
	if p.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}
	return poolConfig, nil
}

func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := params.poolConfig()
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return db, nil
}
