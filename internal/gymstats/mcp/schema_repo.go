package mcp

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaRepo provides the training tables' schema (information_schema) data.
type SchemaRepo interface {
	GetTrainingColumns(ctx context.Context) ([]SchemaColumn, error)
}

// SchemaColumn represents one row from information_schema.columns for training tables.
type SchemaColumn struct {
	TableSchema string
	TableName   string
	ColumnName  string
	DataType    string
	IsNullable  string
	ColumnDef   *string
}

var trainingTables = []string{"exercise", "workout", "workout_set", "warmup"}

type poolSchemaRepo struct {
	pool *pgxpool.Pool
}

// NewPoolSchemaRepo returns a SchemaRepo that uses the given pool.
func NewPoolSchemaRepo(pool *pgxpool.Pool) SchemaRepo {
	return &poolSchemaRepo{pool: pool}
}

func (r *poolSchemaRepo) GetTrainingColumns(ctx context.Context) ([]SchemaColumn, error) {
	query := `
		SELECT table_schema, table_name, column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
		ORDER BY table_name, ordinal_position`
	rows, err := r.pool.Query(ctx, query, trainingTables)
	if err != nil {
		return nil, fmt.Errorf("query information_schema: %w", err)
	}

	cols, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SchemaColumn, error) {
		var c SchemaColumn
		err := row.Scan(&c.TableSchema, &c.TableName, &c.ColumnName, &c.DataType, &c.IsNullable, &c.ColumnDef)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect column rows: %w", err)
	}
	return cols, nil
}
