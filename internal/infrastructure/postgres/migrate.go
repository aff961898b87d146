package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Schema devuelve el DDL embebido (útil para inspección desde la CLI).
func Schema() string { return schemaSQL }

// Migrate aplica el esquema. Todas las sentencias usan IF NOT EXISTS, así que es seguro repetirlo.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
