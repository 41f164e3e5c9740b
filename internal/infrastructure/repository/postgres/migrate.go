package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

// schemaSQL creates the products table and its stored functions
//
//go:embed schema.sql
var schemaSQL string

// Migrate applies the schema in a single round trip. Exec without arguments
// uses the simple protocol, so the multi-statement script runs as is.
func Migrate(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
