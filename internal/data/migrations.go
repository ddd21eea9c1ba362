package data

import (
	"context"
	"database/sql"

	"github.com/srl-logistica/rotaportal/internal/migrate"
)

// RunMigrations installs the voucher, catalog, and notice tables by delegating
// to the embedded migration runner. Callers that must migrate regardless of the
// startup gate (the operator CLI) use this directly.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
