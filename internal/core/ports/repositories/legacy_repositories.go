package repositories

import (
	"context"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
)

// LegacyRepositoryFacade reads the pre-ledger single-entry transactions table
// so it can be migrated into the Trade/TradeLeg model exactly once.
type LegacyRepositoryFacade interface {
	// HasLegacyTransactions reports whether the legacy table is present.
	HasLegacyTransactions(ctx context.Context) (bool, error)
	// ListLegacyTransactions returns all legacy rows in trade-date order.
	ListLegacyTransactions(ctx context.Context) ([]domain.LegacyTransaction, error)
	// DeleteLegacyTransaction removes a single legacy row once its trade has
	// been persisted, so a rerun after a partial failure skips it.
	DeleteLegacyTransaction(ctx context.Context, txnID string) error
	// MarkLegacyMigrated renames the legacy table so the migration never runs twice.
	MarkLegacyMigrated(ctx context.Context) error
}
