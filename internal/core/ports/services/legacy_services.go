package services

import "context"

// LegacyMigrationSvcFacade replays the pre-ledger transactions table into the
// Trade/TradeLeg model. Safe to call on every startup; it is a no-op once the
// legacy table is gone.
type LegacyMigrationSvcFacade interface {
	// MigrateLegacyTransactions returns the number of migrated rows.
	MigrateLegacyTransactions(ctx context.Context) (int, error)
}
