package services

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/dto"
	"github.com/pfmgr/portfolio_ledger_app/internal/middleware"
)

const legacyDateLayout = "2006-01-02"

// legacyMigrationService replays the pre-ledger single-entry transactions
// table through the regular trade creation path, so migrated rows get the same
// validation, FX snapshotting and balanced legs as new trades. Each legacy row
// is deleted as soon as its trade is persisted, so a rerun after a partial
// failure only replays the rows that are still pending. After a successful run
// the legacy table is renamed and the routine becomes a no-op.
type legacyMigrationService struct {
	legacyRepo portsrepo.LegacyRepositoryFacade
	tradeSvc   portssvc.TradeSvcFacade
}

// NewLegacyMigrationService creates a new LegacyMigrationService.
func NewLegacyMigrationService(legacyRepo portsrepo.LegacyRepositoryFacade, tradeSvc portssvc.TradeSvcFacade) portssvc.LegacyMigrationSvcFacade {
	return &legacyMigrationService{
		legacyRepo: legacyRepo,
		tradeSvc:   tradeSvc,
	}
}

var _ portssvc.LegacyMigrationSvcFacade = (*legacyMigrationService)(nil)

// MigrateLegacyTransactions implements portssvc.LegacyMigrationSvcFacade.
func (s *legacyMigrationService) MigrateLegacyTransactions(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hasLegacy, err := s.legacyRepo.HasLegacyTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check for legacy transactions table: %w", err)
	}
	if !hasLegacy {
		return 0, nil
	}

	rows, err := s.legacyRepo.ListLegacyTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy transactions: %w", err)
	}

	logger.Info("Migrating legacy transactions", slog.Int("count", len(rows)))

	migrated := 0
	for _, row := range rows {
		req := dto.TradeRequest{
			TypeCode:         string(row.TypeCode),
			TradeDate:        row.TxnDate.Format(legacyDateLayout),
			InstrumentID:     row.InstrumentID,
			Quantity:         row.Quantity,
			PriceTxn:         row.PriceTxn,
			FeesCHF:          row.FeesCHF,
			CommissionCHF:    row.CommissionCHF,
			CustodyAccountID: row.CustodyAccountID,
			CashAccountID:    row.CashAccountID,
			Notes:            row.Notes,
		}
		if _, err := s.tradeSvc.CreateTrade(ctx, req); err != nil {
			// Abort before renaming. Rows migrated so far were already deleted
			// from the legacy table, so the operator can fix the offending row
			// and rerun without re-importing them.
			return migrated, fmt.Errorf("failed to migrate legacy transaction %s: %w", row.TxnID, err)
		}
		if err := s.legacyRepo.DeleteLegacyTransaction(ctx, row.TxnID); err != nil {
			return migrated, fmt.Errorf("failed to remove migrated legacy transaction %s: %w", row.TxnID, err)
		}
		migrated++
	}

	if err := s.legacyRepo.MarkLegacyMigrated(ctx); err != nil {
		return migrated, fmt.Errorf("failed to mark legacy transactions as migrated: %w", err)
	}

	logger.Info("Legacy transactions migrated", slog.Int("migrated", migrated))
	return migrated, nil
}
