package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/middleware"
)

// balanceService derives balances by summing posting history. When an account
// (or account/instrument pairing) has no postings at all, the externally
// supplied snapshot balance is used instead. The fallback triggers on an
// explicit has-postings check, never on the magnitude of the sum: postings
// that net to exactly zero mean a zero balance.
type balanceService struct {
	tradeRepo   portsrepo.TradeRepositoryFacade
	refDataRepo portsrepo.RefDataRepositoryFacade
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(tradeRepo portsrepo.TradeRepositoryFacade, refDataRepo portsrepo.RefDataRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		tradeRepo:   tradeRepo,
		refDataRepo: refDataRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// CashBalance implements portssvc.BalanceSvcFacade.
func (s *balanceService) CashBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if err := s.checkAccount(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	sum, count, err := s.tradeRepo.SumCashLegDeltas(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum cash postings for account %s: %w", accountID, err)
	}
	if count == 0 {
		return s.snapshotFallback(ctx, accountID, nil, asOf)
	}
	return sum, nil
}

// InstrumentHolding implements portssvc.BalanceSvcFacade.
func (s *balanceService) InstrumentHolding(ctx context.Context, accountID, instrumentID string, asOf time.Time) (decimal.Decimal, error) {
	if err := s.checkAccount(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	sum, count, err := s.tradeRepo.SumInstrumentLegDeltas(ctx, accountID, instrumentID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum instrument postings for account %s: %w", accountID, err)
	}
	if count == 0 {
		return s.snapshotFallback(ctx, accountID, &instrumentID, asOf)
	}
	return sum, nil
}

func (s *balanceService) checkAccount(ctx context.Context, accountID string) error {
	if _, err := s.refDataRepo.FindAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, accountID)
		}
		return fmt.Errorf("failed to resolve account %s: %w", accountID, err)
	}
	return nil
}

func (s *balanceService) snapshotFallback(ctx context.Context, accountID string, instrumentID *string, asOf time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance, err := s.refDataRepo.FindSnapshotBalance(ctx, accountID, instrumentID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read snapshot balance for account %s: %w", accountID, err)
	}

	logger.Debug("No postings found, using snapshot balance",
		slog.String("account_id", accountID),
		slog.String("balance", balance.String()),
	)
	return balance, nil
}
