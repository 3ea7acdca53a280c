package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/dto"
	"github.com/pfmgr/portfolio_ledger_app/internal/middleware"
	"github.com/pfmgr/portfolio_ledger_app/internal/utils/accounting"
)

const defaultHistoryLimit = 50

// tradeService is the leg computation engine plus the orchestration around the
// ledger store: create, update, delete, fetch-for-edit and reversal.
type tradeService struct {
	tradeRepo   portsrepo.TradeRepositoryFacade
	refDataRepo portsrepo.RefDataRepositoryFacade
	fxSvc       portssvc.FxSvcFacade
}

// NewTradeService creates a new TradeService.
func NewTradeService(tradeRepo portsrepo.TradeRepositoryFacade, refDataRepo portsrepo.RefDataRepositoryFacade, fxSvc portssvc.FxSvcFacade) portssvc.TradeSvcFacade {
	return &tradeService{
		tradeRepo:   tradeRepo,
		refDataRepo: refDataRepo,
		fxSvc:       fxSvc,
	}
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

// buildTrade resolves reference data, validates currencies, snapshots the FX
// rate and computes both legs. It is pure: nothing is persisted here, so any
// failure leaves the store untouched.
func (s *tradeService) buildTrade(ctx context.Context, input domain.TradeInput) (*domain.Trade, []domain.TradeLeg, error) {
	instrument, err := s.refDataRepo.FindInstrumentByID(ctx, input.InstrumentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: instrument %s", apperrors.ErrInstrumentNotFound, input.InstrumentID)
		}
		return nil, nil, fmt.Errorf("failed to resolve instrument %s: %w", input.InstrumentID, err)
	}

	cashAccount, err := s.findAccount(ctx, input.CashAccountID)
	if err != nil {
		return nil, nil, err
	}
	custodyAccount, err := s.findAccount(ctx, input.CustodyAccountID)
	if err != nil {
		return nil, nil, err
	}

	// The settlement currency is the instrument's currency; the cash account
	// must be denominated in it.
	if instrument.CurrencyCode != cashAccount.CurrencyCode {
		return nil, nil, fmt.Errorf("%w: instrument %s settles in %s but cash account %q is held in %s",
			apperrors.ErrCurrencyMismatch, instrument.InstrumentID, instrument.CurrencyCode,
			cashAccount.DisplayName, cashAccount.CurrencyCode)
	}

	rateToCHF, err := s.fxSvc.RateToReference(ctx, cashAccount.CurrencyCode, input.TradeDate)
	if err != nil {
		return nil, nil, err
	}
	// rateToCHF is settlement->reporting; the stored snapshot is the inverse.
	fxCHFToTxn := one.Div(rateToCHF)

	amounts, err := accounting.ComputeLegAmounts(input.TypeCode, input.Quantity, input.PriceTxn, input.FeesCHF, input.CommissionCHF, fxCHFToTxn)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	cashInstrument, err := s.refDataRepo.FindCashInstrumentByCurrency(ctx, cashAccount.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, s.missingCashInstrumentError(ctx, cashAccount.CurrencyCode)
		}
		return nil, nil, fmt.Errorf("failed to resolve cash instrument for %s: %w", cashAccount.CurrencyCode, err)
	}

	now := time.Now().UTC()
	tradeID := uuid.NewString()

	trade := domain.Trade{
		TradeID:       tradeID,
		TypeCode:      input.TypeCode,
		TradeDate:     input.TradeDate,
		InstrumentID:  instrument.InstrumentID,
		Quantity:      amounts.Quantity,
		PriceTxn:      amounts.PriceTxn,
		CurrencyCode:  instrument.CurrencyCode,
		FeesCHF:       accounting.Round4(input.FeesCHF),
		CommissionCHF: accounting.Round4(input.CommissionCHF),
		FxCHFToTxn:    fxCHFToTxn,
		Notes:         input.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	legs := []domain.TradeLeg{
		{
			LegID:         uuid.NewString(),
			TradeID:       tradeID,
			LegType:       domain.CashLeg,
			AccountID:     cashAccount.AccountID,
			InstrumentID:  cashInstrument.InstrumentID,
			DeltaQuantity: amounts.CashDelta,
			CreatedAt:     now,
		},
		{
			LegID:         uuid.NewString(),
			TradeID:       tradeID,
			LegType:       domain.InstrumentLeg,
			AccountID:     custodyAccount.AccountID,
			InstrumentID:  instrument.InstrumentID,
			DeltaQuantity: amounts.InstrumentDelta,
			CreatedAt:     now,
		},
	}

	return &trade, legs, nil
}

func (s *tradeService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.refDataRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to resolve account %s: %w", accountID, err)
	}
	return account, nil
}

// missingCashInstrumentError enumerates the cash currencies that do exist so a
// misconfigured reference-data set is discoverable from the error banner.
func (s *tradeService) missingCashInstrumentError(ctx context.Context, currencyCode string) error {
	available, listErr := s.refDataRepo.ListCashCurrencies(ctx)
	if listErr != nil || len(available) == 0 {
		return fmt.Errorf("%w: no cash instrument exists for currency %s", apperrors.ErrMissingCashInstrument, currencyCode)
	}
	return fmt.Errorf("%w: no cash instrument exists for currency %s (cash instruments exist for: %s)",
		apperrors.ErrMissingCashInstrument, currencyCode, strings.Join(available, ", "))
}

// CreateTrade implements portssvc.TradeSvcFacade.
func (s *tradeService) CreateTrade(ctx context.Context, req dto.TradeRequest) (*domain.Trade, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	input, err := req.ToTradeInput()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trade date %q", apperrors.ErrValidation, req.TradeDate)
	}

	trade, legs, err := s.buildTrade(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.tradeRepo.SaveTrade(ctx, *trade, legs); err != nil {
		logger.Error("Failed to save trade", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save trade: %w", err)
	}

	logger.Info("Trade created", slog.String("trade_id", trade.TradeID), slog.String("type", string(trade.TypeCode)))
	return trade, nil
}

// UpdateTrade implements portssvc.TradeSvcFacade. Inputs may have changed
// instrument, accounts or date, so currency and FX are re-validated exactly as
// in creation before the header and both legs are replaced atomically.
func (s *tradeService) UpdateTrade(ctx context.Context, tradeID string, req dto.TradeRequest) (*domain.Trade, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	input, err := req.ToTradeInput()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid trade date %q", apperrors.ErrValidation, req.TradeDate)
	}

	trade, legs, err := s.buildTrade(ctx, input)
	if err != nil {
		return nil, err
	}

	// Keep the original identity and creation time.
	trade.TradeID = existing.TradeID
	trade.CreatedAt = existing.CreatedAt
	for i := range legs {
		legs[i].TradeID = existing.TradeID
	}

	if err := s.tradeRepo.UpdateTrade(ctx, *trade, legs); err != nil {
		logger.Error("Failed to update trade", slog.String("error", err.Error()), slog.String("trade_id", tradeID))
		return nil, fmt.Errorf("failed to update trade %s: %w", tradeID, err)
	}

	logger.Info("Trade updated", slog.String("trade_id", tradeID))
	return trade, nil
}

// DeleteTrade implements portssvc.TradeSvcFacade.
func (s *tradeService) DeleteTrade(ctx context.Context, tradeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tradeRepo.DeleteTrade(ctx, tradeID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete trade", slog.String("error", err.Error()), slog.String("trade_id", tradeID))
		}
		return err
	}

	logger.Info("Trade deleted", slog.String("trade_id", tradeID))
	return nil
}

// GetTradeForEdit implements portssvc.TradeSvcFacade. It reconstructs the
// original input parameters from the header and both legs; a trade missing
// either leg is corrupt and unusable for editing.
func (s *tradeService) GetTradeForEdit(ctx context.Context, tradeID string) (*domain.TradeInput, error) {
	trade, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	legs, err := s.tradeRepo.FindLegsByTradeID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	var cashLeg, instrumentLeg *domain.TradeLeg
	for i := range legs {
		switch legs[i].LegType {
		case domain.CashLeg:
			cashLeg = &legs[i]
		case domain.InstrumentLeg:
			instrumentLeg = &legs[i]
		}
	}
	if cashLeg == nil || instrumentLeg == nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Warn("Trade has incomplete legs", slog.String("trade_id", tradeID), slog.Int("leg_count", len(legs)))
		return nil, fmt.Errorf("%w: trade %s does not have both legs", apperrors.ErrNotFound, tradeID)
	}

	return &domain.TradeInput{
		TypeCode:         trade.TypeCode,
		TradeDate:        trade.TradeDate,
		InstrumentID:     trade.InstrumentID,
		Quantity:         trade.Quantity,
		PriceTxn:         trade.PriceTxn,
		FeesCHF:          trade.FeesCHF,
		CommissionCHF:    trade.CommissionCHF,
		CustodyAccountID: instrumentLeg.AccountID,
		CashAccountID:    cashLeg.AccountID,
		Notes:            trade.Notes,
	}, nil
}

// ListTradeHistory implements portssvc.TradeSvcFacade.
func (s *tradeService) ListTradeHistory(ctx context.Context, limit int) ([]domain.TradeHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.tradeRepo.ListTradeHistory(ctx, limit)
}

// ReverseTrade implements portssvc.TradeSvcFacade. The reversal keeps
// quantity, price, fees, commission, date and the stored FX snapshot, flips
// the direction, and persists the exact negation of the original legs.
//
// Leg amounts are not recomputed: a SELL's costs reduce its proceeds, so
// recomputing would leave the cash account off by twice the costs, and a
// since-corrected rate table could shift the amounts further. Negating the
// stored deltas guarantees the originals cancel exactly.
func (s *tradeService) ReverseTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	originalLegs, err := s.tradeRepo.FindLegsByTradeID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if len(originalLegs) != 2 {
		logger.Warn("Trade has incomplete legs", slog.String("trade_id", tradeID), slog.Int("leg_count", len(originalLegs)))
		return nil, fmt.Errorf("%w: trade %s does not have both legs", apperrors.ErrNotFound, tradeID)
	}

	notes := fmt.Sprintf("Reversal of trade %s", tradeID)
	if original.Notes != "" {
		notes = fmt.Sprintf("Reversal of trade %s: %s", tradeID, original.Notes)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversal := domain.Trade{
		TradeID:       reversalID,
		TypeCode:      original.TypeCode.Opposite(),
		TradeDate:     original.TradeDate,
		InstrumentID:  original.InstrumentID,
		Quantity:      original.Quantity,
		PriceTxn:      original.PriceTxn,
		CurrencyCode:  original.CurrencyCode,
		FeesCHF:       original.FeesCHF,
		CommissionCHF: original.CommissionCHF,
		FxCHFToTxn:    original.FxCHFToTxn,
		Notes:         notes,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	legs := make([]domain.TradeLeg, len(originalLegs))
	for i, leg := range originalLegs {
		legs[i] = domain.TradeLeg{
			LegID:         uuid.NewString(),
			TradeID:       reversalID,
			LegType:       leg.LegType,
			AccountID:     leg.AccountID,
			InstrumentID:  leg.InstrumentID,
			DeltaQuantity: leg.DeltaQuantity.Neg(),
			CreatedAt:     now,
		}
	}

	if err := s.tradeRepo.SaveTrade(ctx, reversal, legs); err != nil {
		logger.Error("Failed to save reversal trade", slog.String("error", err.Error()), slog.String("original_trade_id", tradeID))
		return nil, fmt.Errorf("failed to save reversal of trade %s: %w", tradeID, err)
	}

	logger.Info("Trade reversed", slog.String("original_trade_id", tradeID), slog.String("reversal_trade_id", reversal.TradeID))
	return &reversal, nil
}
