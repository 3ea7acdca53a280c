package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/pfmgr/portfolio_ledger_app/internal/dto"
)

// --- Mock TradeRepository ---

type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade, legs []domain.TradeLeg) error {
	args := m.Called(ctx, trade, legs)
	return args.Error(0)
}

func (m *MockTradeRepository) UpdateTrade(ctx context.Context, trade domain.Trade, legs []domain.TradeLeg) error {
	args := m.Called(ctx, trade, legs)
	return args.Error(0)
}

func (m *MockTradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	args := m.Called(ctx, tradeID)
	return args.Error(0)
}

func (m *MockTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) FindLegsByTradeID(ctx context.Context, tradeID string) ([]domain.TradeLeg, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TradeLeg), args.Error(1)
}

func (m *MockTradeRepository) ListTradeHistory(ctx context.Context, limit int) ([]domain.TradeHistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TradeHistoryEntry), args.Error(1)
}

func (m *MockTradeRepository) SumCashLegDeltas(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

func (m *MockTradeRepository) SumInstrumentLegDeltas(ctx context.Context, accountID, instrumentID string, asOf time.Time) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, accountID, instrumentID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

// --- Mock RefDataRepository ---

type MockRefDataRepository struct {
	mock.Mock
}

func (m *MockRefDataRepository) FindInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error) {
	args := m.Called(ctx, instrumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockRefDataRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRefDataRepository) FindCashInstrumentByCurrency(ctx context.Context, currencyCode string) (*domain.Instrument, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockRefDataRepository) ListCashCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRefDataRepository) FindSnapshotBalance(ctx context.Context, accountID string, instrumentID *string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, instrumentID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock FxRateRepository ---

type MockFxRateRepository struct {
	mock.Mock
}

func (m *MockFxRateRepository) FindRateAsOf(ctx context.Context, currencyCode string, asOf time.Time) (*domain.FxRate, error) {
	args := m.Called(ctx, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxRate), args.Error(1)
}

// --- Mock FxService ---

type MockFxService struct {
	mock.Mock
}

func (m *MockFxService) RateToReference(ctx context.Context, currencyCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock LegacyRepository ---

type MockLegacyRepository struct {
	mock.Mock
}

func (m *MockLegacyRepository) HasLegacyTransactions(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockLegacyRepository) ListLegacyTransactions(ctx context.Context) ([]domain.LegacyTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegacyTransaction), args.Error(1)
}

func (m *MockLegacyRepository) DeleteLegacyTransaction(ctx context.Context, txnID string) error {
	args := m.Called(ctx, txnID)
	return args.Error(0)
}

func (m *MockLegacyRepository) MarkLegacyMigrated(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock TradeService ---

type MockTradeService struct {
	mock.Mock
}

func (m *MockTradeService) CreateTrade(ctx context.Context, req dto.TradeRequest) (*domain.Trade, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) UpdateTrade(ctx context.Context, tradeID string, req dto.TradeRequest) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeService) DeleteTrade(ctx context.Context, tradeID string) error {
	args := m.Called(ctx, tradeID)
	return args.Error(0)
}

func (m *MockTradeService) GetTradeForEdit(ctx context.Context, tradeID string) (*domain.TradeInput, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeInput), args.Error(1)
}

func (m *MockTradeService) ListTradeHistory(ctx context.Context, limit int) ([]domain.TradeHistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TradeHistoryEntry), args.Error(1)
}

func (m *MockTradeService) ReverseTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}
