package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/dto"
	"github.com/pfmgr/portfolio_ledger_app/internal/handlers"
	"github.com/pfmgr/portfolio_ledger_app/internal/platform/config"
)

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

var _ portssvc.TradeSvcFacade = (*MockTradeService)(nil)

// --- Mock BalanceService ---

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) CashBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) InstrumentHolding(ctx context.Context, accountID, instrumentID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, instrumentID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Test Suite ---

type TradeHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockTradeSvc   *MockTradeService
	mockBalanceSvc *MockBalanceService
}

func (suite *TradeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockTradeSvc = new(MockTradeService)
	suite.mockBalanceSvc = new(MockBalanceService)

	cfg := &config.Config{IsProduction: true}
	services := &portssvc.ServiceContainer{
		Trade:   suite.mockTradeSvc,
		Balance: suite.mockBalanceSvc,
	}

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services))
}

func (suite *TradeHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validTradeBody() map[string]any {
	return map[string]any{
		"typeCode":         "BUY",
		"tradeDate":        "2024-03-15",
		"instrumentID":     "inst-aapl",
		"quantity":         "10",
		"priceTxn":         "100",
		"feesCHF":          "5",
		"commissionCHF":    "0",
		"custodyAccountID": "acc-custody",
		"cashAccountID":    "acc-cash-usd",
		"notes":            "initial position",
	}
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_Success() {
	created := &domain.Trade{
		TradeID:      "trade-1",
		TypeCode:     domain.Buy,
		TradeDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		InstrumentID: "inst-aapl",
		Quantity:     decimal.RequireFromString("10"),
		PriceTxn:     decimal.RequireFromString("100"),
		CurrencyCode: "USD",
		FxCHFToTxn:   decimal.RequireFromString("1.25"),
	}
	suite.mockTradeSvc.On("CreateTrade", mock.Anything, mock.AnythingOfType("dto.TradeRequest")).
		Return(created, nil).Once()

	w := suite.postJSON("/api/v1/trades", validTradeBody())

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TradeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("trade-1", resp.TradeID)
	suite.Equal("2024-03-15", resp.TradeDate)
	suite.mockTradeSvc.AssertExpectations(suite.T())
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_NonPositiveQuantityRejectedAtBinding() {
	body := validTradeBody()
	body["quantity"] = "0"

	w := suite.postJSON("/api/v1/trades", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradeSvc.AssertNotCalled(suite.T(), "CreateTrade", mock.Anything, mock.Anything)
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_BadDateRejectedAtBinding() {
	body := validTradeBody()
	body["tradeDate"] = "15.03.2024"

	w := suite.postJSON("/api/v1/trades", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradeSvc.AssertNotCalled(suite.T(), "CreateTrade", mock.Anything, mock.Anything)
}

func (suite *TradeHandlerTestSuite) TestCreateTrade_CurrencyMismatchIs400() {
	suite.mockTradeSvc.On("CreateTrade", mock.Anything, mock.AnythingOfType("dto.TradeRequest")).
		Return(nil, apperrors.ErrCurrencyMismatch).Once()

	w := suite.postJSON("/api/v1/trades", validTradeBody())

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TradeHandlerTestSuite) TestGetTradeForEdit_NotFound() {
	suite.mockTradeSvc.On("GetTradeForEdit", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trades/missing/edit", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TradeHandlerTestSuite) TestDeleteTrade_NoContent() {
	suite.mockTradeSvc.On("DeleteTrade", mock.Anything, "trade-1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/trades/trade-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *TradeHandlerTestSuite) TestGetBalance_CashWithAsOf() {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.mockBalanceSvc.On("CashBalance", mock.Anything, "acc-1", asOf).
		Return(decimal.RequireFromString("1234.5"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1/balance?asOf=2024-06-30", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal("2024-06-30", resp.AsOf)
	suite.True(decimal.RequireFromString("1234.5").Equal(resp.Balance))
}

func (suite *TradeHandlerTestSuite) TestGetBalance_InstrumentHolding() {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.mockBalanceSvc.On("InstrumentHolding", mock.Anything, "acc-1", "inst-aapl", asOf).
		Return(decimal.RequireFromString("10"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1/balance?asOf=2024-06-30&instrumentID=inst-aapl", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *TradeHandlerTestSuite) TestListTrades_InvalidLimit() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trades?limit=abc", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTradeSvc.AssertNotCalled(suite.T(), "ListTradeHistory", mock.Anything, mock.Anything)
}

func TestTradeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TradeHandlerTestSuite))
}
