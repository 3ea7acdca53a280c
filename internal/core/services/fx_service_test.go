package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/core/services"
)

type FxServiceTestSuite struct {
	suite.Suite
	mockFxRepo *MockFxRateRepository
	service    portssvc.FxSvcFacade
}

func (suite *FxServiceTestSuite) SetupTest() {
	suite.mockFxRepo = new(MockFxRateRepository)
	suite.service = services.NewFxService(suite.mockFxRepo, "CHF")
}

func (suite *FxServiceTestSuite) TestRateToReference_ReportingCurrencyIsIdentity() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	rate, err := suite.service.RateToReference(ctx, "CHF", asOf)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1).Equal(rate))
	// Identity resolution must not touch the repository.
	suite.mockFxRepo.AssertNotCalled(suite.T(), "FindRateAsOf")
}

func (suite *FxServiceTestSuite) TestRateToReference_IdentityIsCaseInsensitive() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	rate, err := suite.service.RateToReference(ctx, "chf", asOf)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1).Equal(rate))
}

func (suite *FxServiceTestSuite) TestRateToReference_ReturnsStoredRate() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	stored := &domain.FxRate{
		FxRateID:     "rate-1",
		CurrencyCode: "USD",
		RateToCHF:    decimal.RequireFromString("0.91"),
		RateDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	suite.mockFxRepo.On("FindRateAsOf", ctx, "USD", asOf).Return(stored, nil).Once()

	rate, err := suite.service.RateToReference(ctx, "USD", asOf)

	suite.Require().NoError(err)
	suite.True(stored.RateToCHF.Equal(rate))
	suite.mockFxRepo.AssertExpectations(suite.T())
}

func (suite *FxServiceTestSuite) TestRateToReference_MissingRate() {
	ctx := context.Background()
	asOf := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.mockFxRepo.On("FindRateAsOf", ctx, "USD", asOf).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RateToReference(ctx, "USD", asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingFXRate)
	suite.Contains(err.Error(), "1999-01-01")
}

func (suite *FxServiceTestSuite) TestRateToReference_RejectsNonPositiveStoredRate() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	stored := &domain.FxRate{
		FxRateID:     "rate-bad",
		CurrencyCode: "USD",
		RateToCHF:    decimal.Zero,
		RateDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	suite.mockFxRepo.On("FindRateAsOf", ctx, "USD", asOf).Return(stored, nil).Once()

	_, err := suite.service.RateToReference(ctx, "USD", asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingFXRate)
}

func TestFxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FxServiceTestSuite))
}
