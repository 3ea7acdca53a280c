package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// fxService resolves historical FX rates against the reporting currency.
type fxService struct {
	fxRepo            portsrepo.FxRateRepositoryFacade
	reportingCurrency string
}

// NewFxService creates a new FxService.
func NewFxService(fxRepo portsrepo.FxRateRepositoryFacade, reportingCurrency string) portssvc.FxSvcFacade {
	return &fxService{
		fxRepo:            fxRepo,
		reportingCurrency: strings.ToUpper(reportingCurrency),
	}
}

var _ portssvc.FxSvcFacade = (*fxService)(nil)

var one = decimal.NewFromInt(1)

// RateToReference implements portssvc.FxSvcFacade.
func (s *fxService) RateToReference(ctx context.Context, currencyCode string, asOf time.Time) (decimal.Decimal, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if currencyCode == s.reportingCurrency {
		// Identity, no lookup.
		return one, nil
	}

	rate, err := s.fxRepo.FindRateAsOf(ctx, currencyCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no %s->%s rate on or before %s",
				apperrors.ErrMissingFXRate, currencyCode, s.reportingCurrency, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to resolve FX rate for %s: %w", currencyCode, err)
	}

	if rate.RateToCHF.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: stored rate for %s on %s is not positive",
			apperrors.ErrMissingFXRate, currencyCode, rate.RateDate.Format("2006-01-02"))
	}
	return rate.RateToCHF, nil
}
