package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FxSvcFacade resolves historical FX rates against the reporting currency.
type FxSvcFacade interface {
	// RateToReference returns the most recent rate at or before asOf for
	// converting 1 unit of currencyCode into the reporting currency. It is
	// exactly 1, with no lookup, when currencyCode is the reporting currency.
	// Fails with apperrors.ErrMissingFXRate when no rate exists.
	RateToReference(ctx context.Context, currencyCode string, asOf time.Time) (decimal.Decimal, error)
}
