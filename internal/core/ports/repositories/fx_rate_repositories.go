package repositories

import (
	"context"
	"time"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
)

// FxRateRepositoryFacade reads the historical FX-rate table.
type FxRateRepositoryFacade interface {
	// FindRateAsOf returns the most recent rate for the currency at or before
	// asOf. Returns apperrors.ErrNotFound when no such rate exists.
	FindRateAsOf(ctx context.Context, currencyCode string, asOf time.Time) (*domain.FxRate, error)
}
