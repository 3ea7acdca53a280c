package repositories

import (
	"context"
	"time"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RefDataRepositoryFacade reads instrument/account reference data and the
// externally maintained snapshot balances. This service never writes any of it.
type RefDataRepositoryFacade interface {
	FindInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error)
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindCashInstrumentByCurrency resolves the synthetic cash instrument for a
	// currency. Returns apperrors.ErrNotFound if none exists.
	FindCashInstrumentByCurrency(ctx context.Context, currencyCode string) (*domain.Instrument, error)
	// ListCashCurrencies returns the currencies that do have a cash instrument,
	// used for the MissingCashInstrument diagnostic.
	ListCashCurrencies(ctx context.Context) ([]string, error)

	// FindSnapshotBalance returns the externally supplied point-in-time balance
	// for an account (instrumentID nil for cash) at or before asOf. Returns
	// zero with no error when no snapshot exists.
	FindSnapshotBalance(ctx context.Context, accountID string, instrumentID *string, asOf time.Time) (decimal.Decimal, error)
}
