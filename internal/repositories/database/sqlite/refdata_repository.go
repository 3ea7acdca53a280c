package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	"github.com/pfmgr/portfolio_ledger_app/internal/models"
	"github.com/pfmgr/portfolio_ledger_app/internal/utils/mapping"
)

const instrumentColumns = `instrument_id, name, currency_code, is_cash, created_at, updated_at`

const accountColumns = `account_id, display_name, currency_code, created_at, updated_at`

// SQLiteRefDataRepository reads instruments, accounts and snapshot balances.
type SQLiteRefDataRepository struct {
	BaseRepository
}

// newSQLiteRefDataRepository creates a new repository for reference data.
func newSQLiteRefDataRepository(db *sql.DB) portsrepo.RefDataRepositoryFacade {
	return &SQLiteRefDataRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.RefDataRepositoryFacade = (*SQLiteRefDataRepository)(nil)

// FindInstrumentByID retrieves an instrument by its ID.
func (r *SQLiteRefDataRepository) FindInstrumentByID(ctx context.Context, instrumentID string) (*domain.Instrument, error) {
	return r.scanInstrument(ctx,
		`SELECT `+instrumentColumns+` FROM instruments WHERE instrument_id = ?;`,
		instrumentID)
}

// FindCashInstrumentByCurrency resolves the synthetic cash instrument for a
// currency.
func (r *SQLiteRefDataRepository) FindCashInstrumentByCurrency(ctx context.Context, currencyCode string) (*domain.Instrument, error) {
	return r.scanInstrument(ctx,
		`SELECT `+instrumentColumns+` FROM instruments WHERE is_cash = 1 AND currency_code = ?;`,
		currencyCode)
}

func (r *SQLiteRefDataRepository) scanInstrument(ctx context.Context, query string, arg string) (*domain.Instrument, error) {
	var m models.Instrument
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&m.InstrumentID, &m.Name, &m.CurrencyCode, &m.IsCash, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find instrument "+arg, err)
	}

	instrument := mapping.ToDomainInstrument(m)
	return &instrument, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *SQLiteRefDataRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var m models.Account
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = ?;`, accountID).Scan(
		&m.AccountID, &m.DisplayName, &m.CurrencyCode, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListCashCurrencies returns the currency codes that have a cash instrument.
func (r *SQLiteRefDataRepository) ListCashCurrencies(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT currency_code FROM instruments WHERE is_cash = 1 ORDER BY currency_code;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cash currencies", err)
	}
	defer rows.Close()

	currencies := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash currency row", err)
		}
		currencies = append(currencies, code)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cash currency rows", err)
	}
	return currencies, nil
}

// FindSnapshotBalance returns the most recent externally supplied balance at
// or before asOf. A missing snapshot is a zero balance, not an error.
func (r *SQLiteRefDataRepository) FindSnapshotBalance(ctx context.Context, accountID string, instrumentID *string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT balance FROM snapshot_balances
		WHERE account_id = ? AND instrument_id IS NULL AND as_of <= ?
		ORDER BY as_of DESC LIMIT 1;`
	args := []any{accountID, mapping.ToModelDate(asOf)}
	if instrumentID != nil {
		query = `
		SELECT balance FROM snapshot_balances
		WHERE account_id = ? AND instrument_id = ? AND as_of <= ?
		ORDER BY as_of DESC LIMIT 1;`
		args = []any{accountID, *instrumentID, mapping.ToModelDate(asOf)}
	}

	var balance decimal.Decimal
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to find snapshot balance for account "+accountID, err)
	}
	return balance, nil
}
