package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	"github.com/pfmgr/portfolio_ledger_app/internal/models"
	"github.com/pfmgr/portfolio_ledger_app/internal/utils/mapping"
)

// SQLiteFxRateRepository reads the historical FX-rate table.
type SQLiteFxRateRepository struct {
	BaseRepository
}

// newSQLiteFxRateRepository creates a new repository for FX rates.
func newSQLiteFxRateRepository(db *sql.DB) portsrepo.FxRateRepositoryFacade {
	return &SQLiteFxRateRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.FxRateRepositoryFacade = (*SQLiteFxRateRepository)(nil)

// FindRateAsOf returns the most recent rate for the currency at or before
// asOf. Date comparison is lexicographic on the YYYY-MM-DD TEXT column, which
// matches chronological order.
func (r *SQLiteFxRateRepository) FindRateAsOf(ctx context.Context, currencyCode string, asOf time.Time) (*domain.FxRate, error) {
	var m models.FxRate
	err := r.DB.QueryRowContext(ctx, `
		SELECT fx_rate_id, currency_code, rate_to_chf, rate_date, created_at, updated_at
		FROM fx_rates
		WHERE currency_code = ? AND rate_date <= ?
		ORDER BY rate_date DESC
		LIMIT 1;`, currencyCode, mapping.ToModelDate(asOf)).Scan(
		&m.FxRateID, &m.CurrencyCode, &m.RateToCHF, &m.RateDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find FX rate for "+currencyCode, err)
	}

	rate, err := mapping.ToDomainFxRate(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode FX rate for "+currencyCode, err)
	}
	return &rate, nil
}
