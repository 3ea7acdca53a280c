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

// tradeColumns is the column list for the trades table. Order must match the
// scan calls below.
const tradeColumns = `trade_id, type_code, trade_date, instrument_id, quantity, price_txn, currency_code, fees_chf, commission_chf, fx_chf_to_txn, notes, created_at, updated_at`

// legColumns is the column list for the trade_legs table.
const legColumns = `leg_id, trade_id, leg_type, account_id, instrument_id, delta_quantity, created_at`

// SQLiteTradeRepository is the ledger store over the embedded database.
type SQLiteTradeRepository struct {
	BaseRepository
}

// newSQLiteTradeRepository creates a new repository for trade and leg data.
func newSQLiteTradeRepository(db *sql.DB) portsrepo.TradeRepositoryFacade {
	return &SQLiteTradeRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.TradeRepositoryFacade = (*SQLiteTradeRepository)(nil)

const insertTradeQuery = `
	INSERT INTO trades (` + tradeColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const insertLegQuery = `
	INSERT INTO trade_legs (` + legColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?);
`

// SaveTrade inserts the trade header and both legs within one DB transaction.
func (r *SQLiteTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade, legs []domain.TradeLeg) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(tx)

	if err := insertTradeTx(ctx, tx, trade, legs); err != nil {
		return err
	}

	return r.Commit(tx)
}

// insertTradeTx writes the header then both legs inside the given transaction.
// Shared between SaveTrade and UpdateTrade.
func insertTradeTx(ctx context.Context, tx *sql.Tx, trade domain.Trade, legs []domain.TradeLeg) error {
	m := mapping.ToModelTrade(trade)
	_, err := tx.ExecContext(ctx, insertTradeQuery,
		m.TradeID, m.TypeCode, m.TradeDate, m.InstrumentID,
		m.Quantity, m.PriceTxn, m.CurrencyCode,
		m.FeesCHF, m.CommissionCHF, m.FxCHFToTxn,
		m.Notes, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert trade "+m.TradeID, err)
	}

	return insertLegsTx(ctx, tx, legs)
}

func insertLegsTx(ctx context.Context, tx *sql.Tx, legs []domain.TradeLeg) error {
	for _, leg := range legs {
		ml := mapping.ToModelTradeLeg(leg)
		_, err := tx.ExecContext(ctx, insertLegQuery,
			ml.LegID, ml.TradeID, ml.LegType, ml.AccountID,
			ml.InstrumentID, ml.DeltaQuantity, ml.CreatedAt,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert "+string(ml.LegType)+" leg for trade "+ml.TradeID, err)
		}
	}
	return nil
}

// UpdateTrade replaces the header fields and both legs within one DB
// transaction. The prior state survives any step failure.
func (r *SQLiteTradeRepository) UpdateTrade(ctx context.Context, trade domain.Trade, legs []domain.TradeLeg) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelTrade(trade)
	res, err := tx.ExecContext(ctx, `
		UPDATE trades
		SET type_code = ?, trade_date = ?, instrument_id = ?, quantity = ?,
		    price_txn = ?, currency_code = ?, fees_chf = ?, commission_chf = ?,
		    fx_chf_to_txn = ?, notes = ?, updated_at = ?
		WHERE trade_id = ?;`,
		m.TypeCode, m.TradeDate, m.InstrumentID, m.Quantity,
		m.PriceTxn, m.CurrencyCode, m.FeesCHF, m.CommissionCHF,
		m.FxCHFToTxn, m.Notes, m.UpdatedAt,
		m.TradeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update trade "+m.TradeID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to check update result for trade "+m.TradeID, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("trade " + m.TradeID + " not found for update")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM trade_legs WHERE trade_id = ?;`, m.TradeID); err != nil {
		return apperrors.NewAppError(500, "failed to delete legs of trade "+m.TradeID, err)
	}
	if err := insertLegsTx(ctx, tx, legs); err != nil {
		return err
	}

	return r.Commit(tx)
}

// DeleteTrade removes both legs then the header within one DB transaction.
func (r *SQLiteTradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM trade_legs WHERE trade_id = ?;`, tradeID); err != nil {
		return apperrors.NewAppError(500, "failed to delete legs of trade "+tradeID, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?;`, tradeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete trade "+tradeID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to check delete result for trade "+tradeID, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("trade " + tradeID + " not found for delete")
	}

	return r.Commit(tx)
}

// FindTradeByID retrieves a trade header by its ID.
func (r *SQLiteTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	var m models.Trade
	err := r.DB.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?;`, tradeID).Scan(
		&m.TradeID, &m.TypeCode, &m.TradeDate, &m.InstrumentID,
		&m.Quantity, &m.PriceTxn, &m.CurrencyCode,
		&m.FeesCHF, &m.CommissionCHF, &m.FxCHFToTxn,
		&m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find trade by ID "+tradeID, err)
	}

	trade, err := mapping.ToDomainTrade(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode trade "+tradeID, err)
	}
	return &trade, nil
}

// FindLegsByTradeID retrieves all legs of a trade, CASH first.
func (r *SQLiteTradeRepository) FindLegsByTradeID(ctx context.Context, tradeID string) ([]domain.TradeLeg, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+legColumns+`
		FROM trade_legs
		WHERE trade_id = ?
		ORDER BY leg_type;`, tradeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query legs for trade "+tradeID, err)
	}
	defer rows.Close()

	legs := []models.TradeLeg{}
	for rows.Next() {
		var l models.TradeLeg
		if err := rows.Scan(&l.LegID, &l.TradeID, &l.LegType, &l.AccountID, &l.InstrumentID, &l.DeltaQuantity, &l.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan leg row for trade "+tradeID, err)
		}
		legs = append(legs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating leg rows for trade "+tradeID, err)
	}

	return mapping.ToDomainTradeLegSlice(legs), nil
}

// ListTradeHistory returns the denormalized trade+legs view for history
// screens, most recent trade date first. Trades with incomplete legs are
// excluded by the inner joins.
func (r *SQLiteTradeRepository) ListTradeHistory(ctx context.Context, limit int) ([]domain.TradeHistoryEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.trade_id, t.type_code, t.trade_date, t.instrument_id, i.name,
		       t.currency_code, t.quantity, t.price_txn, t.fees_chf, t.commission_chf,
		       cu.display_name, ca.display_name,
		       cl.delta_quantity, il.delta_quantity, t.notes
		FROM trades t
		JOIN trade_legs cl ON cl.trade_id = t.trade_id AND cl.leg_type = 'CASH'
		JOIN trade_legs il ON il.trade_id = t.trade_id AND il.leg_type = 'INSTRUMENT'
		JOIN instruments i ON i.instrument_id = t.instrument_id
		JOIN accounts ca ON ca.account_id = cl.account_id
		JOIN accounts cu ON cu.account_id = il.account_id
		ORDER BY t.trade_date DESC, t.created_at DESC
		LIMIT ?;`, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trade history", err)
	}
	defer rows.Close()

	entries := []domain.TradeHistoryEntry{}
	for rows.Next() {
		var e domain.TradeHistoryEntry
		var tradeDate string
		if err := rows.Scan(
			&e.TradeID, &e.TypeCode, &tradeDate, &e.InstrumentID, &e.InstrumentName,
			&e.CurrencyCode, &e.Quantity, &e.PriceTxn, &e.FeesCHF, &e.CommissionCHF,
			&e.CustodyAccountName, &e.CashAccountName,
			&e.CashDelta, &e.InstrumentDelta, &e.Notes,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trade history row", err)
		}
		e.TradeDate, err = mapping.ToDomainDate(tradeDate)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode trade date in history row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trade history rows", err)
	}

	return entries, nil
}

// SumCashLegDeltas sums CASH-leg deltas for an account up to asOf.
func (r *SQLiteTradeRepository) SumCashLegDeltas(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, int64, error) {
	return r.sumLegDeltas(ctx, `
		SELECT l.delta_quantity
		FROM trade_legs l
		JOIN trades t ON t.trade_id = l.trade_id
		WHERE l.leg_type = 'CASH' AND l.account_id = ? AND t.trade_date <= ?;`,
		accountID, mapping.ToModelDate(asOf))
}

// SumInstrumentLegDeltas sums INSTRUMENT-leg deltas for one account/instrument
// pairing up to asOf.
func (r *SQLiteTradeRepository) SumInstrumentLegDeltas(ctx context.Context, accountID, instrumentID string, asOf time.Time) (decimal.Decimal, int64, error) {
	return r.sumLegDeltas(ctx, `
		SELECT l.delta_quantity
		FROM trade_legs l
		JOIN trades t ON t.trade_id = l.trade_id
		WHERE l.leg_type = 'INSTRUMENT' AND l.account_id = ? AND l.instrument_id = ? AND t.trade_date <= ?;`,
		accountID, instrumentID, mapping.ToModelDate(asOf))
}

// sumLegDeltas accumulates deltas in Go; SQLite's SUM would coerce the TEXT
// decimals to floats and break exact arithmetic.
func (r *SQLiteTradeRepository) sumLegDeltas(ctx context.Context, query string, args ...any) (decimal.Decimal, int64, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return decimal.Zero, 0, apperrors.NewAppError(500, "failed to query leg deltas", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	var count int64
	for rows.Next() {
		var delta decimal.Decimal
		if err := rows.Scan(&delta); err != nil {
			return decimal.Zero, 0, apperrors.NewAppError(500, "failed to scan leg delta", err)
		}
		sum = sum.Add(delta)
		count++
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, 0, apperrors.NewAppError(500, "error iterating leg deltas", err)
	}

	return sum, count, nil
}
