package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pfmgr/portfolio_ledger_app/internal/apperrors"
	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	"github.com/pfmgr/portfolio_ledger_app/internal/utils/mapping"
)

// SQLiteLegacyRepository reads the pre-ledger single-entry transactions table.
// The table is not part of the migrated schema; it only exists in databases
// carried over from before the double-entry model.
type SQLiteLegacyRepository struct {
	BaseRepository
}

// newSQLiteLegacyRepository creates a new repository for legacy transactions.
func newSQLiteLegacyRepository(db *sql.DB) portsrepo.LegacyRepositoryFacade {
	return &SQLiteLegacyRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.LegacyRepositoryFacade = (*SQLiteLegacyRepository)(nil)

// HasLegacyTransactions reports whether the legacy table is present.
func (r *SQLiteLegacyRepository) HasLegacyTransactions(ctx context.Context) (bool, error) {
	var name string
	err := r.DB.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'transactions';`).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.NewAppError(500, "failed to check for legacy transactions table", err)
	}
	return true, nil
}

// ListLegacyTransactions returns all legacy rows in trade-date order.
func (r *SQLiteLegacyRepository) ListLegacyTransactions(ctx context.Context) ([]domain.LegacyTransaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT txn_id, type_code, txn_date, instrument_id, quantity, price_txn,
		       fees_chf, commission_chf, cash_account_id, custody_account_id, notes
		FROM transactions
		ORDER BY txn_date, txn_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query legacy transactions", err)
	}
	defer rows.Close()

	txns := []domain.LegacyTransaction{}
	for rows.Next() {
		var t domain.LegacyTransaction
		var typeCode, txnDate string
		if err := rows.Scan(
			&t.TxnID, &typeCode, &txnDate, &t.InstrumentID, &t.Quantity, &t.PriceTxn,
			&t.FeesCHF, &t.CommissionCHF, &t.CashAccountID, &t.CustodyAccountID, &t.Notes,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan legacy transaction row", err)
		}
		t.TypeCode = domain.TradeType(typeCode)
		t.TxnDate, err = mapping.ToDomainDate(txnDate)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode legacy transaction date", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating legacy transaction rows", err)
	}
	return txns, nil
}

// DeleteLegacyTransaction removes a migrated row from the legacy table.
func (r *SQLiteLegacyRepository) DeleteLegacyTransaction(ctx context.Context, txnID string) error {
	if _, err := r.DB.ExecContext(ctx,
		`DELETE FROM transactions WHERE txn_id = ?;`, txnID); err != nil {
		return apperrors.NewAppError(500, "failed to delete migrated legacy transaction", err)
	}
	return nil
}

// MarkLegacyMigrated renames the legacy table so the migration never runs twice.
func (r *SQLiteLegacyRepository) MarkLegacyMigrated(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx,
		`ALTER TABLE transactions RENAME TO transactions_migrated;`); err != nil {
		return apperrors.NewAppError(500, "failed to rename legacy transactions table", err)
	}
	return nil
}
