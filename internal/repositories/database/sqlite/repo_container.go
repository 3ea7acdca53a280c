package sqlite

import (
	"database/sql"

	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all SQLite repositories onto one connection.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TradeRepo:   newSQLiteTradeRepository(db),
		RefDataRepo: newSQLiteRefDataRepository(db),
		FxRateRepo:  newSQLiteFxRateRepository(db),
		LegacyRepo:  newSQLiteLegacyRepository(db),
	}
}
