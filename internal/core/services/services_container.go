package services

import (
	portsrepo "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pfmgr/portfolio_ledger_app/internal/core/ports/services"
	"github.com/pfmgr/portfolio_ledger_app/internal/platform/config"
)

// NewServiceContainer wires all services onto the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	fxSvc := NewFxService(repos.FxRateRepo, cfg.ReportingCurrency)
	tradeSvc := NewTradeService(repos.TradeRepo, repos.RefDataRepo, fxSvc)
	balanceSvc := NewBalanceService(repos.TradeRepo, repos.RefDataRepo)
	legacySvc := NewLegacyMigrationService(repos.LegacyRepo, tradeSvc)

	return &portssvc.ServiceContainer{
		Trade:           tradeSvc,
		Balance:         balanceSvc,
		Fx:              fxSvc,
		LegacyMigration: legacySvc,
	}
}
