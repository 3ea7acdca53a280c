package services

// ServiceContainer aggregates all service facades for injection into the
// HTTP handlers.
type ServiceContainer struct {
	Trade           TradeSvcFacade
	Balance         BalanceSvcFacade
	Fx              FxSvcFacade
	LegacyMigration LegacyMigrationSvcFacade
}
