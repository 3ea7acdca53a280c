package repositories

// RepositoryProvider aggregates all repository facades for injection into the
// service layer.
type RepositoryProvider struct {
	TradeRepo   TradeRepositoryFacade
	RefDataRepo RefDataRepositoryFacade
	FxRateRepo  FxRateRepositoryFacade
	LegacyRepo  LegacyRepositoryFacade
}
