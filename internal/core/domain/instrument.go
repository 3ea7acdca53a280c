package domain

// Instrument is traded-instrument reference data. Cash positions are tracked
// through synthetic instruments flagged IsCash, one per currency.
type Instrument struct {
	InstrumentID string `json:"instrumentID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"` // immutable
	IsCash       bool   `json:"isCash"`
	AuditFields
}
