package models

// Instrument is the instruments table row. Synthetic cash instruments carry
// IsCash=true and exist once per currency.
type Instrument struct {
	InstrumentID string `db:"instrument_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	IsCash       bool   `db:"is_cash"`
	AuditFields
}
