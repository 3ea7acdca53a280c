package models

// Account is the accounts table row.
type Account struct {
	AccountID    string `db:"account_id"`
	DisplayName  string `db:"display_name"`
	CurrencyCode string `db:"currency_code"`
	AuditFields
}
