package domain

// Account is account reference data (cash or custody).
type Account struct {
	AccountID    string `json:"accountID"`
	DisplayName  string `json:"displayName"`
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}
