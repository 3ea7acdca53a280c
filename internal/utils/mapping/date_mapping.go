package mapping

import (
	"time"

	"github.com/pfmgr/portfolio_ledger_app/internal/models"
)

// ToModelDate formats a calendar date for storage (YYYY-MM-DD).
func ToModelDate(t time.Time) string {
	return t.UTC().Format(models.DateLayout)
}

// ToDomainDate parses a stored calendar date into a UTC-midnight time.Time.
func ToDomainDate(s string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, s, time.UTC)
}
