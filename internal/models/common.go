package models

import "time"

// AuditFields holds timestamps common to all persisted rows.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DateLayout is the storage format for calendar dates (no time component).
// Stored as TEXT so lexicographic comparison matches chronological order.
const DateLayout = "2006-01-02"
