package domain

import "time"

// AuditFields holds the creation/update timestamps shared by persisted entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
