package models

import "time"

// ClinicEvent is a clinic-wide blackout (public holiday, renovation, staff
// meeting). While published it blocks the date range for every active
// provider. Events are soft-deleted, never removed.
type ClinicEvent struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	DateFrom  string    `bson:"dateFrom" json:"dateFrom"`
	DateTo    string    `bson:"dateTo" json:"dateTo"`
	Published bool      `bson:"published" json:"published"`
	Deleted   bool      `bson:"deleted" json:"deleted"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
