package models

import "time"

// LeavePeriod is an approved absence for one provider over an inclusive date
// range. Its creation blocks the matching slots and its removal unblocks the
// same range.
type LeavePeriod struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	DateFrom   string    `bson:"dateFrom" json:"dateFrom"`
	DateTo     string    `bson:"dateTo" json:"dateTo"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedBy  string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
