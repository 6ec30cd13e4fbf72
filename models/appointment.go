package models

import "time"

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
)

// Appointment is the record created after a slot booking succeeds. The
// scheduling engine only ever sees its ID (as Slot.BookingRef) plus the
// (provider, start, duration) triple needed to locate the matching slot;
// everything else belongs to the front-desk workflow.
type Appointment struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	PatientRef  string    `bson:"patientRef" json:"patientRef"`
	Date        string    `bson:"date" json:"date"`
	Start       int       `bson:"start" json:"start"` // minutes from midnight
	DurationMin int       `bson:"durationMin" json:"durationMin"`
	Status      string    `bson:"status" json:"status"`
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedBy   string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
