package models

import (
	"strings"
	"time"
)

// Slot statuses. A row is either free, taken by a booking, or blocked for a
// non-booking reason; the blocked_* prefix is relied on in queries.
const (
	SlotAvailable    = "available"
	SlotBooked       = "booked"
	SlotBlockedLeave = "blocked_leave"
	SlotBlockedEvent = "blocked_event"
	SlotBlockedOther = "blocked_other"

	slotBlockedPrefix = "blocked_"
)

// Slot is one bucket of a provider's day grid: the atomic unit of booking.
// Start and End are minutes from midnight (e.g. 540 for 9:00 AM); Date is a
// "2006-01-02" calendar day. (ProviderID, Date, Start) is unique.
type Slot struct {
	ProviderID     string    `bson:"providerId" json:"providerId"`
	Date           string    `bson:"date" json:"date"`
	Start          int       `bson:"start" json:"start"`
	End            int       `bson:"end" json:"end"`
	Status         string    `bson:"status" json:"status"`
	BookingRef     string    `bson:"bookingRef,omitempty" json:"bookingRef,omitempty"`
	BlockingRef    string    `bson:"blockingRef,omitempty" json:"blockingRef,omitempty"`
	BlockingReason string    `bson:"blockingReason,omitempty" json:"blockingReason,omitempty"`
	LastModifiedBy string    `bson:"lastModifiedBy,omitempty" json:"lastModifiedBy,omitempty"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsBlocked reports whether the slot carries any blocked_* status.
func (s Slot) IsBlocked() bool {
	return strings.HasPrefix(s.Status, slotBlockedPrefix)
}

// Contains reports whether the given minute-of-day falls inside [Start, End).
func (s Slot) Contains(minute int) bool {
	return minute >= s.Start && minute < s.End
}

// AvailabilityBucket is one resolved bucket in an availability response.
type AvailabilityBucket struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Label  string `json:"label"` // "09:00-09:30"
	Status string `json:"status"`
}

// Availability provenance values.
const (
	AvailabilitySourceGrid     = "grid"
	AvailabilitySourceFallback = "fallback"
)

// Availability is the resolver's answer for one provider/day. Grounded is
// false when the buckets were synthesized from declared hours alone and must
// not be treated as booking-safe.
type Availability struct {
	ProviderID string               `json:"providerId"`
	Date       string               `json:"date"`
	Source     string               `json:"source"`
	Grounded   bool                 `json:"grounded"`
	NotWorking bool                 `json:"notWorking"`
	Buckets    []AvailabilityBucket `json:"buckets"`
}
