package scheduling

import (
	"context"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	eventRepo "clinicdesk/database/repository/event"
	leaveRepo "clinicdesk/database/repository/leave"
	providerRepo "clinicdesk/database/repository/provider"
	slotgridRepo "clinicdesk/database/repository/slotgrid"
	"clinicdesk/models"
)

// Block kinds accepted by BlockSlots.
const (
	BlockKindLeave = "leave"
	BlockKindEvent = "event"
	BlockKindOther = "other"
)

// BookSlotRequest identifies the bucket to book by its absolute start
// instant; the engine derives the calendar day and minute-of-day from it.
type BookSlotRequest struct {
	ProviderID    string
	Start         time.Time
	AppointmentID string
	SubjectID     string
	Reason        string
	Actor         string
}

// BlockRequest marks a contiguous inclusive date range unavailable for one
// provider.
type BlockRequest struct {
	ProviderID  string
	DateFrom    string
	DateTo      string
	Kind        string
	BlockingRef string
	Reason      string
	Actor       string
}

// BlockResult reports how many rows a block operation transitioned and how
// many booked rows it deliberately left alone.
type BlockResult struct {
	Blocked int64 `json:"blocked"`
	Skipped int64 `json:"skipped"`
}

// Engine is the slot scheduling and booking engine: availability resolution,
// atomic booking/cancellation, and bulk blocking.
type Engine interface {
	// ResolveAvailability returns the ordered bucket list for one
	// provider/day, preferring the persisted grid and falling back to
	// on-the-fly generation (flagged ungrounded) when no grid rows exist.
	ResolveAvailability(ctx context.Context, providerID, date string, durationMin int, excludeAppointmentID string) (*models.Availability, error)
	// BookSlot transitions the bucket containing req.Start from available to
	// booked. Exactly one of N concurrent calls for the same bucket succeeds.
	BookSlot(ctx context.Context, req BookSlotRequest) (*models.Slot, error)
	// CancelBooking reverses BookSlot, returning the freed slot.
	CancelBooking(ctx context.Context, providerID string, start time.Time, appointmentID, actor string) (*models.Slot, error)
	// BlockSlots marks every non-booked bucket in the range blocked_<kind>.
	BlockSlots(ctx context.Context, req BlockRequest) (BlockResult, error)
	// UnblockSlots returns every blocked bucket in the range to available.
	UnblockSlots(ctx context.Context, providerID, dateFrom, dateTo, actor string) (int64, error)
	// UnblockSlotsFor is UnblockSlots restricted to buckets blocked under the
	// given ref, so removing one leave or event never frees buckets blocked
	// by another.
	UnblockSlotsFor(ctx context.Context, providerID, dateFrom, dateTo, blockingRef, actor string) (int64, error)
	// EnsureGrid materializes the day's grid rows from declared working
	// hours. Idempotent and safe under concurrent callers.
	EnsureGrid(ctx context.Context, providerID, date string) error
}

// DefaultSchedulingEngine is the production engine. All collaborators are
// injected; it holds no state of its own.
type DefaultSchedulingEngine struct {
	Grid         slotgridRepo.GridRepository
	Providers    providerRepo.ProviderRepository
	Leaves       leaveRepo.LeaveRepository
	Events       eventRepo.EventRepository
	Appointments appointmentRepo.AppointmentRepository
}
