package scheduling

import "errors"

var (
	// ErrProviderNotFound means the provider id resolves to nothing.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrProviderInactive means the provider exists but is not taking bookings.
	ErrProviderInactive = errors.New("provider is not active")
	// ErrSlotNotFound means the requested instant does not align with any
	// bucket on the grid (misaligned time or non-working day).
	ErrSlotNotFound = errors.New("no slot matches the requested time")
	// ErrSlotConflict means the conditional write lost the race: the bucket
	// was no longer available at write time.
	ErrSlotConflict = errors.New("slot is no longer available")
	// ErrBookingNotFound means there is no booked slot carrying the given
	// appointment reference (e.g. a double cancel).
	ErrBookingNotFound = errors.New("no booked slot matches the appointment")
	// ErrInvalidDateRange means dateFrom is after dateTo or a date failed to
	// parse.
	ErrInvalidDateRange = errors.New("invalid date range")
)
