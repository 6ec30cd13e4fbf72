package scheduling

import (
	"context"

	"go.uber.org/zap"

	"clinicdesk/models"
	"clinicdesk/utils"
)

// GenerateBuckets enumerates contiguous buckets from window start to window
// end, dropping a trailing bucket that would overrun the window. Pure
// function; every bucket comes out available.
func GenerateBuckets(w WorkingWindow) []models.AvailabilityBucket {
	if w.DurationMin <= 0 || w.End <= w.Start {
		return nil
	}
	var buckets []models.AvailabilityBucket
	for start := w.Start; start+w.DurationMin <= w.End; start += w.DurationMin {
		end := start + w.DurationMin
		buckets = append(buckets, models.AvailabilityBucket{
			Start:  start,
			End:    end,
			Label:  BucketLabel(start, end),
			Status: models.SlotAvailable,
		})
	}
	return buckets
}

// fallbackAvailability synthesizes a day's availability purely from declared
// hours when the grid has no rows. The leave/event/appointment overlay is a
// best-effort, non-atomic check: the result is advisory and callers must not
// treat it as booking-safe.
func (e *DefaultSchedulingEngine) fallbackAvailability(ctx context.Context, providerID, date string, w WorkingWindow) *models.Availability {
	logger := utils.GetLogger()
	buckets := GenerateBuckets(w)

	onLeave, err := e.Leaves.ExistsOn(ctx, providerID, date)
	if err != nil {
		logger.Warn("fallback availability: leave check failed",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
	}
	var eventBlocked bool
	if !onLeave {
		events, err := e.Events.ListPublishedOverlapping(ctx, date, date)
		if err != nil {
			logger.Warn("fallback availability: event check failed",
				zap.String("date", date), zap.Error(err))
		}
		eventBlocked = len(events) > 0
	}

	switch {
	case onLeave:
		for i := range buckets {
			buckets[i].Status = models.SlotBlockedLeave
		}
	case eventBlocked:
		for i := range buckets {
			buckets[i].Status = models.SlotBlockedEvent
		}
	default:
		e.overlayAppointments(ctx, providerID, date, buckets)
	}

	return &models.Availability{
		ProviderID: providerID,
		Date:       date,
		Source:     models.AvailabilitySourceFallback,
		Grounded:   false,
		Buckets:    buckets,
	}
}

// overlayAppointments marks buckets overlapping an existing appointment as
// booked. Best effort only: appointments recorded while the grid was absent
// are the one thing the pure generator cannot see.
func (e *DefaultSchedulingEngine) overlayAppointments(ctx context.Context, providerID, date string, buckets []models.AvailabilityBucket) {
	appts, err := e.Appointments.ListForDay(ctx, providerID, date)
	if err != nil {
		utils.GetLogger().Warn("fallback availability: appointment scan failed",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
		return
	}
	for _, appt := range appts {
		apptEnd := appt.Start + appt.DurationMin
		for i := range buckets {
			if buckets[i].Start < apptEnd && buckets[i].End > appt.Start {
				buckets[i].Status = models.SlotBooked
			}
		}
	}
}
