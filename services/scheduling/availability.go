package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"clinicdesk/models"
	"clinicdesk/utils"
)

// ResolveAvailability produces the ordered bucket list for one provider/day.
// Grid rows are the ground truth; when none exist the result is synthesized
// from declared hours and flagged ungrounded.
func (e *DefaultSchedulingEngine) ResolveAvailability(ctx context.Context, providerID, date string, durationMin int, excludeAppointmentID string) (*models.Availability, error) {
	prov, err := e.provider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !prov.Active {
		return nil, ErrProviderInactive
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	hours, ok := prov.HoursFor(day.Weekday())
	if !ok || !hours.Working {
		return &models.Availability{
			ProviderID: providerID,
			Date:       date,
			Source:     models.AvailabilitySourceGrid,
			Grounded:   true,
			NotWorking: true,
		}, nil
	}

	if durationMin <= 0 {
		durationMin = hours.SlotDurationMin
	}
	window := ParseWindow(hours.Window, durationMin)

	rows, err := e.Grid.GetDay(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("query slot grid: %w", err)
	}
	if len(rows) == 0 {
		utils.GetLogger().Warn("no grid rows for day, serving fallback availability",
			zap.String("providerID", providerID), zap.String("date", date))
		return e.fallbackAvailability(ctx, providerID, date, window), nil
	}

	// Rows outside the currently declared window (e.g. after an hours
	// change) are excluded from output, not deleted.
	buckets := make([]models.AvailabilityBucket, 0, len(rows))
	for _, row := range rows {
		if !window.Contains(row.Start, row.End) {
			continue
		}
		status := row.Status
		if status == models.SlotBooked && excludeAppointmentID != "" && row.BookingRef == excludeAppointmentID {
			// A caller updating its own appointment sees its current slot as
			// selectable.
			status = models.SlotAvailable
		}
		buckets = append(buckets, models.AvailabilityBucket{
			Start:  row.Start,
			End:    row.End,
			Label:  BucketLabel(row.Start, row.End),
			Status: status,
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start < buckets[j].Start })

	return &models.Availability{
		ProviderID: providerID,
		Date:       date,
		Source:     models.AvailabilitySourceGrid,
		Grounded:   true,
		Buckets:    buckets,
	}, nil
}
