package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicdesk/models"
)

func mustInstant(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestBookSlot(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)

	slot, err := eng.BookSlot(context.Background(), BookSlotRequest{
		ProviderID:    "p1",
		Start:         mustInstant(t, "2026-09-08T10:00:00Z"),
		AppointmentID: "appt-1",
		Actor:         "staff-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SlotBooked, slot.Status)
	assert.Equal(t, "appt-1", slot.BookingRef)
	assert.Equal(t, 600, slot.Start)
	assert.Equal(t, "2026-09-08", slot.Date)
}

func TestBookSlotMisalignedStartBooksContainingBucket(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)

	// 10:10 falls inside the 10:00-10:30 bucket.
	slot, err := eng.BookSlot(context.Background(), BookSlotRequest{
		ProviderID:    "p1",
		Start:         mustInstant(t, "2026-09-08T10:10:00Z"),
		AppointmentID: "appt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 600, slot.Start)
	assert.Equal(t, 630, slot.End)
}

func TestBookSlotOutsideWorkingHours(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)

	_, err := eng.BookSlot(context.Background(), BookSlotRequest{
		ProviderID:    "p1",
		Start:         mustInstant(t, "2026-09-08T20:00:00Z"),
		AppointmentID: "appt-1",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookSlotConflict(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)
	ctx := context.Background()
	start := mustInstant(t, "2026-09-08T10:00:00Z")

	_, err := eng.BookSlot(ctx, BookSlotRequest{ProviderID: "p1", Start: start, AppointmentID: "appt-1"})
	require.NoError(t, err)

	_, err = eng.BookSlot(ctx, BookSlotRequest{ProviderID: "p1", Start: start, AppointmentID: "appt-2"})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestBookSlotInactiveProvider(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: false, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)

	_, err := eng.BookSlot(context.Background(), BookSlotRequest{
		ProviderID: "p1", Start: mustInstant(t, "2026-09-08T10:00:00Z"), AppointmentID: "appt-1",
	})
	assert.ErrorIs(t, err, ErrProviderInactive)
}

func TestBookSlotConcurrentSingleWinner(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)
	ctx := context.Background()
	start := mustInstant(t, "2026-09-08T10:00:00Z")

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = eng.BookSlot(ctx, BookSlotRequest{
				ProviderID:    "p1",
				Start:         start,
				AppointmentID: string(rune('a' + i)),
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotConflict)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestCancelBookingRoundTrip(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)
	ctx := context.Background()
	start := mustInstant(t, "2026-09-08T10:00:00Z")

	_, err := eng.BookSlot(ctx, BookSlotRequest{ProviderID: "p1", Start: start, AppointmentID: "appt-1"})
	require.NoError(t, err)

	freed, err := eng.CancelBooking(ctx, "p1", start, "appt-1", "staff-1")
	require.NoError(t, err)
	assert.Equal(t, models.SlotAvailable, freed.Status)
	assert.Empty(t, freed.BookingRef)

	// The bucket is bookable again.
	_, err = eng.BookSlot(ctx, BookSlotRequest{ProviderID: "p1", Start: start, AppointmentID: "appt-2"})
	require.NoError(t, err)
}

func TestCancelBookingTwice(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-17:00", 30)}
	eng, _ := testEngine(prov)
	ctx := context.Background()
	start := mustInstant(t, "2026-09-08T10:00:00Z")

	_, err := eng.BookSlot(ctx, BookSlotRequest{ProviderID: "p1", Start: start, AppointmentID: "appt-1"})
	require.NoError(t, err)
	_, err = eng.CancelBooking(ctx, "p1", start, "appt-1", "staff-1")
	require.NoError(t, err)

	_, err = eng.CancelBooking(ctx, "p1", start, "appt-1", "staff-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
