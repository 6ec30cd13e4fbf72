package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicdesk/models"
)

func TestDaysInRange(t *testing.T) {
	days, err := DaysInRange("2026-09-07", "2026-09-09")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-07", "2026-09-08", "2026-09-09"}, days)

	days, err = DaysInRange("2026-09-07", "2026-09-07")
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestDaysInRangeRejectsBadInput(t *testing.T) {
	_, err := DaysInRange("2026-09-09", "2026-09-07")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	_, err = DaysInRange("bogus", "2026-09-07")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	// Beyond the range cap.
	_, err = DaysInRange("2026-01-01", "2028-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestBlockSlotsSkipsBookedRows(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-11:00", 30)}
	eng, grid := testEngine(prov)
	ctx := context.Background()

	_, err := eng.BookSlot(ctx, BookSlotRequest{
		ProviderID: "p1", Start: mustInstant(t, "2026-09-08T09:00:00Z"), AppointmentID: "appt-1",
	})
	require.NoError(t, err)

	res, err := eng.BlockSlots(ctx, BlockRequest{
		ProviderID: "p1", DateFrom: "2026-09-08", DateTo: "2026-09-08",
		Kind: BlockKindLeave, BlockingRef: "leave-1", Actor: "staff-1",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Blocked)
	assert.EqualValues(t, 1, res.Skipped)

	rows, err := grid.GetDay(ctx, "p1", "2026-09-08")
	require.NoError(t, err)
	for _, row := range rows {
		if row.Start == 540 {
			assert.Equal(t, models.SlotBooked, row.Status)
		} else {
			assert.Equal(t, models.SlotBlockedLeave, row.Status)
			assert.Equal(t, "leave-1", row.BlockingRef)
		}
	}
}

func TestBlockSlotsMaterializesMissingDays(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-10:00", 30)}
	eng, grid := testEngine(prov)
	ctx := context.Background()

	res, err := eng.BlockSlots(ctx, BlockRequest{
		ProviderID: "p1", DateFrom: "2026-09-07", DateTo: "2026-09-08", Kind: BlockKindEvent, BlockingRef: "ev-1",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, res.Blocked)

	for _, day := range []string{"2026-09-07", "2026-09-08"} {
		count, err := grid.CountDay(ctx, "p1", day)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count, day)
	}
}

func TestUnblockSlotsRoundTrip(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-11:00", 30)}
	eng, _ := testEngine(prov)
	ctx := context.Background()

	_, err := eng.BlockSlots(ctx, BlockRequest{
		ProviderID: "p1", DateFrom: "2026-09-08", DateTo: "2026-09-08", Kind: BlockKindOther,
	})
	require.NoError(t, err)

	unblocked, err := eng.UnblockSlots(ctx, "p1", "2026-09-08", "2026-09-08", "staff-1")
	require.NoError(t, err)
	assert.EqualValues(t, 4, unblocked)

	avail, err := eng.ResolveAvailability(ctx, "p1", "2026-09-08", 0, "")
	require.NoError(t, err)
	for _, b := range avail.Buckets {
		assert.Equal(t, models.SlotAvailable, b.Status)
	}
}

func TestUnblockSlotsForLeavesOtherRefsBlocked(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-11:00", 30)}
	eng, grid := testEngine(prov)
	ctx := context.Background()

	// Leave blocks the whole day first; the event's block then matches nothing.
	_, err := eng.BlockSlots(ctx, BlockRequest{
		ProviderID: "p1", DateFrom: "2026-09-08", DateTo: "2026-09-08",
		Kind: BlockKindLeave, BlockingRef: "leave-1",
	})
	require.NoError(t, err)
	res, err := eng.BlockSlots(ctx, BlockRequest{
		ProviderID: "p1", DateFrom: "2026-09-08", DateTo: "2026-09-08",
		Kind: BlockKindEvent, BlockingRef: "ev-1",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Blocked)

	// Removing the event must not free the leave's slots.
	unblocked, err := eng.UnblockSlotsFor(ctx, "p1", "2026-09-08", "2026-09-08", "ev-1", "staff-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, unblocked)

	rows, err := grid.GetDay(ctx, "p1", "2026-09-08")
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, models.SlotBlockedLeave, row.Status)
	}
}

func TestBlockSlotsUnknownKind(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-11:00", 30)}
	eng, _ := testEngine(prov)
	_, err := eng.BlockSlots(context.Background(), BlockRequest{
		ProviderID: "p1", DateFrom: "2026-09-08", DateTo: "2026-09-08", Kind: "vacation",
	})
	assert.Error(t, err)
}

func TestEnsureGridIdempotent(t *testing.T) {
	prov := &models.Provider{ID: "p1", Active: true, Hours: weekdayHours("09:00-11:00", 30)}
	eng, grid := testEngine(prov)
	ctx := context.Background()

	require.NoError(t, eng.EnsureGrid(ctx, "p1", "2026-09-08"))
	require.NoError(t, eng.EnsureGrid(ctx, "p1", "2026-09-08"))

	count, err := grid.CountDay(ctx, "p1", "2026-09-08")
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}
