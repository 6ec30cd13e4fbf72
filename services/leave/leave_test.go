package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"clinicdesk/models"
	"clinicdesk/services/scheduling"
)

type fakeLeaveStore struct {
	periods map[string]*models.LeavePeriod
}

func newFakeLeaveStore() *fakeLeaveStore {
	return &fakeLeaveStore{periods: make(map[string]*models.LeavePeriod)}
}

func (f *fakeLeaveStore) Create(ctx context.Context, leave *models.LeavePeriod) error {
	if leave.ID == "" {
		leave.ID = "leave-" + leave.DateFrom
	}
	f.periods[leave.ID] = leave
	return nil
}

func (f *fakeLeaveStore) GetByID(ctx context.Context, id string) (*models.LeavePeriod, error) {
	p, ok := f.periods[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (f *fakeLeaveStore) Delete(ctx context.Context, id string) error {
	delete(f.periods, id)
	return nil
}

func (f *fakeLeaveStore) ListByProvider(ctx context.Context, providerID string) ([]models.LeavePeriod, error) {
	var out []models.LeavePeriod
	for _, p := range f.periods {
		if p.ProviderID == providerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) ExistsOn(ctx context.Context, providerID, date string) (bool, error) {
	for _, p := range f.periods {
		if p.ProviderID == providerID && p.DateFrom <= date && date <= p.DateTo {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveStore) EnsureIndexes() error { return nil }

type fakeScheduler struct {
	blockErr     error
	blockResult  scheduling.BlockResult
	lastBlock    scheduling.BlockRequest
	lastUnblock  string // blockingRef passed to UnblockSlotsFor
	unblockCount int64
}

func (f *fakeScheduler) ResolveAvailability(ctx context.Context, providerID, date string, durationMin int, excludeAppointmentID string) (*models.Availability, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeScheduler) BookSlot(ctx context.Context, req scheduling.BookSlotRequest) (*models.Slot, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeScheduler) CancelBooking(ctx context.Context, providerID string, start time.Time, appointmentID, actor string) (*models.Slot, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeScheduler) BlockSlots(ctx context.Context, req scheduling.BlockRequest) (scheduling.BlockResult, error) {
	f.lastBlock = req
	return f.blockResult, f.blockErr
}

func (f *fakeScheduler) UnblockSlots(ctx context.Context, providerID, dateFrom, dateTo, actor string) (int64, error) {
	return f.UnblockSlotsFor(ctx, providerID, dateFrom, dateTo, "", actor)
}

func (f *fakeScheduler) UnblockSlotsFor(ctx context.Context, providerID, dateFrom, dateTo, blockingRef, actor string) (int64, error) {
	f.lastUnblock = blockingRef
	return f.unblockCount, nil
}

func (f *fakeScheduler) EnsureGrid(ctx context.Context, providerID, date string) error { return nil }

func TestCreateLeaveBlocksRange(t *testing.T) {
	sched := &fakeScheduler{blockResult: scheduling.BlockResult{Blocked: 16, Skipped: 2}}
	svc := &DefaultLeaveService{Repo: newFakeLeaveStore(), Scheduler: sched}

	outcome, err := svc.Create(context.Background(), CreateLeaveRequest{
		ProviderID: "p1", DateFrom: "2026-09-07", DateTo: "2026-09-08", Reason: "conference", Actor: "staff-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Leave.ID)
	assert.EqualValues(t, 16, outcome.Block.Blocked)
	assert.EqualValues(t, 2, outcome.Block.Skipped)
	assert.Equal(t, scheduling.BlockKindLeave, sched.lastBlock.Kind)
	assert.Equal(t, outcome.Leave.ID, sched.lastBlock.BlockingRef)
}

func TestCreateLeavePropagatesBlockFailure(t *testing.T) {
	sched := &fakeScheduler{blockErr: errors.New("grid unreachable")}
	store := newFakeLeaveStore()
	svc := &DefaultLeaveService{Repo: store, Scheduler: sched}

	_, err := svc.Create(context.Background(), CreateLeaveRequest{
		ProviderID: "p1", DateFrom: "2026-09-07", DateTo: "2026-09-08",
	})
	require.Error(t, err)
	// The period record survives so the block can be retried from it.
	assert.Len(t, store.periods, 1)
}

func TestRemoveLeaveUnblocksOwnRefOnly(t *testing.T) {
	sched := &fakeScheduler{unblockCount: 16}
	store := newFakeLeaveStore()
	svc := &DefaultLeaveService{Repo: store, Scheduler: sched}
	ctx := context.Background()

	outcome, err := svc.Create(ctx, CreateLeaveRequest{ProviderID: "p1", DateFrom: "2026-09-07", DateTo: "2026-09-08"})
	require.NoError(t, err)

	period, unblocked, err := svc.Remove(ctx, outcome.Leave.ID, "staff-1")
	require.NoError(t, err)
	assert.EqualValues(t, 16, unblocked)
	assert.Equal(t, "p1", period.ProviderID)
	assert.Equal(t, outcome.Leave.ID, sched.lastUnblock)
	assert.Empty(t, store.periods)
}

func TestRemoveUnknownLeave(t *testing.T) {
	svc := &DefaultLeaveService{Repo: newFakeLeaveStore(), Scheduler: &fakeScheduler{}}
	_, _, err := svc.Remove(context.Background(), "ghost", "staff-1")
	assert.ErrorIs(t, err, ErrLeaveNotFound)
}
