package scheduling

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"clinicdesk/models"
)

// fakeGridRepo is an in-memory GridRepository with the same conditional-write
// semantics as the Mongo implementation: unique (provider, date, start) rows
// and status-guarded transitions.
type fakeGridRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newFakeGridRepo() *fakeGridRepo {
	return &fakeGridRepo{slots: make(map[string]*models.Slot)}
}

func gridKey(providerID, date string, start int) string {
	return providerID + "|" + date + "|" + FormatClock(start)
}

func (f *fakeGridRepo) InsertDay(ctx context.Context, slots []models.Slot) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inserted := 0
	for i := range slots {
		key := gridKey(slots[i].ProviderID, slots[i].Date, slots[i].Start)
		if _, exists := f.slots[key]; exists {
			continue
		}
		s := slots[i]
		f.slots[key] = &s
		inserted++
	}
	return inserted, nil
}

func (f *fakeGridRepo) GetDay(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows []models.Slot
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.Date == date {
			rows = append(rows, *s)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Start < rows[j].Start })
	return rows, nil
}

func (f *fakeGridRepo) CountDay(ctx context.Context, providerID, date string) (int64, error) {
	rows, _ := f.GetDay(ctx, providerID, date)
	return int64(len(rows)), nil
}

func (f *fakeGridRepo) CountBookedDay(ctx context.Context, providerID, date string) (int64, error) {
	rows, _ := f.GetDay(ctx, providerID, date)
	var n int64
	for _, s := range rows {
		if s.Status == models.SlotBooked {
			n++
		}
	}
	return n, nil
}

func (f *fakeGridRepo) FindContaining(ctx context.Context, providerID, date string, minute int) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.Date == date && s.Contains(minute) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeGridRepo) MarkBooked(ctx context.Context, providerID, date string, start int, bookingRef, actor string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[gridKey(providerID, date, start)]
	if !ok || s.Status != models.SlotAvailable {
		return nil, mongo.ErrNoDocuments
	}
	s.Status = models.SlotBooked
	s.BookingRef = bookingRef
	s.LastModifiedBy = actor
	s.UpdatedAt = time.Now()
	cp := *s
	return &cp, nil
}

func (f *fakeGridRepo) ClearBooking(ctx context.Context, providerID, date, bookingRef, actor string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.Date == date && s.Status == models.SlotBooked && s.BookingRef == bookingRef {
			s.Status = models.SlotAvailable
			s.BookingRef = ""
			s.LastModifiedBy = actor
			s.UpdatedAt = time.Now()
			cp := *s
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeGridRepo) BlockDay(ctx context.Context, providerID, date, status, blockingRef, reason, actor string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.Date == date && s.Status == models.SlotAvailable {
			s.Status = status
			s.BlockingRef = blockingRef
			s.BlockingReason = reason
			s.LastModifiedBy = actor
			n++
		}
	}
	return n, nil
}

func (f *fakeGridRepo) UnblockDay(ctx context.Context, providerID, date, blockingRef, actor string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, s := range f.slots {
		if s.ProviderID != providerID || s.Date != date || !strings.HasPrefix(s.Status, "blocked_") {
			continue
		}
		if blockingRef != "" && s.BlockingRef != blockingRef {
			continue
		}
		s.Status = models.SlotAvailable
		s.BlockingRef = ""
		s.BlockingReason = ""
		s.LastModifiedBy = actor
		n++
	}
	return n, nil
}

func (f *fakeGridRepo) EnsureIndexes() error { return nil }

// fakeProviderRepo serves a fixed provider set.
type fakeProviderRepo struct {
	providers map[string]*models.Provider
}

func newFakeProviderRepo(providers ...*models.Provider) *fakeProviderRepo {
	m := make(map[string]*models.Provider, len(providers))
	for _, p := range providers {
		m[p.ID] = p
	}
	return &fakeProviderRepo{providers: m}
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error {
	f.providers[p.ID] = p
	return nil
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) UpdateHours(ctx context.Context, id string, hours map[string]models.WorkingHours) error {
	p, ok := f.providers[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Hours = hours
	return nil
}

func (f *fakeProviderRepo) SetActive(ctx context.Context, id string, active bool) error {
	p, ok := f.providers[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Active = active
	return nil
}

func (f *fakeProviderRepo) EnsureIndexes() error { return nil }

// fakeLeaveRepo serves leave periods from memory.
type fakeLeaveRepo struct {
	periods map[string]*models.LeavePeriod
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{periods: make(map[string]*models.LeavePeriod)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, leave *models.LeavePeriod) error {
	if leave.ID == "" {
		leave.ID = "leave-" + leave.ProviderID + "-" + leave.DateFrom
	}
	f.periods[leave.ID] = leave
	return nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (*models.LeavePeriod, error) {
	p, ok := f.periods[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.periods[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.periods, id)
	return nil
}

func (f *fakeLeaveRepo) ListByProvider(ctx context.Context, providerID string) ([]models.LeavePeriod, error) {
	var out []models.LeavePeriod
	for _, p := range f.periods {
		if p.ProviderID == providerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ExistsOn(ctx context.Context, providerID, date string) (bool, error) {
	for _, p := range f.periods {
		if p.ProviderID == providerID && p.DateFrom <= date && date <= p.DateTo {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) EnsureIndexes() error { return nil }

// fakeEventRepo serves clinic events from memory.
type fakeEventRepo struct {
	events map[string]*models.ClinicEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*models.ClinicEvent)}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.ClinicEvent) error {
	if event.ID == "" {
		event.ID = "event-" + event.DateFrom + "-" + event.Title
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*models.ClinicEvent, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) SetPublished(ctx context.Context, id string, published bool) error {
	e, ok := f.events[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	e.Published = published
	return nil
}

func (f *fakeEventRepo) SetDeleted(ctx context.Context, id string) error {
	e, ok := f.events[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	e.Deleted = true
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]models.ClinicEvent, error) {
	var out []models.ClinicEvent
	for _, e := range f.events {
		if !e.Deleted {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListPublishedOverlapping(ctx context.Context, dateFrom, dateTo string) ([]models.ClinicEvent, error) {
	var out []models.ClinicEvent
	for _, e := range f.events {
		if e.Published && !e.Deleted && e.DateFrom <= dateTo && dateFrom <= e.DateTo {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) EnsureIndexes() error { return nil }

// fakeAppointmentRepo serves appointment records from memory.
type fakeAppointmentRepo struct {
	appts map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	f.appts[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) SetStatus(ctx context.Context, id, status string) error {
	a, ok := f.appts[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id string) error {
	delete(f.appts, id)
	return nil
}

func (f *fakeAppointmentRepo) ListForDay(ctx context.Context, providerID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProviderID == providerID && a.Date == date && a.Status != models.AppointmentCancelled {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) EnsureIndexes() error { return nil }

// weekdayHours builds an every-day working declaration for tests.
func weekdayHours(window string, duration int) map[string]models.WorkingHours {
	hours := make(map[string]models.WorkingHours, 7)
	for d := 0; d < 7; d++ {
		hours[string(rune('0'+d))] = models.WorkingHours{
			Working:         true,
			Window:          window,
			SlotDurationMin: duration,
		}
	}
	return hours
}

func testEngine(providers ...*models.Provider) (*DefaultSchedulingEngine, *fakeGridRepo) {
	grid := newFakeGridRepo()
	eng := &DefaultSchedulingEngine{
		Grid:         grid,
		Providers:    newFakeProviderRepo(providers...),
		Leaves:       newFakeLeaveRepo(),
		Events:       newFakeEventRepo(),
		Appointments: newFakeAppointmentRepo(),
	}
	return eng, grid
}
