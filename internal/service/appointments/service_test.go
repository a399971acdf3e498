package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/appointment"
)

type fakeAppointments struct {
	byID map[int64]*domain.Appointment
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointments) ListByPhone(_ context.Context, phone string) ([]*domain.Appointment, error) {
	out := []*domain.Appointment{}
	for _, a := range f.byID {
		if a.Phone == phone {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCalendar struct {
	deleted []string
	err     error
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, _, eventID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeConfigs struct{}

func (fakeConfigs) Resolve(_ context.Context, slug string) (*domain.BusinessConfig, error) {
	return &domain.BusinessConfig{Slug: slug, CalendarID: "cal-" + slug}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeAppointments, cal *fakeCalendar) *Service {
	return NewService(repo, cal, fakeConfigs{}, nopLogger{})
}

func testAppointment(id int64, phone string) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		BusinessSlug:    "barber",
		Phone:           phone,
		StartTime:       time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		CalendarEventID: "evt-1",
	}
}

func TestListEmptyPhone(t *testing.T) {
	svc := newService(&fakeAppointments{byID: map[int64]*domain.Appointment{}}, &fakeCalendar{})

	got, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCancelDeletesEventAndRow(t *testing.T) {
	repo := &fakeAppointments{byID: map[int64]*domain.Appointment{1: testAppointment(1, "0541234567")}}
	cal := &fakeCalendar{}
	svc := newService(repo, cal)

	require.NoError(t, svc.Cancel(context.Background(), "0541234567", 1))

	assert.Equal(t, []string{"evt-1"}, cal.deleted)
	assert.NotContains(t, repo.byID, int64(1))
}

func TestCancelUnknownAppointment(t *testing.T) {
	svc := newService(&fakeAppointments{byID: map[int64]*domain.Appointment{}}, &fakeCalendar{})

	err := svc.Cancel(context.Background(), "0541234567", 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelForeignAppointment(t *testing.T) {
	repo := &fakeAppointments{byID: map[int64]*domain.Appointment{1: testAppointment(1, "0541111111")}}
	cal := &fakeCalendar{}
	svc := newService(repo, cal)

	err := svc.Cancel(context.Background(), "0542222222", 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// запись не тронута
	assert.Contains(t, repo.byID, int64(1))
	assert.Empty(t, cal.deleted)
}

func TestCancelCalendarFailureKeepsRow(t *testing.T) {
	repo := &fakeAppointments{byID: map[int64]*domain.Appointment{1: testAppointment(1, "0541234567")}}
	cal := &fakeCalendar{err: assert.AnError}
	svc := newService(repo, cal)

	err := svc.Cancel(context.Background(), "0541234567", 1)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, repo.byID, int64(1))
}
