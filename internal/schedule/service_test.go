package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/config"
)

type fakeRepo struct {
	appointments []Appointment
	blocked      []BlockedRange
	candidates   map[uuid.UUID]bool

	listApptErr    error
	listBlockedErr error
	created        []Appointment
}

func (f *fakeRepo) ListAppointments(ctx context.Context) ([]Appointment, error) {
	return f.appointments, f.listApptErr
}

func (f *fakeRepo) ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	if f.listApptErr != nil {
		return nil, f.listApptErr
	}
	var out []Appointment
	for _, a := range f.appointments {
		if !a.AppointmentTime.Before(from) && a.AppointmentTime.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.appointments {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	f.appointments = append(f.appointments, a)
	return &a, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	for i, existing := range f.appointments {
		if existing.ID == a.ID {
			a.CreatedAt = existing.CreatedAt
			f.appointments[i] = a
			return &a, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	for i, a := range f.appointments {
		if a.ID == id {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return nil
		}
	}
	return ErrAppointmentNotFound
}

func (f *fakeRepo) ListBlockedRanges(ctx context.Context) ([]BlockedRange, error) {
	return f.blocked, f.listBlockedErr
}

func (f *fakeRepo) CreateBlockedRange(ctx context.Context, b BlockedRange) (*BlockedRange, error) {
	b.ID = uuid.New()
	f.blocked = append(f.blocked, b)
	return &b, nil
}

func (f *fakeRepo) DeleteBlockedRange(ctx context.Context, id uuid.UUID) error {
	for i, b := range f.blocked {
		if b.ID == id {
			f.blocked = append(f.blocked[:i], f.blocked[i+1:]...)
			return nil
		}
	}
	return ErrBlockedRangeNotFound
}

func (f *fakeRepo) CandidateExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.candidates[id], nil
}

func testConfig() config.Config {
	return config.Config{
		WeekStart:     time.Monday,
		SlotStartHour: 8,
		SlotEndHour:   22,
	}
}

func TestBook_RejectsBlockedDay(t *testing.T) {
	candidateID := uuid.New()
	end := day(2025, time.January, 10)

	repo := &fakeRepo{
		candidates: map[uuid.UUID]bool{candidateID: true},
		blocked:    []BlockedRange{{StartDate: day(2025, time.January, 1), EndDate: &end}},
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Book(context.Background(), Appointment{
		CandidateID:     candidateID,
		AppointmentTime: day(2025, time.January, 6).Add(10 * time.Hour),
	})
	if !errors.Is(err, ErrDayBlocked) {
		t.Fatalf("expected ErrDayBlocked, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("no appointment row should have been created")
	}
}

func TestBook_UnknownCandidate(t *testing.T) {
	repo := &fakeRepo{candidates: map[uuid.UUID]bool{}}
	svc := NewService(repo, testConfig())

	_, err := svc.Book(context.Background(), Appointment{
		CandidateID:     uuid.New(),
		AppointmentTime: day(2025, time.January, 6).Add(10 * time.Hour),
	})
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestBook_NoConflictDetection(t *testing.T) {
	candidateID := uuid.New()
	repo := &fakeRepo{candidates: map[uuid.UUID]bool{candidateID: true}}
	svc := NewService(repo, testConfig())

	at := day(2025, time.January, 6).Add(10 * time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := svc.Book(context.Background(), Appointment{CandidateID: candidateID, AppointmentTime: at}); err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
	}

	// both bookings land in the same cell, by design
	grid := svc.WeekView(context.Background(), "2025-01-06", day(2025, time.January, 6))
	cell := grid.Days[0].Slots[10-8]
	if len(cell.Appointments) != 2 {
		t.Fatalf("expected 2 appointments in shared cell, got %d", len(cell.Appointments))
	}
}

func TestWeekView_FailsOpenOnReadErrors(t *testing.T) {
	repo := &fakeRepo{
		listApptErr:    errors.New("connection refused"),
		listBlockedErr: errors.New("connection refused"),
	}
	svc := NewService(repo, testConfig())

	grid := svc.WeekView(context.Background(), "2025-01-06", day(2025, time.January, 6))

	if !grid.Start.Equal(day(2025, time.January, 6)) {
		t.Fatalf("week start = %s, want 2025-01-06", grid.Start.Format("2006-01-02"))
	}
	for _, col := range grid.Days {
		if col.Blocked {
			t.Fatal("failed blocked-range read must render unblocked")
		}
		for _, cell := range col.Slots {
			if len(cell.Appointments) != 0 {
				t.Fatal("failed appointment read must render empty cells")
			}
		}
	}
}

func TestBlockRange_Validation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, testConfig())

	_, err := svc.BlockRange(context.Background(), BlockedRange{})
	if !errors.Is(err, ErrMissingStartDate) {
		t.Fatalf("expected ErrMissingStartDate, got %v", err)
	}

	end := day(2025, time.January, 1)
	_, err = svc.BlockRange(context.Background(), BlockedRange{StartDate: day(2025, time.January, 5), EndDate: &end})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}

	if _, err := svc.BlockRange(context.Background(), BlockedRange{StartDate: day(2025, time.January, 5)}); err != nil {
		t.Fatalf("open-ended block should be accepted, got %v", err)
	}
}
