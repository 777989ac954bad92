package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/briandean03/interview-manager-staging/internal/config"
)

var (
	ErrDayBlocked       = errors.New("day is blocked for booking")
	ErrMissingTime      = errors.New("appointment time is required")
	ErrMissingCandidate = errors.New("candidate reference is required")
	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrMissingStartDate = errors.New("start date is required")
)

type Service struct {
	repo Repository
	cfg  config.Config
}

func NewService(repo Repository, cfg config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// WeekView builds the booking grid for the week containing the date query
// parameter. An unparseable parameter falls back to today; failed reads fail
// open to an empty grid (nothing booked, nothing blocked) so the calendar
// still renders. Read failures are logged, never swallowed silently.
func (s *Service) WeekView(ctx context.Context, dateParam string, now time.Time) WeekGrid {
	ref := ParseDateParam(dateParam, now)
	start := WeekStart(ref, s.cfg.WeekStart)
	end := start.AddDate(0, 0, 7)

	appts, err := s.repo.ListAppointmentsBetween(ctx, start, end)
	if err != nil {
		log.Printf("week view: list appointments failed, rendering empty: %v", err)
		appts = nil
	}

	blocked, err := s.repo.ListBlockedRanges(ctx)
	if err != nil {
		log.Printf("week view: list blocked ranges failed, rendering empty: %v", err)
		blocked = nil
	}

	return BuildWeek(ref, appts, blocked, s.cfg.WeekStart, s.cfg.SlotStartHour, s.cfg.SlotEndHour)
}

// Book creates an appointment from the booking form. The candidate reference
// must resolve and the day must not be blocked; beyond that there is no
// conflict detection, so two appointments may land in the same slot.
func (s *Service) Book(ctx context.Context, a Appointment) (*Appointment, error) {
	if err := s.validateBooking(ctx, a); err != nil {
		return nil, err
	}

	exists, err := s.repo.CandidateExists(ctx, a.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("check candidate: %w", err)
	}
	if !exists {
		return nil, ErrCandidateNotFound
	}

	created, err := s.repo.CreateAppointment(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return created, nil
}

// Reschedule applies the booking form to an existing appointment. The
// candidate reference is immutable; only time and form fields change.
func (s *Service) Reschedule(ctx context.Context, a Appointment) (*Appointment, error) {
	existing, err := s.repo.GetAppointmentByID(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	a.CandidateID = existing.CandidateID
	if err := s.validateBooking(ctx, a); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateAppointment(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return updated, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func (s *Service) AppointmentsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]Appointment, error) {
	appts, err := s.repo.ListAppointmentsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by candidate: %w", err)
	}
	return appts, nil
}

func (s *Service) BlockedRanges(ctx context.Context) ([]BlockedRange, error) {
	ranges, err := s.repo.ListBlockedRanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blocked ranges: %w", err)
	}
	return ranges, nil
}

func (s *Service) BlockRange(ctx context.Context, b BlockedRange) (*BlockedRange, error) {
	if b.StartDate.IsZero() {
		return nil, ErrMissingStartDate
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return nil, ErrInvalidDateRange
	}

	created, err := s.repo.CreateBlockedRange(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create blocked range: %w", err)
	}
	return created, nil
}

func (s *Service) UnblockRange(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBlockedRange(ctx, id); err != nil {
		return fmt.Errorf("delete blocked range: %w", err)
	}
	return nil
}

func (s *Service) validateBooking(ctx context.Context, a Appointment) error {
	if a.CandidateID == uuid.Nil {
		return ErrMissingCandidate
	}
	if a.AppointmentTime.IsZero() {
		return ErrMissingTime
	}

	// Blocked days reject bookings regardless of slot. Unlike grid reads
	// this is a mutation guard, so a failed fetch is an error, not fail-open.
	blocked, err := s.repo.ListBlockedRanges(ctx)
	if err != nil {
		return fmt.Errorf("list blocked ranges: %w", err)
	}
	if IsBlocked(a.AppointmentTime, blocked) {
		return ErrDayBlocked
	}

	return nil
}
