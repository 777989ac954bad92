package candidate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ValidationError is a client-side precondition failure. It blocks the
// mutation before anything is sent to the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type Service struct {
	repo Repository

	// loads collapses concurrent directory fetches into one outstanding
	// query; every caller shares the result of the request in flight.
	loads singleflight.Group
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Directory returns the full candidate set, deduplicating concurrent loads.
func (s *Service) Directory(ctx context.Context) ([]Candidate, error) {
	v, err, _ := s.loads.Do("directory", func() (any, error) {
		return s.repo.ListCandidates(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return v.([]Candidate), nil
}

// FilteredDirectory fetches the directory and applies the filter in memory.
func (s *Service) FilteredDirectory(ctx context.Context, f Filter, now time.Time) ([]Candidate, error) {
	all, err := s.Directory(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all, now), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	c, err := s.repo.GetCandidateByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}
	return c, nil
}

// EditField validates and applies a single-field inline edit. The returned
// row is the post-update state; callers must use it to replace every copy of
// the candidate they hold, so a selected reference never goes stale against
// the source list.
func (s *Service) EditField(ctx context.Context, id uuid.UUID, field, raw string) (*Candidate, error) {
	value, err := coerceField(field, raw)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.UpdateCandidateField(ctx, id, field, value)
	if err != nil {
		return nil, fmt.Errorf("update candidate %s: %w", field, err)
	}
	return c, nil
}

func (s *Service) Positions(ctx context.Context) ([]Position, error) {
	ps, err := s.repo.ListPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return ps, nil
}

// coerceField turns the raw form value into a typed column value, rejecting
// anything the backend should never see.
func coerceField(field, raw string) (any, error) {
	switch field {
	case "name":
		if strings.TrimSpace(raw) == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		return raw, nil

	case "email":
		if raw == "" {
			return nil, nil // clearing the address is allowed
		}
		if !strings.Contains(raw, "@") || strings.ContainsAny(raw, " \t") {
			return nil, &ValidationError{Field: "email", Reason: "malformed address"}
		}
		return raw, nil

	case "vote":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &ValidationError{Field: "vote", Reason: "must be a number"}
		}
		if v < 0 || v > 10 {
			return nil, &ValidationError{Field: "vote", Reason: "must be between 0 and 10"}
		}
		return v, nil

	case "phone", "position_code", "status":
		if raw == "" {
			return nil, nil
		}
		return raw, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}
