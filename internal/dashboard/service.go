package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
)

const metricsCacheKey = "dashboard:metrics"

// Narrow read views over the other domains' repositories; the aggregator
// only ever lists.
type CandidateSource interface {
	ListCandidates(ctx context.Context) ([]candidate.Candidate, error)
}

type AppointmentSource interface {
	ListAppointments(ctx context.Context) ([]schedule.Appointment, error)
}

type EvaluationSource interface {
	ListEvaluations(ctx context.Context) ([]evaluation.AIEvaluation, error)
}

type Service struct {
	candidates CandidateSource
	appts      AppointmentSource
	evals      EvaluationSource
	cache      *redis.Client
	cacheTTL   time.Duration
}

func NewService(candidates CandidateSource, appts AppointmentSource, evals EvaluationSource, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		candidates: candidates,
		appts:      appts,
		evals:      evals,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// Metrics serves the cached snapshot when the metrics worker has written a
// fresh one, and computes live otherwise. The cache is an optimization only;
// a cache failure degrades to a live computation and is logged.
func (s *Service) Metrics(ctx context.Context, now time.Time) (Metrics, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, metricsCacheKey).Bytes()
		switch {
		case err == nil:
			var m Metrics
			if jsonErr := json.Unmarshal(raw, &m); jsonErr == nil {
				return m, nil
			}
			log.Printf("dashboard: bad cached snapshot, recomputing")
		case err != redis.Nil:
			log.Printf("dashboard: metrics cache read failed, computing live: %v", err)
		}
	}

	return s.compute(ctx, now)
}

// Refresh recomputes the snapshot and writes it to the cache. The metrics
// worker calls this on its interval.
func (s *Service) Refresh(ctx context.Context, now time.Time) (Metrics, error) {
	m, err := s.compute(ctx, now)
	if err != nil {
		return Metrics{}, err
	}

	if s.cache != nil {
		raw, err := json.Marshal(m)
		if err != nil {
			return Metrics{}, fmt.Errorf("marshal metrics snapshot: %w", err)
		}
		if err := s.cache.Set(ctx, metricsCacheKey, raw, s.cacheTTL).Err(); err != nil {
			log.Printf("dashboard: metrics cache write failed: %v", err)
		}
	}

	return m, nil
}

func (s *Service) compute(ctx context.Context, now time.Time) (Metrics, error) {
	cands, err := s.candidates.ListCandidates(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("list candidates: %w", err)
	}

	appts, err := s.appts.ListAppointments(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("list appointments: %w", err)
	}

	evals, err := s.evals.ListEvaluations(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("list evaluations: %w", err)
	}

	return Compute(cands, appts, evals, now), nil
}
