package evaluation

import (
	"time"

	"github.com/google/uuid"
)

// AIEvaluation is one scored answer from the external evaluation pipeline.
// A candidate has one row per answer index; TotalScore is derived by the
// pipeline, not recomputed here.
type AIEvaluation struct {
	ID              uuid.UUID
	CandidateID     uuid.UUID
	AnswerIndex     int
	TechnicalScore  float64
	ClarityScore    float64
	ConfidenceScore float64
	RelevanceScore  float64
	TotalScore      float64
	Commentary      *string
	CreatedAt       time.Time
}

// ExecutionLog is an append-only status event emitted per candidate by the
// external pipeline.
type ExecutionLog struct {
	ID            int64
	CandidateID   uuid.UUID
	CurrentStatus string
	CreatedAt     time.Time
}
