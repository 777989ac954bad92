package evaluation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanEvaluations(rows pgx.Rows) ([]AIEvaluation, error) {
	defer rows.Close()

	var result []AIEvaluation
	for rows.Next() {
		var e AIEvaluation
		err := rows.Scan(
			&e.ID,
			&e.CandidateID,
			&e.AnswerIndex,
			&e.TechnicalScore,
			&e.ClarityScore,
			&e.ConfidenceScore,
			&e.RelevanceScore,
			&e.TotalScore,
			&e.Commentary,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func scanExecutionLogs(rows pgx.Rows) ([]ExecutionLog, error) {
	defer rows.Close()

	var result []ExecutionLog
	for rows.Next() {
		var l ExecutionLog
		if err := rows.Scan(&l.ID, &l.CandidateID, &l.CurrentStatus, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

const evaluationColumns = `id, candidate_id, answer_index, technical_score, clarity_score, confidence_score, relevance_score, total_score, commentary, created_at`

func (r *PgRepository) ListEvaluations(ctx context.Context) ([]AIEvaluation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+evaluationColumns+`
		FROM ai_evaluations
		ORDER BY candidate_id, answer_index
	`)
	if err != nil {
		return nil, err
	}
	return scanEvaluations(rows)
}

func (r *PgRepository) ListEvaluationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]AIEvaluation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+evaluationColumns+`
		FROM ai_evaluations
		WHERE candidate_id = $1
		ORDER BY answer_index
	`, candidateID)
	if err != nil {
		return nil, err
	}
	return scanEvaluations(rows)
}

func (r *PgRepository) ListExecutionLogs(ctx context.Context) ([]ExecutionLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, candidate_id, current_status, created_at
		FROM execution_logs
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	return scanExecutionLogs(rows)
}

func (r *PgRepository) ListExecutionLogsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]ExecutionLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, candidate_id, current_status, created_at
		FROM execution_logs
		WHERE candidate_id = $1
		ORDER BY created_at
	`, candidateID)
	if err != nil {
		return nil, err
	}
	return scanExecutionLogs(rows)
}
