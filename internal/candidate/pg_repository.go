package candidate

import (
	"context"
	"errors"
	"fmt"

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

// updatableColumns whitelists the columns the inline editor may touch.
// Identity and timestamps are never patched through this path.
var updatableColumns = map[string]struct{}{
	"name":          {},
	"email":         {},
	"phone":         {},
	"position_code": {},
	"status":        {},
	"vote":          {},
}

func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.PositionCode,
		&c.Status,
		&c.Vote,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *PgRepository) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, position_code, status, vote, created_at, updated_at
		FROM candidates
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, position_code, status, vote, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`, id)
	return scanCandidate(row)
}

func (r *PgRepository) UpdateCandidateField(ctx context.Context, id uuid.UUID, field string, value any) (*Candidate, error) {
	if _, ok := updatableColumns[field]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	// field comes from the whitelist above, never from the request verbatim
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE candidates
		SET %s = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, phone, position_code, status, vote, created_at, updated_at
	`, field), id, value)

	return scanCandidate(row)
}

func (r *PgRepository) ListPositions(ctx context.Context) ([]Position, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, title, created_at
		FROM positions
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.Code, &p.Title, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
