package schedule

import (
	"context"
	"errors"
	"time"

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

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.CandidateID,
		&a.AppointmentTime,
		&a.PositionCode,
		&a.QRevision,
		&a.Notes,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func scanBlockedRange(row pgx.Row) (*BlockedRange, error) {
	var b BlockedRange

	err := row.Scan(
		&b.ID,
		&b.StartDate,
		&b.EndDate,
		&b.Reason,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlockedRangeNotFound
		}
		return nil, err
	}

	return &b, nil
}

// Interface methods

func (r *PgRepository) ListAppointments(ctx context.Context) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, candidate_id, appointment_time, position_code, q_revision, notes, created_at
		FROM appointments
		ORDER BY appointment_time
	`)
	if err != nil {
		return nil, err
	}
	return scanAppointments(rows)
}

func (r *PgRepository) ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, candidate_id, appointment_time, position_code, q_revision, notes, created_at
		FROM appointments
		WHERE appointment_time >= $1 AND appointment_time < $2
		ORDER BY appointment_time
	`, from, to)
	if err != nil {
		return nil, err
	}
	return scanAppointments(rows)
}

func (r *PgRepository) ListAppointmentsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, candidate_id, appointment_time, position_code, q_revision, notes, created_at
		FROM appointments
		WHERE candidate_id = $1
		ORDER BY appointment_time
	`, candidateID)
	if err != nil {
		return nil, err
	}
	return scanAppointments(rows)
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, candidate_id, appointment_time, position_code, q_revision, notes, created_at
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, candidate_id, appointment_time, position_code, q_revision, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, candidate_id, appointment_time, position_code, q_revision, notes, created_at
	`, id, a.CandidateID, a.AppointmentTime, a.PositionCode, a.QRevision, a.Notes)

	return scanAppointment(row)
}

func (r *PgRepository) UpdateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET appointment_time = $2,
		    position_code = $3,
		    q_revision = $4,
		    notes = $5
		WHERE id = $1
		RETURNING id, candidate_id, appointment_time, position_code, q_revision, notes, created_at
	`, a.ID, a.AppointmentTime, a.PositionCode, a.QRevision, a.Notes)

	return scanAppointment(row)
}

func (r *PgRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PgRepository) ListBlockedRanges(ctx context.Context) ([]BlockedRange, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, start_date, end_date, reason, created_at
		FROM blocked_date_ranges
		ORDER BY start_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BlockedRange
	for rows.Next() {
		b, err := scanBlockedRange(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) CreateBlockedRange(ctx context.Context, b BlockedRange) (*BlockedRange, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO blocked_date_ranges (id, start_date, end_date, reason, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, start_date, end_date, reason, created_at
	`, id, b.StartDate, b.EndDate, b.Reason)

	return scanBlockedRange(row)
}

func (r *PgRepository) DeleteBlockedRange(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blocked_date_ranges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBlockedRangeNotFound
	}
	return nil
}

func (r *PgRepository) CandidateExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM candidates WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
