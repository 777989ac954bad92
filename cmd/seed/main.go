package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/db"
)

var positions = map[string]string{
	"BE-GO":  "Backend Engineer (Go)",
	"FE-TS":  "Frontend Engineer",
	"DATA":   "Data Engineer",
	"QA":     "QA Engineer",
	"DEVOPS": "DevOps Engineer",
	"PM":     "Product Manager",
}

var statuses = []string{
	candidate.StatusCVProcessed,
	candidate.StatusForInterview,
	candidate.StatusInterviewed,
	candidate.StatusHired,
	candidate.StatusRejected,
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedPositions(context.Background(), pool); err != nil {
		log.Fatalf("seed positions: %v", err)
	}
	if err := seedHRUsers(context.Background(), pool, 5); err != nil {
		log.Fatalf("seed hr users: %v", err)
	}

	candidateIDs, err := seedCandidates(context.Background(), pool, 400)
	if err != nil {
		log.Fatalf("seed candidates: %v", err)
	}

	if err := seedAppointments(context.Background(), pool, candidateIDs); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}
	if err := seedEvaluations(context.Background(), pool, candidateIDs); err != nil {
		log.Fatalf("seed evaluations: %v", err)
	}
	if err := seedExecutionLogs(context.Background(), pool, candidateIDs); err != nil {
		log.Fatalf("seed execution logs: %v", err)
	}
	if err := seedBlockedRanges(context.Background(), pool); err != nil {
		log.Fatalf("seed blocked ranges: %v", err)
	}

	log.Println("seed complete")
}

func seedPositions(ctx context.Context, pool *pgxpool.Pool) error {
	log.Printf("seeding %d positions", len(positions))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for code, title := range positions {
		_, err := tx.Exec(ctx, `
			INSERT INTO positions (code, title, created_at)
			VALUES ($1, $2, now())
			ON CONFLICT (code) DO NOTHING
		`, code, title)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedHRUsers(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d hr users", count)

	// One well-known login for local use, the rest random
	hash, err := bcrypt.GenerateFromPassword([]byte("hire-me-maybe"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO hr_users (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, 'admin@example.com', 'Admin', $2, now(), now())
		ON CONFLICT (email) DO NOTHING
	`, uuid.New(), string(hash))
	if err != nil {
		return err
	}

	for i := 0; i < count-1; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO hr_users (id, email, name, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
			ON CONFLICT (email) DO NOTHING
		`, uuid.New(), gofakeit.Email(), gofakeit.Name(), string(hash))
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedCandidates(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d candidates", count)

	codes := make([]string, 0, len(positions))
	for code := range positions {
		codes = append(codes, code)
	}

	ids := make([]uuid.UUID, 0, count)

	const batchSize = 100
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			status := statuses[gofakeit.Number(0, len(statuses)-1)]

			var vote *float64
			if status == candidate.StatusInterviewed || status == candidate.StatusHired {
				v := float64(gofakeit.Number(0, 20)) / 2
				vote = &v
			}

			createdAt := gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now())

			_, err := tx.Exec(ctx, `
				INSERT INTO candidates (id, name, email, phone, position_code, status, vote, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			`, id, gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(),
				codes[gofakeit.Number(0, len(codes)-1)], status, vote, createdAt)
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}

			ids = append(ids, id)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
	}

	log.Println("candidates seeded")
	return ids, nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, candidateIDs []uuid.UUID) error {
	log.Println("seeding appointments")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, cid := range candidateIDs {
		if gofakeit.Number(0, 2) != 0 {
			continue // roughly a third of candidates get an appointment
		}

		day := gofakeit.DateRange(time.Now().AddDate(0, 0, -14), time.Now().AddDate(0, 1, 14))
		at := time.Date(day.Year(), day.Month(), day.Day(),
			gofakeit.Number(8, 22), gofakeit.Number(0, 59), 0, 0, time.Local)
		rev := gofakeit.LetterN(1)

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, candidate_id, appointment_time, position_code, q_revision, notes, created_at)
			VALUES ($1, $2, $3, NULL, $4, $5, now())
		`, uuid.New(), cid, at, rev, gofakeit.Sentence(6))
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedEvaluations(ctx context.Context, pool *pgxpool.Pool, candidateIDs []uuid.UUID) error {
	log.Println("seeding evaluations")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, cid := range candidateIDs {
		if gofakeit.Number(0, 3) != 0 {
			continue
		}

		answers := gofakeit.Number(1, 5)
		for idx := 0; idx < answers; idx++ {
			tech := float64(gofakeit.Number(0, 100)) / 10
			clarity := float64(gofakeit.Number(0, 100)) / 10
			conf := float64(gofakeit.Number(0, 100)) / 10
			rel := float64(gofakeit.Number(0, 100)) / 10
			total := (tech + clarity + conf + rel) / 4

			_, err := tx.Exec(ctx, `
				INSERT INTO ai_evaluations
					(id, candidate_id, answer_index, technical_score, clarity_score, confidence_score, relevance_score, total_score, commentary, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			`, uuid.New(), cid, idx, tech, clarity, conf, rel, total, gofakeit.Paragraph(1, 2, 8, " "))
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedExecutionLogs(ctx context.Context, pool *pgxpool.Pool, candidateIDs []uuid.UUID) error {
	log.Println("seeding execution logs")

	stages := []string{"CV received", "CV parsed", "Questions generated", "Interview scheduled", "Scoring complete"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, cid := range candidateIDs {
		steps := gofakeit.Number(1, len(stages))
		at := gofakeit.DateRange(time.Now().AddDate(0, -2, 0), time.Now())

		for i := 0; i < steps; i++ {
			_, err := tx.Exec(ctx, `
				INSERT INTO execution_logs (candidate_id, current_status, created_at)
				VALUES ($1, $2, $3)
			`, cid, stages[i], at)
			if err != nil {
				return err
			}
			at = at.Add(time.Duration(gofakeit.Number(1, 48)) * time.Hour)
		}
	}

	return tx.Commit(ctx)
}

func seedBlockedRanges(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("seeding blocked ranges")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < 3; i++ {
		start := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 2, 0))
		end := start.AddDate(0, 0, gofakeit.Number(0, 5))

		_, err := tx.Exec(ctx, `
			INSERT INTO blocked_date_ranges (id, start_date, end_date, reason, created_at)
			VALUES ($1, $2, $3, $4, now())
		`, uuid.New(), start, end, "Public holiday")
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
