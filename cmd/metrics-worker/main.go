package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/config"
	"github.com/briandean03/interview-manager-staging/internal/dashboard"
	"github.com/briandean03/interview-manager-staging/internal/db"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
	redisclient "github.com/briandean03/interview-manager-staging/internal/redis"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("metrics-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running metrics worker in env=%s interval=%s", cfg.Env, cfg.WorkerInterval)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	candidateRepo := candidate.NewPgRepository(pgPool)
	scheduleRepo := schedule.NewPgRepository(pgPool)
	evaluationRepo := evaluation.NewPgRepository(pgPool)

	// Snapshots stay valid for two intervals so a slow run never leaves the
	// dashboard without a cache.
	svc := dashboard.NewService(candidateRepo, scheduleRepo, evaluationRepo, rdb, 2*cfg.WorkerInterval)

	// Run once at startup
	runOnce(rootCtx, svc)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Println("shutdown signal received, stopping metrics worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc)
		}
	}
}

func runOnce(ctx context.Context, svc *dashboard.Service) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	m, err := svc.Refresh(runCtx, time.Now())
	if err != nil {
		log.Printf("metrics refresh error: %v", err)
		return
	}
	log.Printf("metrics refresh complete in %s candidates=%d upcoming=%d pending_evaluations=%d",
		time.Since(start), m.TotalCandidates, m.UpcomingInterviews, m.PendingEvaluations)
}
