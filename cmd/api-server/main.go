package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandean03/interview-manager-staging/internal/api"
	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/config"
	"github.com/briandean03/interview-manager-staging/internal/dashboard"
	"github.com/briandean03/interview-manager-staging/internal/db"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
	redisclient "github.com/briandean03/interview-manager-staging/internal/redis"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
	"github.com/briandean03/interview-manager-staging/internal/session"
)

const version = "0.3.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s week_start=%s slots=%02d:00-%02d:00",
		cfg.Env, cfg.HTTPPort, cfg.WeekStart, cfg.SlotStartHour, cfg.SlotEndHour)

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

	// Connect Redis
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
	sessionRepo := session.NewPgRepository(pgPool)

	broadcaster := session.NewBroadcaster()
	signer := session.NewTokenSigner(cfg.JWTSecret, cfg.SessionTTL)

	candidates := candidate.NewService(candidateRepo)
	bookings := schedule.NewService(scheduleRepo, cfg)
	results := evaluation.NewService(evaluationRepo)
	metrics := dashboard.NewService(candidateRepo, scheduleRepo, evaluationRepo, rdb, 2*cfg.WorkerInterval)
	sessions := session.NewService(sessionRepo, signer, rdb, broadcaster)

	// Session transitions are observable; for now only the access log cares.
	events, unsubscribe := broadcaster.Subscribe()
	defer unsubscribe()
	go func() {
		for ev := range events {
			log.Printf("session event type=%s user=%s", ev.Type, ev.UserID)
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Candidates: candidates,
		Bookings:   bookings,
		Results:    results,
		Dashboard:  metrics,
		Sessions:   sessions,
		PgPool:     pgPool,
		Redis:      rdb,
		Cfg:        cfg,
		Version:    version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
}
