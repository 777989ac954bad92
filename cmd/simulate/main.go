package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/briandean03/interview-manager-staging/internal/config"
	"github.com/briandean03/interview-manager-staging/internal/db"
)

// Load driver for the dashboard API. It signs in once, then hammers the
// directory, calendar and booking endpoints in the configured mix.

type SimConfig struct {
	APIBaseURL     string
	Email          string
	Password       string
	Duration       time.Duration
	Workers        int
	DirectoryRatio float64
	CalendarRatio  float64
	BookingRatio   float64
	CandidateLimit int
	PostgresDSN    string
}

type DataPool struct {
	Candidates []uuid.UUID
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Rejected  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success, rejected bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if rejected {
		atomic.AddInt64(&om.Rejected, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p50Idx := len(latencies) * 50 / 100
	if p50Idx >= len(latencies) {
		p50Idx = len(latencies) - 1
	}
	p50 = latencies[p50Idx]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p50, p95
}

type Metrics struct {
	Directory OperationMetrics
	Calendar  OperationMetrics
	Booking   OperationMetrics
	Dashboard OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	client  *http.Client
	token   string
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d directory=%.2f calendar=%.2f booking=%.2f",
		cfg.Duration, cfg.Workers, cfg.DirectoryRatio, cfg.CalendarRatio, cfg.BookingRatio)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pgPool.Close()

	dataPool, err := loadDataPool(ctx, pgPool, cfg)
	if err != nil {
		log.Fatalf("load data pool: %v", err)
	}

	log.Printf("loaded: %d candidates", len(dataPool.Candidates))

	sim := &Simulator{
		config: cfg,
		pool:   dataPool,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	if err := sim.signIn(ctx); err != nil {
		log.Fatalf("sign in: %v", err)
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	baseCfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load base config: %v", err)
	}

	cfg := SimConfig{
		APIBaseURL:     getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Email:          getEnv("SIM_EMAIL", "admin@example.com"),
		Password:       getEnv("SIM_PASSWORD", "hire-me-maybe"),
		Duration:       getDuration("SIM_DURATION", 30*time.Second),
		Workers:        getInt("SIM_WORKERS", 10),
		DirectoryRatio: getFloat("SIM_DIRECTORY_RATIO", 0.4),
		CalendarRatio:  getFloat("SIM_CALENDAR_RATIO", 0.3),
		BookingRatio:   getFloat("SIM_BOOKING_RATIO", 0.2),
		CandidateLimit: getInt("SIM_CANDIDATE_LIMIT", 1000),
		PostgresDSN:    baseCfg.PostgresDSN,
	}

	// Whatever ratio is left over goes to the dashboard endpoint
	total := cfg.DirectoryRatio + cfg.CalendarRatio + cfg.BookingRatio
	if total > 1 {
		cfg.DirectoryRatio /= total
		cfg.CalendarRatio /= total
		cfg.BookingRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required (set in .env or environment)")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	return nil
}

func loadDataPool(ctx context.Context, pool *pgxpool.Pool, cfg SimConfig) (*DataPool, error) {
	dataPool := &DataPool{}

	rows, err := pool.Query(ctx, `
		SELECT id FROM candidates LIMIT $1
	`, cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		dataPool.Candidates = append(dataPool.Candidates, id)
	}

	if len(dataPool.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates loaded, run the seed tool first")
	}

	return dataPool, nil
}

func (s *Simulator) signIn(ctx context.Context) error {
	body, _ := json.Marshal(map[string]string{
		"email":    s.config.Email,
		"password": s.config.Password,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIBaseURL+"/auth/signin", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("signin returned %d: %s", resp.StatusCode, raw)
	}

	var signInResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&signInResp); err != nil {
		return err
	}
	if signInResp.Token == "" {
		return fmt.Errorf("signin returned no token")
	}

	s.token = signInResp.Token
	return nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < s.config.DirectoryRatio:
				s.doDirectory(ctx, rng)
			case r < s.config.DirectoryRatio+s.config.CalendarRatio:
				s.doCalendar(ctx, rng)
			case r < s.config.DirectoryRatio+s.config.CalendarRatio+s.config.BookingRatio:
				s.doBooking(ctx, rng)
			default:
				s.doDashboard(ctx)
			}
		}
	}
}

var directoryStatuses = []string{"", "CV Processed", "For Interview", "Interviewed"}

func (s *Simulator) doDirectory(ctx context.Context, rng *rand.Rand) {
	url := s.config.APIBaseURL + "/candidates"
	if status := directoryStatuses[rng.Intn(len(directoryStatuses))]; status != "" {
		url += "?status=" + strings.ReplaceAll(status, " ", "%20")
	}

	start := time.Now()
	resp, err := s.get(ctx, url)
	latency := time.Since(start)

	success := false
	if err == nil {
		defer resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}

	s.metrics.Directory.Record(latency, success, false)
}

func (s *Simulator) doCalendar(ctx context.Context, rng *rand.Rand) {
	day := time.Now().AddDate(0, 0, rng.Intn(42)-14)
	url := fmt.Sprintf("%s/calendar/week?date=%s", s.config.APIBaseURL, day.Format("2006-01-02"))

	start := time.Now()
	resp, err := s.get(ctx, url)
	latency := time.Since(start)

	success := false
	if err == nil {
		defer resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}

	s.metrics.Calendar.Record(latency, success, false)
}

func (s *Simulator) doBooking(ctx context.Context, rng *rand.Rand) {
	candidateID := s.pool.Candidates[rng.Intn(len(s.pool.Candidates))]

	day := time.Now().AddDate(0, 0, 1+rng.Intn(28))
	at := time.Date(day.Year(), day.Month(), day.Day(), 8+rng.Intn(15), rng.Intn(60), 0, 0, time.Local)

	body, _ := json.Marshal(map[string]string{
		"candidate_id":     candidateID.String(),
		"appointment_time": at.Format(time.RFC3339),
	})

	start := time.Now()

	req, _ := http.NewRequestWithContext(ctx, "POST", s.config.APIBaseURL+"/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success := false
	rejected := false

	if err == nil {
		defer resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusCreated:
			success = true
		case http.StatusConflict:
			rejected = true // day blocked
		}
	}

	s.metrics.Booking.Record(latency, success, rejected)
}

func (s *Simulator) doDashboard(ctx context.Context) {
	start := time.Now()
	resp, err := s.get(ctx, s.config.APIBaseURL+"/dashboard/metrics")
	latency := time.Since(start)

	success := false
	if err == nil {
		defer resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}

	s.metrics.Dashboard.Record(latency, success, false)
}

func (s *Simulator) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	return s.client.Do(req)
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Directory", &s.metrics.Directory)
	printOperationReport("Calendar week", &s.metrics.Calendar)
	printOperationReport("Booking", &s.metrics.Booking)
	printOperationReport("Dashboard", &s.metrics.Dashboard)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	rejected := atomic.LoadInt64(&om.Rejected)
	errCount := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if rejected > 0 {
		fmt.Printf("  Rejected: %d (%.1f%%)\n", rejected, float64(rejected)/float64(total)*100)
	}
	if errCount > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", errCount, float64(errCount)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

// Helper functions

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
