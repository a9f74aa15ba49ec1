// Package main provides the HTTP front end for the flow simulator:
// - POST /simulate: run scenarios for a submitted configuration
// - GET /ws/simulate: stream weekly results over WebSocket
// - GET /runs, /runs/{id}: browse persisted runs
// - /healthz, /status, /metrics: operational endpoints
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SkinxH/RPCfi-TRON/internal/config"
	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/idhash"
	"github.com/SkinxH/RPCfi-TRON/internal/observability"
	"github.com/SkinxH/RPCfi-TRON/internal/reporting"
	"github.com/SkinxH/RPCfi-TRON/internal/simulation"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
	chstore "github.com/SkinxH/RPCfi-TRON/internal/storage/clickhouse"
	"github.com/SkinxH/RPCfi-TRON/internal/storage/memory"
	"github.com/SkinxH/RPCfi-TRON/internal/storage/migrations"
	pgstore "github.com/SkinxH/RPCfi-TRON/internal/storage/postgres"
)

// Server holds the simulator's HTTP state.
type Server struct {
	logger  *log.Logger
	persist bool

	runStore    storage.SimulationRunStore
	resultStore storage.WeeklyResultStore

	upgrader websocket.Upgrader

	// State
	mu             sync.Mutex
	started        time.Time
	lastRun        time.Time
	simulationsRun int
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", ":8080", "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	migrate := flag.Bool("migrate", false, "Run database migrations on startup")
	persist := flag.Bool("persist", true, "Persist completed runs to storage")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	// Create context cancelled on shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Create stores
	runStore, resultStore, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory, *migrate)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	server := &Server{
		logger:      logger,
		persist:     *persist,
		runStore:    runStore,
		resultStore: resultStore,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", observability.Handler())
	mux.HandleFunc("GET /status", server.handleStatus)
	mux.HandleFunc("POST /simulate", server.handleSimulate)
	mux.HandleFunc("GET /ws/simulate", server.handleWSSimulate)
	mux.HandleFunc("GET /runs", server.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", server.handleGetRun)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	logger.Printf("Listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the run and weekly result stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory, migrate bool) (storage.SimulationRunStore, storage.WeeklyResultStore, func(), error) {
	if useMemory {
		return memory.NewSimulationRunStore(), memory.NewWeeklyResultStore(), func() {}, nil
	}

	// PostgreSQL for run metadata
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	// ClickHouse for the weekly time series
	conn, err := chstore.NewConn(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
	}

	if migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			conn.Close()
			pool.Close()
			return nil, nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			conn.Close()
			pool.Close()
			return nil, nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
	}

	cleanup := func() {
		conn.Close()
		pool.Close()
	}

	return pgstore.NewSimulationRunStore(pool), chstore.NewWeeklyResultStore(conn), cleanup, nil
}

// ScenarioResult is one scenario's output within a simulate response.
type ScenarioResult struct {
	Run     domain.SimulationRun  `json:"run"`
	Summary reporting.Summary     `json:"summary"`
	Results []domain.WeeklyResult `json:"results"`
}

// SimulateResponse is the JSON response for POST /simulate.
type SimulateResponse struct {
	Scenarios []ScenarioResult `json:"scenarios"`
}

// handleSimulate runs the requested scenarios for the submitted
// configuration. The optional ?scenario= query parameter selects a
// single scenario; the default runs all configured scenarios.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("read request body: %w", err))
		return
	}

	cfg, err := config.ParseJSON(body)
	if err != nil {
		observability.RecordSimulationError("invalid_config")
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	resp, status, err := s.simulate(r.Context(), cfg, r.URL.Query().Get("scenario"))
	if err != nil {
		s.writeError(w, r, status, err)
		return
	}

	observability.DefaultMetrics.HTTPRequestsTotal.WithLabelValues("/simulate", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// simulate executes the scenario set and optionally persists each run.
func (s *Server) simulate(ctx context.Context, cfg *domain.SimulationConfig, scenario string) (*SimulateResponse, int, error) {
	runner, err := simulation.NewRunner(*cfg)
	if err != nil {
		observability.RecordSimulationError("invalid_config")
		return nil, http.StatusBadRequest, err
	}

	scenarios := make([]string, 0, len(cfg.Scenarios()))
	if scenario != "" {
		scenarios = append(scenarios, scenario)
	} else {
		for name := range cfg.Scenarios() {
			scenarios = append(scenarios, name)
		}
		sort.Strings(scenarios)
	}

	resp := &SimulateResponse{}
	for _, name := range scenarios {
		start := time.Now()

		results, err := runner.Run(name)
		if err != nil {
			observability.RecordSimulationError("unknown_scenario")
			return nil, http.StatusBadRequest, err
		}

		run := runner.Summarize(name, results)
		run.RunID = idhash.ComputeRunID(cfg, name, run.APYPercent)
		run.CreatedAt = time.Now().UTC()

		observability.RecordSimulation(name, cfg.GrowthStrategy, time.Since(start).Seconds(), len(results))

		if s.persist {
			if err := s.persistRun(ctx, &run, results); err != nil {
				// A duplicate run id means the same config was already
				// simulated; the response still carries the results.
				if !errors.Is(err, storage.ErrDuplicateKey) {
					observability.RecordSimulationError("persist")
					return nil, http.StatusInternalServerError, err
				}
				s.logger.Printf("Run %s already persisted, returning cached computation", run.RunID)
			} else {
				observability.RecordRunPersisted(len(results))
			}
		}

		resp.Scenarios = append(resp.Scenarios, ScenarioResult{
			Run:     run,
			Summary: reporting.Summarize(results),
			Results: results,
		})
	}

	s.mu.Lock()
	s.simulationsRun += len(scenarios)
	s.lastRun = time.Now()
	s.mu.Unlock()

	return resp, http.StatusOK, nil
}

// persistRun writes the run record first so the series is never
// orphaned.
func (s *Server) persistRun(ctx context.Context, run *domain.SimulationRun, results []domain.WeeklyResult) error {
	if err := s.runStore.Insert(ctx, run); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if err := s.resultStore.InsertBulk(ctx, run.RunID, results); err != nil {
		return fmt.Errorf("insert weekly results: %w", err)
	}
	return nil
}

// wsRequest is the first client message on a /ws/simulate connection.
type wsRequest struct {
	Scenario string          `json:"scenario"`
	Config   json.RawMessage `json:"config"`
}

// wsMessage is one server frame on a /ws/simulate connection.
type wsMessage struct {
	Type    string                `json:"type"` // "week", "summary", "error"
	Week    *domain.WeeklyResult  `json:"week,omitempty"`
	Run     *domain.SimulationRun `json:"run,omitempty"`
	Summary *reporting.Summary    `json:"summary,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// handleWSSimulate streams one scenario's weekly results over a
// WebSocket connection, one frame per week, followed by a summary
// frame. The client sends a single wsRequest and then reads.
func (s *Server) handleWSSimulate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	observability.DefaultMetrics.WSClientsConnected.Inc()
	defer observability.DefaultMetrics.WSClientsConnected.Dec()

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	var req wsRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.writeWSError(conn, fmt.Sprintf("read request: %v", err))
		return
	}

	cfg, err := config.ParseJSON(req.Config)
	if err != nil {
		observability.RecordSimulationError("invalid_config")
		s.writeWSError(conn, err.Error())
		return
	}

	scenario := req.Scenario
	if scenario == "" {
		scenario = "base"
	}

	runner, err := simulation.NewRunner(*cfg)
	if err != nil {
		observability.RecordSimulationError("invalid_config")
		s.writeWSError(conn, err.Error())
		return
	}

	start := time.Now()
	results, err := runner.Run(scenario)
	if err != nil {
		observability.RecordSimulationError("unknown_scenario")
		s.writeWSError(conn, err.Error())
		return
	}

	run := runner.Summarize(scenario, results)
	run.RunID = idhash.ComputeRunID(cfg, scenario, run.APYPercent)
	run.CreatedAt = time.Now().UTC()

	observability.RecordSimulation(scenario, cfg.GrowthStrategy, time.Since(start).Seconds(), len(results))

	for i := range results {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(wsMessage{Type: "week", Week: &results[i]}); err != nil {
			s.logger.Printf("WebSocket write failed: %v", err)
			return
		}
	}

	summary := reporting.Summarize(results)
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(wsMessage{Type: "summary", Run: &run, Summary: &summary}); err != nil {
		s.logger.Printf("WebSocket write failed: %v", err)
		return
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	s.mu.Lock()
	s.simulationsRun++
	s.lastRun = time.Now()
	s.mu.Unlock()
}

// writeWSError sends an error frame and a close frame.
func (s *Server) writeWSError(conn *websocket.Conn, msg string) {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	conn.WriteJSON(wsMessage{Type: "error", Error: msg})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, ""))
}

// handleListRuns returns persisted runs, optionally filtered by
// ?chain=.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	var (
		runs []*domain.SimulationRun
		err  error
	)
	if chain := r.URL.Query().Get("chain"); chain != "" {
		runs, err = s.runStore.GetByChain(r.Context(), chain)
	} else {
		runs, err = s.runStore.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	observability.DefaultMetrics.HTTPRequestsTotal.WithLabelValues("/runs", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// handleGetRun returns one persisted run with its weekly series.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("id")

	run, err := s.runStore.GetByID(r.Context(), runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, err)
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	results, err := s.resultStore.GetByRunID(r.Context(), runID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	observability.DefaultMetrics.HTTPRequestsTotal.WithLabelValues("/runs/{id}", "200").Inc()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScenarioResult{
		Run:     *run,
		Summary: reporting.Summarize(results),
		Results: results,
	})
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status         string    `json:"status"`
	Uptime         string    `json:"uptime"`
	SimulationsRun int       `json:"simulations_run"`
	LastRun        time.Time `json:"last_run,omitempty"`
	Persisting     bool      `json:"persisting"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := StatusResponse{
		Status:         "running",
		Uptime:         time.Since(s.started).String(),
		SimulationsRun: s.simulationsRun,
		LastRun:        s.lastRun,
		Persisting:     s.persist,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeError writes a JSON error response and records the request.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	observability.DefaultMetrics.HTTPRequestsTotal.
		WithLabelValues(r.URL.Path, fmt.Sprintf("%d", status)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
