package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/SkinxH/RPCfi-TRON/internal/config"
	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/idhash"
	"github.com/SkinxH/RPCfi-TRON/internal/reporting"
	"github.com/SkinxH/RPCfi-TRON/internal/simulation"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
	chstore "github.com/SkinxH/RPCfi-TRON/internal/storage/clickhouse"
	"github.com/SkinxH/RPCfi-TRON/internal/storage/memory"
	"github.com/SkinxH/RPCfi-TRON/internal/storage/migrations"
	pgstore "github.com/SkinxH/RPCfi-TRON/internal/storage/postgres"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to simulation config, JSON or YAML (required)")
	scenarioName := flag.String("scenario", "", "APY scenario to run; empty runs all configured scenarios")
	strategyOverride := flag.String("strategy", "", "Override growth strategy: milestone, linear-ramp")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage")
	migrate := flag.Bool("migrate", false, "Run database migrations before persisting")

	// Output
	format := flag.String("format", "table", "Output format: table, json, csv, markdown")
	persistResult := flag.Bool("persist", false, "Persist run and weekly results to storage")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	// Validate required flags
	if *configPath == "" {
		logger.Fatal("--config is required")
	}

	switch *format {
	case "table", "json", "csv", "markdown":
	default:
		logger.Fatalf("Invalid format: %s. Must be table, json, csv, or markdown", *format)
	}

	// Load and resolve the configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if *strategyOverride != "" {
		strategy := strings.ToLower(*strategyOverride)
		if strategy != domain.GrowthStrategyMilestone && strategy != domain.GrowthStrategyLinearRamp {
			logger.Fatalf("Invalid strategy: %s. Must be milestone or linear-ramp", *strategyOverride)
		}
		cfg.GrowthStrategy = strategy
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Create stores when persisting
	var runStore storage.SimulationRunStore
	var resultStore storage.WeeklyResultStore

	if *persistResult {
		if *useMemory {
			runStore = memory.NewSimulationRunStore()
			resultStore = memory.NewWeeklyResultStore()
		} else {
			if *postgresDSN == "" {
				logger.Fatal("--postgres-dsn is required when persisting without --use-memory (run metadata)")
			}
			if *clickhouseDSN == "" {
				logger.Fatal("--clickhouse-dsn is required when persisting without --use-memory (weekly results)")
			}

			// PostgreSQL for run metadata
			pool, err := pgstore.NewPool(ctx, *postgresDSN)
			if err != nil {
				logger.Fatalf("connect to postgres: %v", err)
			}
			defer pool.Close()

			// ClickHouse for the weekly time series
			conn, err := chstore.NewConn(ctx, *clickhouseDSN)
			if err != nil {
				logger.Fatalf("connect to clickhouse: %v", err)
			}
			defer conn.Close()

			if *migrate {
				if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
					logger.Fatalf("postgres migrations: %v", err)
				}
				if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
					logger.Fatalf("clickhouse migrations: %v", err)
				}
			}

			runStore = pgstore.NewSimulationRunStore(pool)
			resultStore = chstore.NewWeeklyResultStore(conn)
		}
	}

	runner, err := simulation.NewRunner(*cfg)
	if err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	scenarios := selectScenarios(cfg, *scenarioName)
	if len(scenarios) == 0 {
		logger.Fatalf("Unknown scenario: %s", *scenarioName)
	}

	generator := reporting.NewGenerator()

	for _, name := range scenarios {
		logger.Printf("Running simulation: chain=%s strategy=%s scenario=%s",
			cfg.ChainName, cfg.GrowthStrategy, name)

		results, err := runner.Run(name)
		if err != nil {
			logger.Fatalf("simulation failed: %v", err)
		}

		run := runner.Summarize(name, results)
		run.RunID = idhash.ComputeRunID(cfg, name, run.APYPercent)
		run.CreatedAt = time.Now().UTC()

		if *persistResult {
			if err := persist(ctx, runStore, resultStore, &run, results); err != nil {
				logger.Fatalf("persist run %s: %v", run.RunID, err)
			}
			logger.Printf("Persisted run %s (%d weeks)", run.RunID, len(results))
		}

		render(generator, run, results, *format)
	}
}

// selectScenarios resolves the requested scenario names in a stable
// order. An empty request selects every configured scenario.
func selectScenarios(cfg *domain.SimulationConfig, requested string) []string {
	all := cfg.Scenarios()

	if requested != "" {
		if _, ok := all[requested]; !ok {
			return nil
		}
		return []string{requested}
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// persist writes the run record and its weekly series. The run record
// goes first so the series is never orphaned.
func persist(ctx context.Context, runStore storage.SimulationRunStore, resultStore storage.WeeklyResultStore, run *domain.SimulationRun, results []domain.WeeklyResult) error {
	if err := runStore.Insert(ctx, run); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if err := resultStore.InsertBulk(ctx, run.RunID, results); err != nil {
		return fmt.Errorf("insert weekly results: %w", err)
	}
	return nil
}

// render writes one scenario's output to stdout in the chosen format.
func render(generator *reporting.Generator, run domain.SimulationRun, results []domain.WeeklyResult, format string) {
	switch format {
	case "json":
		report := generator.Generate(run, results)
		output, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(output))
	case "csv":
		fmt.Print(reporting.RenderCSV(results))
	case "markdown":
		report := generator.Generate(run, results)
		fmt.Print(reporting.RenderMarkdown(report))
	default:
		printRun(run, results)
	}
}

// printRun outputs a human-readable run summary.
func printRun(run domain.SimulationRun, results []domain.WeeklyResult) {
	summary := reporting.Summarize(results)

	fmt.Println()
	fmt.Printf("=== Simulation Result: %s ===\n", run.ScenarioID)
	fmt.Printf("Run ID:             %s\n", run.RunID)
	fmt.Printf("Chain:              %s\n", run.ChainName)
	fmt.Printf("Growth Strategy:    %s\n", run.GrowthStrategy)
	fmt.Printf("APY:                %.2f%%\n", run.APYPercent)
	fmt.Printf("Period:             %s to %s\n",
		run.PeriodStart.Format("2006-01"), run.PeriodEnd.Format("2006-01"))
	fmt.Printf("Weeks:              %d\n", run.Weeks)
	fmt.Println()

	fmt.Println("Totals:")
	fmt.Printf("  Revenue:          $%.2f\n", summary.TotalRevenueUSD)
	fmt.Printf("  Buybacks:         $%.2f\n", summary.TotalBuybackUSD)
	fmt.Printf("  Final LP TVL:     $%.2f\n", summary.FinalLPTVLUSD)
	fmt.Println()

	fmt.Println("Yield:")
	fmt.Printf("  Developer:        $%.2f cumulative, $%.2f/week avg\n",
		summary.CumulativeDevYieldUSD, summary.AvgWeeklyDevYieldUSD)
	fmt.Printf("  Foundation:       $%.2f cumulative, $%.2f/week avg\n",
		summary.CumulativeFoundationYieldUSD, summary.AvgWeeklyFoundationYieldUSD)
}
