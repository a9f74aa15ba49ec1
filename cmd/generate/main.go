package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/generator"
)

func main() {
	// Parse flags
	preset := flag.String("preset", "", "Generation preset: "+strings.Join(generator.PresetNames(), ", "))
	startMonth := flag.String("start", "2025-04", "First month generated (YYYY-MM)")
	endMonth := flag.String("end", "2025-09", "Last month generated (YYYY-MM)")
	baseRevenue := flag.Float64("base", 15000, "Base monthly revenue in USD")
	growthRate := flag.Float64("growth", 0, "Compounding monthly growth rate")
	volatility := flag.Float64("volatility", 0.05, "Stddev of the multiplicative noise factor")
	seed := flag.Int64("seed", 42, "RNG seed for reproducible output")

	// Output
	format := flag.String("format", "csv", "Output format: csv, json")
	outPath := flag.String("out", "", "Output file; empty writes to stdout")
	createConfigs := flag.String("create-configs", "", "Directory to write full sample simulation configs into")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[generate] ", log.LstdFlags)

	opts := generator.Options{
		StartMonth:  *startMonth,
		EndMonth:    *endMonth,
		BaseRevenue: *baseRevenue,
		GrowthRate:  *growthRate,
		Volatility:  *volatility,
		Seed:        *seed,
	}

	if *preset != "" {
		presetOpts, err := generator.PresetOptions(*preset, *seed)
		if err != nil {
			logger.Fatal(err)
		}
		presetOpts.StartMonth = *startMonth
		presetOpts.EndMonth = *endMonth
		opts = presetOpts
	}

	series, err := generator.Generate(opts)
	if err != nil {
		logger.Fatalf("generate series: %v", err)
	}

	if *createConfigs != "" {
		if err := writeSampleConfigs(*createConfigs, series); err != nil {
			logger.Fatalf("write sample configs: %v", err)
		}
		logger.Printf("Wrote sample configs to %s", *createConfigs)
		return
	}

	var output []byte
	switch *format {
	case "csv":
		output = []byte(generator.RenderCSV(series))
	case "json":
		output, err = generator.RenderJSON(series)
		if err != nil {
			logger.Fatalf("render json: %v", err)
		}
	default:
		logger.Fatalf("Invalid format: %s. Must be csv or json", *format)
	}

	if *outPath == "" {
		fmt.Print(string(output))
		return
	}
	if err := os.WriteFile(*outPath, output, 0o644); err != nil {
		logger.Fatalf("write output: %v", err)
	}
	logger.Printf("Wrote %d months to %s", len(series), *outPath)
}

// sampleConfig mirrors the on-disk config schema consumed by the
// simulate and server commands.
type sampleConfig struct {
	ChainName        string             `json:"chain_name"`
	NativeToken      string             `json:"native_token"`
	GovernanceToken  string             `json:"governance_token"`
	TokenPrices      map[string]float64 `json:"token_prices"`
	InitialLP        map[string]float64 `json:"initial_lp"`
	GrowthMultiplier float64            `json:"growth_multiplier"`
	FutureMultiplier float64            `json:"expected_future_growth_multiplier"`
	GrowthStrategy   string             `json:"growth_strategy"`
	APYScenarios     map[string]float64 `json:"apy_scenarios"`
	HistoricalData   map[string]float64 `json:"historical_data"`
	Period           samplePeriod       `json:"period"`
}

type samplePeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// writeSampleConfigs writes one config per supported chain profile,
// each carrying the generated revenue series as historical data.
func writeSampleConfigs(dir string, series []domain.MonthlyRevenuePoint) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	historical := make(map[string]float64, len(series))
	for _, p := range series {
		historical[p.Month.Format("2006-01")] = p.RevenueUSD
	}

	configs := map[string]sampleConfig{
		"config_tron.json": {
			ChainName:       "Tron",
			NativeToken:     "TRX",
			GovernanceToken: "ANKR",
			TokenPrices:     map[string]float64{"TRX": 0.12, "ANKR": 0.025},
			InitialLP: map[string]float64{
				"ankr_contribution":       50000,
				"foundation_contribution": 50000,
			},
			GrowthMultiplier: 1.2,
			FutureMultiplier: 3.0,
			GrowthStrategy:   domain.GrowthStrategyLinearRamp,
			APYScenarios:     map[string]float64{"worst": 20, "base": 30, "best": 40},
			HistoricalData:   historical,
			Period:           samplePeriod{Start: "2025-10", End: "2027-09"},
		},
		"config_avax.json": {
			ChainName:       "Avalanche",
			NativeToken:     "AVAX",
			GovernanceToken: "ANKR",
			TokenPrices:     map[string]float64{"AVAX": 25.0, "ANKR": 0.025},
			InitialLP: map[string]float64{
				"ankr_contribution":       75000,
				"foundation_contribution": 75000,
			},
			GrowthStrategy: domain.GrowthStrategyMilestone,
			APYScenarios:   map[string]float64{"worst": 20, "base": 30, "best": 40},
			HistoricalData: historical,
			Period:         samplePeriod{Start: "2025-10", End: "2027-09"},
		},
	}

	for name, cfg := range configs {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}
