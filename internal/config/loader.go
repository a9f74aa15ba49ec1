// Package config loads simulation configuration files. The engine never
// reads files itself; this package parses JSON or YAML into a validated
// domain.SimulationConfig.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// fileConfig is the wire schema of a configuration file.
type fileConfig struct {
	ChainName        string             `json:"chain_name" yaml:"chain_name"`
	NativeToken      string             `json:"native_token" yaml:"native_token"`
	GovernanceToken  string             `json:"governance_token" yaml:"governance_token"`
	TokenPrices      map[string]float64 `json:"token_prices" yaml:"token_prices"`
	InitialLP        map[string]float64 `json:"initial_lp" yaml:"initial_lp"`
	GrowthMultiplier float64            `json:"growth_multiplier" yaml:"growth_multiplier"`
	FutureMultiplier float64            `json:"expected_future_growth_multiplier" yaml:"expected_future_growth_multiplier"`
	GrowthStrategy   string             `json:"growth_strategy" yaml:"growth_strategy"`
	APYScenarios     map[string]float64 `json:"apy_scenarios" yaml:"apy_scenarios"`
	HistoricalData   map[string]float64 `json:"historical_data" yaml:"historical_data"`
	Period           filePeriod         `json:"period" yaml:"period"`
}

type filePeriod struct {
	Start string `json:"start" yaml:"start"` // YYYY-MM
	End   string `json:"end" yaml:"end"`     // YYYY-MM
}

// Load reads and validates a configuration file. The format is chosen by
// extension: .yaml/.yml parse as YAML, everything else as JSON.
func Load(path string) (*domain.SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse json config %s: %w", path, err)
		}
	}

	return fc.resolve()
}

// ParseJSON parses and validates a configuration from raw JSON, using
// the same wire schema as configuration files. Used by the HTTP server
// to decode request bodies.
func ParseJSON(data []byte) (*domain.SimulationConfig, error) {
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse json config: %w", err)
	}
	return fc.resolve()
}

// resolve maps the wire schema to the domain type and validates it.
func (fc *fileConfig) resolve() (*domain.SimulationConfig, error) {
	cfg, err := fc.toDomain()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// toDomain maps the wire schema onto the engine's configuration type.
// The historical map is keyed by month strings; keys sort
// lexicographically in chronological order for the YYYY-MM format.
func (fc *fileConfig) toDomain() (*domain.SimulationConfig, error) {
	strategy := fc.GrowthStrategy
	if strategy == "" {
		strategy = domain.GrowthStrategyMilestone
	}

	start, err := parseMonth(fc.Period.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: period.start: %v", domain.ErrInvalidConfig, err)
	}
	end, err := parseMonth(fc.Period.End)
	if err != nil {
		return nil, fmt.Errorf("%w: period.end: %v", domain.ErrInvalidConfig, err)
	}

	historical, err := historicalSeries(fc.HistoricalData)
	if err != nil {
		return nil, err
	}

	return &domain.SimulationConfig{
		ChainName:        fc.ChainName,
		NativeToken:      fc.NativeToken,
		GovernanceToken:  fc.GovernanceToken,
		TokenPrices:      fc.TokenPrices,
		InitialLP:        fc.InitialLP,
		GrowthMultiplier: fc.GrowthMultiplier,
		FutureMultiplier: fc.FutureMultiplier,
		GrowthStrategy:   strategy,
		APYScenarios:     fc.APYScenarios,
		HistoricalData:   historical,
		Period:           domain.Period{Start: start, End: end},
	}, nil
}

// historicalSeries orders the historical map chronologically.
func historicalSeries(data map[string]float64) ([]domain.MonthlyRevenuePoint, error) {
	if len(data) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]domain.MonthlyRevenuePoint, 0, len(keys))
	for _, k := range keys {
		month, err := parseMonth(k)
		if err != nil {
			return nil, fmt.Errorf("%w: historical_data key %q: %v", domain.ErrInvalidConfig, k, err)
		}
		series = append(series, domain.MonthlyRevenuePoint{
			Month:      month,
			RevenueUSD: data[k],
		})
	}

	return series, nil
}

// parseMonth parses a YYYY-MM month string into the first day of that
// month, UTC.
func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
