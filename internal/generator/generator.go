// Package generator produces synthetic monthly RPC revenue series for
// demos and testing. Output is reproducible for a given seed.
package generator

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// Options control synthetic series generation.
type Options struct {
	StartMonth  string  // YYYY-MM, first month generated
	EndMonth    string  // YYYY-MM, last month generated (inclusive)
	BaseRevenue float64 // base monthly revenue in USD
	GrowthRate  float64 // compounding monthly growth rate (0 = flat)
	Volatility  float64 // stddev of the multiplicative noise factor
	Seed        int64   // RNG seed; same seed, same series
}

// Preset generation profiles.
var presets = map[string]Options{
	"conservative": {BaseRevenue: 12000, Volatility: 0.02},
	"moderate":     {BaseRevenue: 15000, Volatility: 0.05},
	"aggressive":   {BaseRevenue: 20000, Volatility: 0.08},
	"volatile":     {BaseRevenue: 15000, Volatility: 0.15},
}

// PresetNames returns the available preset names, sorted.
func PresetNames() []string {
	return []string{"aggressive", "conservative", "moderate", "volatile"}
}

// PresetOptions returns the generation options for a named preset with
// the default six-month window.
func PresetOptions(name string, seed int64) (Options, error) {
	opts, ok := presets[name]
	if !ok {
		return Options{}, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(PresetNames(), ", "))
	}
	opts.StartMonth = "2025-04"
	opts.EndMonth = "2025-09"
	opts.Seed = seed
	return opts, nil
}

// Generate produces one revenue point per month in [StartMonth,
// EndMonth]. Revenue compounds at GrowthRate, is perturbed by normally
// distributed noise, floored at half the base revenue, and rounded to
// the nearest thousand.
func Generate(opts Options) ([]domain.MonthlyRevenuePoint, error) {
	start, err := parseMonth(opts.StartMonth)
	if err != nil {
		return nil, fmt.Errorf("start month: %w", err)
	}
	end, err := parseMonth(opts.EndMonth)
	if err != nil {
		return nil, fmt.Errorf("end month: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end month %s before start month %s", opts.EndMonth, opts.StartMonth)
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	var series []domain.MonthlyRevenuePoint
	current := start
	for count := 0; !current.After(end); count++ {
		revenue := opts.BaseRevenue * math.Pow(1+opts.GrowthRate, float64(count))
		revenue *= 1 + rng.NormFloat64()*opts.Volatility
		revenue = math.Max(revenue, opts.BaseRevenue*0.5)
		revenue = math.Round(revenue/1000) * 1000

		series = append(series, domain.MonthlyRevenuePoint{
			Month:      current,
			RevenueUSD: revenue,
		})
		current = current.AddDate(0, 1, 0)
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

// RenderCSV serializes a series as two-column CSV.
func RenderCSV(series []domain.MonthlyRevenuePoint) string {
	var sb strings.Builder
	sb.WriteString("month,rpc_revenue_usd\n")
	for _, p := range series {
		sb.WriteString(fmt.Sprintf("%s,%.0f\n", p.Month.Format("2006-01"), p.RevenueUSD))
	}
	return sb.String()
}

// RenderJSON serializes a series as the month->revenue object used by
// the historical_data config field.
func RenderJSON(series []domain.MonthlyRevenuePoint) ([]byte, error) {
	out := make(map[string]float64, len(series))
	for _, p := range series {
		out[p.Month.Format("2006-01")] = p.RevenueUSD
	}
	return json.MarshalIndent(out, "", "  ")
}
