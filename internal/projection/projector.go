// Package projection turns a simulation configuration into the weekly
// revenue series consumed by the runner: first a monthly projection from
// the growth curve, then a fixed-ratio weekly disaggregation.
package projection

import (
	"time"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/growth"
)

// ProjectMonthly produces one revenue point per calendar month of the
// configured period, both endpoints inclusive, strictly ascending with
// no gaps.
//
// The base revenue is the last value of the historical series. A missing
// or malformed series (empty, out of order, negative values) falls back
// to domain.DefaultBaseRevenue rather than failing: incomplete upstream
// data is a degraded input, not an error. Under the linear-ramp strategy
// the base is pre-scaled by the initial growth multiplier before the
// ramp applies; the milestone strategy uses the base as-is.
func ProjectMonthly(cfg *domain.SimulationConfig, curve growth.Curve) []domain.MonthlyRevenuePoint {
	base := baseRevenue(cfg.HistoricalData)
	if cfg.GrowthStrategy == domain.GrowthStrategyLinearRamp {
		base *= cfg.GrowthMultiplier
	}

	months := cfg.Period.Months()
	horizon := months - 1

	series := make([]domain.MonthlyRevenuePoint, 0, months)
	current := monthStart(cfg.Period.Start)
	for offset := 0; offset < months; offset++ {
		series = append(series, domain.MonthlyRevenuePoint{
			Month:      current,
			RevenueUSD: base * curve.Factor(offset, horizon),
		})
		current = current.AddDate(0, 1, 0)
	}

	return series
}

// baseRevenue picks the last historical monthly value, or the documented
// default when the series is unusable.
func baseRevenue(historical []domain.MonthlyRevenuePoint) float64 {
	if !usableHistory(historical) {
		return domain.DefaultBaseRevenue
	}
	return historical[len(historical)-1].RevenueUSD
}

// usableHistory reports whether the historical series is non-empty,
// chronologically ascending, and non-negative throughout.
func usableHistory(historical []domain.MonthlyRevenuePoint) bool {
	if len(historical) == 0 {
		return false
	}
	for i, p := range historical {
		if p.RevenueUSD < 0 {
			return false
		}
		if i > 0 && !historical[i-1].Month.Before(p.Month) {
			return false
		}
	}
	return true
}

// monthStart normalizes a date to the first day of its month, UTC.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
