// Package reporting tabulates completed simulation runs for human
// consumption. It renders CSV for spreadsheets and Markdown for review
// documents; it never mutates the results it is given.
package reporting

import (
	"time"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// Report is the rendered view of one simulation run.
type Report struct {
	GeneratedAt time.Time            // injectable clock output
	Run         domain.SimulationRun // run identity and headline totals
	Summary     Summary              // derived aggregates
	Results     []domain.WeeklyResult
}

// Summary contains the derived aggregates shown at the top of a report.
type Summary struct {
	TotalRevenueUSD              float64 // sum of weekly gross revenue
	TotalBuybackUSD              float64 // sum of both buyback legs
	FinalLPTVLUSD                float64 // total TVL at the last week
	CumulativeDevYieldUSD        float64 // developer yield paid over the horizon
	CumulativeFoundationYieldUSD float64 // foundation yield paid over the horizon
	AvgWeeklyDevYieldUSD         float64 // mean weekly developer yield
	AvgWeeklyFoundationYieldUSD  float64 // mean weekly foundation yield
}

// Summarize computes report aggregates from an ordered result slice.
func Summarize(results []domain.WeeklyResult) Summary {
	var s Summary
	if len(results) == 0 {
		return s
	}

	for _, w := range results {
		s.TotalRevenueUSD += w.RevenueUSD
		s.TotalBuybackUSD += w.NativeBuybackUSD + w.GovernanceBuybackUSD
		s.AvgWeeklyDevYieldUSD += w.DevWeeklyYieldUSD
		s.AvgWeeklyFoundationYieldUSD += w.FoundationWeeklyYieldUSD
	}

	n := float64(len(results))
	s.AvgWeeklyDevYieldUSD /= n
	s.AvgWeeklyFoundationYieldUSD /= n

	last := results[len(results)-1]
	s.FinalLPTVLUSD = last.TotalLPTVLUSD
	s.CumulativeDevYieldUSD = last.CumulativeDevYieldUSD
	s.CumulativeFoundationYieldUSD = last.CumulativeFoundationYieldUSD

	return s
}

// Generator assembles reports with an injectable clock for
// deterministic output.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a report for a completed run.
func (g *Generator) Generate(run domain.SimulationRun, results []domain.WeeklyResult) *Report {
	return &Report{
		GeneratedAt: g.now(),
		Run:         run,
		Summary:     Summarize(results),
		Results:     results,
	}
}
