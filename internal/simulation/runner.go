package simulation

import (
	"fmt"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/growth"
	"github.com/SkinxH/RPCfi-TRON/internal/projection"
)

// Runner executes simulations for a single configuration. It holds no
// mutable state between runs: every Run owns its accumulators and result
// slice exclusively, so runs for different scenarios are independent.
type Runner struct {
	cfg          domain.SimulationConfig
	curve        growth.Curve
	accountant   *Accountant
	foundationLP float64
}

// NewRunner validates the configuration and builds a runner. All
// configuration errors surface here, before any week is simulated.
func NewRunner(cfg domain.SimulationConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	curve, err := growth.FromConfig(&cfg)
	if err != nil {
		return nil, err
	}

	accountant, err := NewAccountant(&cfg)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:          cfg,
		curve:        curve,
		accountant:   accountant,
		foundationLP: cfg.FoundationLP(),
	}, nil
}

// Config returns a copy of the runner's configuration.
func (r *Runner) Config() domain.SimulationConfig {
	return r.cfg
}

// Run simulates the full horizon for the named APY scenario and returns
// the ordered weekly results. Either the whole horizon is computed or an
// error is returned with no partial results.
//
// Per week, in fixed order: buyback split, unit conversion and pair
// valuation, cumulative liquidity update, then yield accrual on the
// grown developer liquidity and on the constant foundation baseline.
func (r *Runner) Run(scenarioName string) ([]domain.WeeklyResult, error) {
	apy, ok := r.cfg.Scenarios()[scenarioName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownScenario, scenarioName)
	}

	monthly := projection.ProjectMonthly(&r.cfg, r.curve)
	weekly := projection.Disaggregate(monthly)

	results := make([]domain.WeeklyResult, 0, len(weekly))

	cumulativeDevLP := 0.0
	cumulativeDevYield := 0.0
	cumulativeFoundationYield := 0.0

	for i, point := range weekly {
		nativeUSD, governanceUSD := SplitBuybacks(point.RevenueUSD)
		nativeUnits, governanceUnits := r.accountant.Units(nativeUSD, governanceUSD)
		weeklyLP := r.accountant.PairValue(nativeUnits, governanceUnits)

		cumulativeDevLP += weeklyLP

		devYield := WeeklyYield(cumulativeDevLP, apy)
		foundationYield := WeeklyYield(r.foundationLP, apy)

		cumulativeDevYield += devYield
		cumulativeFoundationYield += foundationYield

		results = append(results, domain.WeeklyResult{
			Week:                         i + 1,
			Date:                         point.Date,
			RevenueUSD:                   point.RevenueUSD,
			NativeBuybackUSD:             nativeUSD,
			GovernanceBuybackUSD:         governanceUSD,
			NativeUnits:                  nativeUnits,
			GovernanceUnits:              governanceUnits,
			WeeklyLPValueUSD:             weeklyLP,
			CumulativeDevLPUSD:           cumulativeDevLP,
			TotalLPTVLUSD:                cumulativeDevLP + r.foundationLP,
			DevWeeklyYieldUSD:            devYield,
			FoundationWeeklyYieldUSD:     foundationYield,
			CumulativeDevYieldUSD:        cumulativeDevYield,
			CumulativeFoundationYieldUSD: cumulativeFoundationYield,
		})
	}

	return results, nil
}

// Summarize condenses a completed run into a SimulationRun record for
// persistence and reporting. The results slice must be non-empty and
// ordered as returned by Run.
func (r *Runner) Summarize(scenarioName string, results []domain.WeeklyResult) domain.SimulationRun {
	run := domain.SimulationRun{
		ChainName:      r.cfg.ChainName,
		GrowthStrategy: r.cfg.GrowthStrategy,
		ScenarioID:     scenarioName,
		APYPercent:     r.cfg.Scenarios()[scenarioName],
		PeriodStart:    r.cfg.Period.Start,
		PeriodEnd:      r.cfg.Period.End,
		Weeks:          len(results),
	}

	for _, w := range results {
		run.TotalRevenueUSD += w.RevenueUSD
		run.TotalBuybackUSD += w.NativeBuybackUSD + w.GovernanceBuybackUSD
	}

	if len(results) > 0 {
		last := results[len(results)-1]
		run.FinalLPTVLUSD = last.TotalLPTVLUSD
		run.CumulativeDevYieldUSD = last.CumulativeDevYieldUSD
		run.CumulativeFoundationYieldUSD = last.CumulativeFoundationYieldUSD
	}

	return run
}
