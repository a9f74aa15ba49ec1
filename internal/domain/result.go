package domain

import "time"

// WeeklyResult is one row of the simulation output. Rows are created
// once by the runner, in chronological order, and never mutated after
// being appended. The full ordered slice is the run's sole artifact and
// is owned exclusively by the caller.
type WeeklyResult struct {
	Week                         int       `json:"week"`                            // 1-based, strictly increasing
	Date                         time.Time `json:"date"`                            // week date
	RevenueUSD                   float64   `json:"revenue_usd"`                     // gross weekly RPC revenue
	NativeBuybackUSD             float64   `json:"native_buyback_usd"`              // 25% of revenue
	GovernanceBuybackUSD         float64   `json:"governance_buyback_usd"`          // 25% of revenue
	NativeUnits                  float64   `json:"native_units"`                    // buyback USD / native price
	GovernanceUnits              float64   `json:"governance_units"`                // buyback USD / governance price
	WeeklyLPValueUSD             float64   `json:"weekly_lp_value_usd"`             // value of this week's paired deposit
	CumulativeDevLPUSD           float64   `json:"cumulative_dev_lp_usd"`           // running sum, never decreases
	TotalLPTVLUSD                float64   `json:"total_lp_tvl_usd"`                // cumulative dev LP + foundation baseline
	DevWeeklyYieldUSD            float64   `json:"dev_weekly_yield_usd"`            // yield on cumulative dev LP
	FoundationWeeklyYieldUSD     float64   `json:"foundation_weekly_yield_usd"`     // yield on constant baseline
	CumulativeDevYieldUSD        float64   `json:"cumulative_dev_yield_usd"`        // running sum, never decreases
	CumulativeFoundationYieldUSD float64   `json:"cumulative_foundation_yield_usd"` // running sum, never decreases
}

// SimulationRun is the persisted record of one completed run: identity,
// chosen parameters, and headline totals taken from the final week.
type SimulationRun struct {
	RunID                        string    `json:"run_id"`                          // deterministic id, see idhash
	ChainName                    string    `json:"chain_name"`                      // from config
	GrowthStrategy               string    `json:"growth_strategy"`                 // milestone | linear-ramp
	ScenarioID                   string    `json:"scenario_id"`                     // chosen APY scenario name
	APYPercent                   float64   `json:"apy_percent"`                     // resolved APY for the scenario
	PeriodStart                  time.Time `json:"period_start"`                    // first month of horizon
	PeriodEnd                    time.Time `json:"period_end"`                      // last month of horizon
	Weeks                        int       `json:"weeks"`                           // number of weekly results
	TotalRevenueUSD              float64   `json:"total_revenue_usd"`               // sum of weekly revenue
	TotalBuybackUSD              float64   `json:"total_buyback_usd"`               // sum of both buyback legs
	FinalLPTVLUSD                float64   `json:"final_lp_tvl_usd"`                // TotalLPTVLUSD of the last week
	CumulativeDevYieldUSD        float64   `json:"cumulative_dev_yield_usd"`        // final dev yield total
	CumulativeFoundationYieldUSD float64   `json:"cumulative_foundation_yield_usd"` // final foundation yield total
	CreatedAt                    time.Time `json:"created_at"`                      // persistence timestamp, UTC
}
