package domain

import (
	"errors"
	"fmt"
	"time"
)

// Growth strategy identifiers. The strategy is a configuration choice,
// never inferred from the shape of the input data.
const (
	GrowthStrategyMilestone  = "milestone"
	GrowthStrategyLinearRamp = "linear-ramp"
)

// Engine policy constants. These are fixed policy, not configuration.
const (
	// BuybackShare is the fraction of weekly revenue spent on each token.
	// Native and governance buybacks together consume 50% of revenue;
	// the remaining 50% stays with the infrastructure provider and is
	// not tracked further.
	BuybackShare = 0.25

	// WeeksPerMonth is the divisor used when breaking a monthly figure
	// into weekly slices. Only WeeksGenerated slices are emitted per
	// month, so weekly totals sum to 4/4.33 of the monthly figure. This
	// mismatch is a known quirk kept for behavioral compatibility.
	WeeksPerMonth = 4.33

	// WeeksGenerated is the number of weekly slots emitted per month.
	WeeksGenerated = 4

	// WeeksPerYear converts an annual percentage yield into weekly yield.
	WeeksPerYear = 52

	// DefaultBaseRevenue is the monthly base revenue used when no usable
	// historical series is configured.
	DefaultBaseRevenue = 35000.0

	// MaxHorizonMonths bounds the simulation period. Enforced at
	// configuration acceptance, never mid-run.
	MaxHorizonMonths = 120
)

// DefaultAPYScenarios is the scenario set used when the configuration
// does not define its own.
var DefaultAPYScenarios = map[string]float64{
	"worst": 20.0,
	"base":  30.0,
	"best":  40.0,
}

// ErrInvalidConfig is the base error for all configuration validation
// failures. Wrapped errors carry the offending field.
var ErrInvalidConfig = errors.New("invalid simulation config")

// ErrUnknownScenario is returned when a run is requested with an APY
// scenario name that is not present in the configured scenario set.
var ErrUnknownScenario = errors.New("unknown apy scenario")

// Period is a simulation window at month granularity. Start and End are
// the first day of the respective months, both inclusive.
type Period struct {
	Start time.Time // first month of the horizon (day 1, UTC)
	End   time.Time // last month of the horizon (day 1, UTC)
}

// Months returns the number of calendar months in the period, inclusive
// of both endpoints.
func (p Period) Months() int {
	years := p.End.Year() - p.Start.Year()
	months := int(p.End.Month()) - int(p.Start.Month())
	return years*12 + months + 1
}

// SimulationConfig is the fully resolved input to the engine. It is
// produced by a collaborator (config loader, server handler); the engine
// never reads files or the environment.
type SimulationConfig struct {
	ChainName        string             // e.g. "Tron"
	NativeToken      string             // buyback token A, e.g. "TRX"
	GovernanceToken  string             // buyback token B, e.g. "ANKR"
	TokenPrices      map[string]float64 // token symbol -> USD price, fixed for the whole run
	InitialLP        map[string]float64 // contributor -> USD, sum is the constant foundation baseline
	GrowthMultiplier float64            // initial growth multiplier
	FutureMultiplier float64            // expected future growth multiplier
	GrowthStrategy   string             // GrowthStrategyMilestone | GrowthStrategyLinearRamp
	APYScenarios     map[string]float64 // scenario name -> APY percent per annum
	HistoricalData   []MonthlyRevenuePoint
	Period           Period
}

// FoundationLP returns the constant baseline liquidity: the sum of the
// configured initial contributions. It is never mutated by a run.
func (c *SimulationConfig) FoundationLP() float64 {
	total := 0.0
	for _, v := range c.InitialLP {
		total += v
	}
	return total
}

// Scenarios returns the configured APY scenario set, falling back to
// DefaultAPYScenarios when none is configured.
func (c *SimulationConfig) Scenarios() map[string]float64 {
	if len(c.APYScenarios) == 0 {
		return DefaultAPYScenarios
	}
	return c.APYScenarios
}

// Validate checks the configuration error taxonomy. All failures surface
// here, before any week is simulated; the pure computation downstream has
// no failure paths of its own.
func (c *SimulationConfig) Validate() error {
	if c.NativeToken == "" {
		return fmt.Errorf("%w: native_token is required", ErrInvalidConfig)
	}
	if c.GovernanceToken == "" {
		return fmt.Errorf("%w: governance_token is required", ErrInvalidConfig)
	}

	for _, token := range []string{c.NativeToken, c.GovernanceToken} {
		price, ok := c.TokenPrices[token]
		if !ok {
			return fmt.Errorf("%w: token_prices missing entry for %q", ErrInvalidConfig, token)
		}
		if price <= 0 {
			return fmt.Errorf("%w: token_prices[%q] must be > 0, got %v", ErrInvalidConfig, token, price)
		}
	}

	for contributor, amount := range c.InitialLP {
		if amount < 0 {
			return fmt.Errorf("%w: initial_lp[%q] must be >= 0, got %v", ErrInvalidConfig, contributor, amount)
		}
	}

	switch c.GrowthStrategy {
	case GrowthStrategyMilestone:
	case GrowthStrategyLinearRamp:
		if c.GrowthMultiplier <= 0 {
			return fmt.Errorf("%w: growth_multiplier must be > 0, got %v", ErrInvalidConfig, c.GrowthMultiplier)
		}
		if c.FutureMultiplier <= 0 {
			return fmt.Errorf("%w: expected_future_growth_multiplier must be > 0, got %v", ErrInvalidConfig, c.FutureMultiplier)
		}
	default:
		return fmt.Errorf("%w: unknown growth_strategy %q", ErrInvalidConfig, c.GrowthStrategy)
	}

	for name, apy := range c.Scenarios() {
		if apy <= 0 {
			return fmt.Errorf("%w: apy_scenarios[%q] must be > 0, got %v", ErrInvalidConfig, name, apy)
		}
	}

	if c.Period.Start.IsZero() || c.Period.End.IsZero() {
		return fmt.Errorf("%w: period start and end are required", ErrInvalidConfig)
	}
	if c.Period.End.Before(c.Period.Start) {
		return fmt.Errorf("%w: period end %s before start %s", ErrInvalidConfig,
			c.Period.End.Format("2006-01"), c.Period.Start.Format("2006-01"))
	}
	if months := c.Period.Months(); months > MaxHorizonMonths {
		return fmt.Errorf("%w: period spans %d months, max %d", ErrInvalidConfig, months, MaxHorizonMonths)
	}

	return nil
}
