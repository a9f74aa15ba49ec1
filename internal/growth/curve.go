// Package growth provides the revenue growth curves used by the
// projector. A curve maps "months elapsed since the horizon start" to a
// dimensionless multiplier applied to the base monthly revenue.
package growth

import (
	"fmt"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// Curve maps an elapsed-month offset to a growth multiplier.
// horizonMonths is the offset of the last month in the horizon; callers
// never ask for offsets beyond it.
type Curve interface {
	Factor(monthsElapsed, horizonMonths int) float64
}

// milestone is one breakpoint of the fixed milestone schedule.
type milestone struct {
	month  int
	factor float64
}

// milestoneSchedule is the fixed growth policy: 1.0x at launch, 1.5x
// after one quarter, 2.0x after one year, 3.0x after eighteen months,
// capped thereafter. Values between breakpoints are linearly
// interpolated. This is engine policy, not configuration.
var milestoneSchedule = []milestone{
	{0, 1.0},
	{3, 1.5},
	{6, 1.75},
	{9, 1.875},
	{12, 2.0},
	{15, 2.5},
	{18, 3.0},
}

// MilestoneCurve is the piecewise-linear milestone growth curve.
type MilestoneCurve struct{}

// Factor returns the milestone multiplier for a month offset. Offsets at
// or beyond the last breakpoint return the capped value.
func (MilestoneCurve) Factor(monthsElapsed, _ int) float64 {
	if monthsElapsed <= 0 {
		return milestoneSchedule[0].factor
	}

	last := milestoneSchedule[len(milestoneSchedule)-1]
	if monthsElapsed >= last.month {
		return last.factor
	}

	for i := 1; i < len(milestoneSchedule); i++ {
		hi := milestoneSchedule[i]
		if monthsElapsed > hi.month {
			continue
		}
		lo := milestoneSchedule[i-1]
		span := float64(hi.month - lo.month)
		progress := float64(monthsElapsed-lo.month) / span
		return lo.factor + (hi.factor-lo.factor)*progress
	}

	return last.factor
}

// LinearRampCurve ramps linearly from Initial at month 0 to Future at
// the last month of the horizon.
type LinearRampCurve struct {
	Initial float64 // multiplier at the horizon start
	Future  float64 // multiplier at the horizon end
}

// Factor returns the ramp multiplier for a month offset. A zero-length
// horizon yields exactly the initial multiplier.
func (c LinearRampCurve) Factor(monthsElapsed, horizonMonths int) float64 {
	if horizonMonths <= 0 {
		return c.Initial
	}
	return c.Initial + (c.Future-c.Initial)*float64(monthsElapsed)/float64(horizonMonths)
}

// FromConfig builds the curve selected by the configuration.
// The configuration must already be validated.
func FromConfig(cfg *domain.SimulationConfig) (Curve, error) {
	switch cfg.GrowthStrategy {
	case domain.GrowthStrategyMilestone:
		return MilestoneCurve{}, nil
	case domain.GrowthStrategyLinearRamp:
		return LinearRampCurve{
			Initial: cfg.GrowthMultiplier,
			Future:  cfg.FutureMultiplier,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown growth_strategy %q", domain.ErrInvalidConfig, cfg.GrowthStrategy)
	}
}
