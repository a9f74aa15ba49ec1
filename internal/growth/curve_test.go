package growth

import (
	"math"
	"testing"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

const epsilon = 1e-9

func TestMilestoneCurve_Breakpoints(t *testing.T) {
	tests := []struct {
		elapsed int
		want    float64
	}{
		{0, 1.0},
		{3, 1.5},
		{6, 1.75},
		{9, 1.875},
		{12, 2.0},
		{15, 2.5},
		{18, 3.0},
	}

	c := MilestoneCurve{}
	for _, tt := range tests {
		if got := c.Factor(tt.elapsed, 24); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Factor(%d) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestMilestoneCurve_Interpolation(t *testing.T) {
	tests := []struct {
		elapsed int
		want    float64
	}{
		{1, 1.0 + 0.5/3},  // between 0 -> 1.0 and 3 -> 1.5
		{2, 1.0 + 1.0/3},
		{4, 1.5 + 0.25/3}, // between 3 -> 1.5 and 6 -> 1.75
		{13, 2.0 + 0.5/3}, // between 12 -> 2.0 and 15 -> 2.5
		{16, 2.5 + 0.5/3}, // between 15 -> 2.5 and 18 -> 3.0
		{17, 2.5 + 1.0/3},
	}

	c := MilestoneCurve{}
	for _, tt := range tests {
		if got := c.Factor(tt.elapsed, 24); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Factor(%d) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestMilestoneCurve_CappedBeyondSchedule(t *testing.T) {
	c := MilestoneCurve{}

	for _, elapsed := range []int{18, 19, 24, 36, 120} {
		if got := c.Factor(elapsed, 120); got != 3.0 {
			t.Errorf("Factor(%d) = %v, want capped 3.0", elapsed, got)
		}
	}
}

func TestMilestoneCurve_Monotonic(t *testing.T) {
	c := MilestoneCurve{}

	prev := c.Factor(0, 24)
	for elapsed := 1; elapsed <= 24; elapsed++ {
		got := c.Factor(elapsed, 24)
		if got < prev {
			t.Fatalf("Factor decreased at %d: %v < %v", elapsed, got, prev)
		}
		prev = got
	}
}

func TestLinearRampCurve_Endpoints(t *testing.T) {
	c := LinearRampCurve{Initial: 1.5, Future: 2.0}

	if got := c.Factor(0, 12); math.Abs(got-1.5) > epsilon {
		t.Errorf("Factor(0) = %v, want 1.5", got)
	}
	if got := c.Factor(12, 12); math.Abs(got-2.0) > epsilon {
		t.Errorf("Factor(12) = %v, want 2.0", got)
	}
}

func TestLinearRampCurve_MonotonicBetweenEndpoints(t *testing.T) {
	c := LinearRampCurve{Initial: 1.5, Future: 2.0}

	prev := c.Factor(0, 12)
	for elapsed := 1; elapsed <= 12; elapsed++ {
		got := c.Factor(elapsed, 12)
		if got <= prev {
			t.Fatalf("expected strictly increasing ramp, Factor(%d) = %v after %v", elapsed, got, prev)
		}
		prev = got
	}
}

func TestLinearRampCurve_ZeroHorizon(t *testing.T) {
	c := LinearRampCurve{Initial: 1.4, Future: 2.0}

	// No division by zero: a single-month horizon pins the multiplier
	// at the initial value.
	if got := c.Factor(0, 0); got != 1.4 {
		t.Errorf("Factor(0, 0) = %v, want 1.4", got)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &domain.SimulationConfig{
		GrowthStrategy:   domain.GrowthStrategyLinearRamp,
		GrowthMultiplier: 1.4,
		FutureMultiplier: 2.0,
	}

	curve, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	ramp, ok := curve.(LinearRampCurve)
	if !ok {
		t.Fatalf("expected LinearRampCurve, got %T", curve)
	}
	if ramp.Initial != 1.4 || ramp.Future != 2.0 {
		t.Errorf("unexpected ramp parameters: %+v", ramp)
	}

	cfg.GrowthStrategy = domain.GrowthStrategyMilestone
	curve, err = FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if _, ok := curve.(MilestoneCurve); !ok {
		t.Fatalf("expected MilestoneCurve, got %T", curve)
	}

	cfg.GrowthStrategy = "bogus"
	if _, err := FromConfig(cfg); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
