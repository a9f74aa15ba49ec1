package domain

import (
	"errors"
	"testing"
	"time"
)

func validConfig() *SimulationConfig {
	return &SimulationConfig{
		ChainName:       "Tron",
		NativeToken:     "TRX",
		GovernanceToken: "ANKR",
		TokenPrices: map[string]float64{
			"TRX":  0.12,
			"ANKR": 0.025,
		},
		InitialLP: map[string]float64{
			"Tron Foundation": 50000,
			"Ankr Foundation": 50000,
		},
		GrowthMultiplier: 1.4,
		FutureMultiplier: 2.0,
		GrowthStrategy:   GrowthStrategyLinearRamp,
		Period: Period{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2027, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_MissingTokenPrice(t *testing.T) {
	cfg := validConfig()
	delete(cfg.TokenPrices, "ANKR")

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_NonPositivePrice(t *testing.T) {
	cfg := validConfig()
	cfg.TokenPrices["TRX"] = 0

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero price, got %v", err)
	}

	cfg.TokenPrices["TRX"] = -0.5
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for negative price, got %v", err)
	}
}

func TestValidate_PeriodEndBeforeStart(t *testing.T) {
	cfg := validConfig()
	cfg.Period.Start = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.Period.End = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for inverted period, got %v", err)
	}
}

func TestValidate_HorizonBound(t *testing.T) {
	cfg := validConfig()
	cfg.Period.End = cfg.Period.Start.AddDate(0, MaxHorizonMonths, 0)

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for oversized horizon, got %v", err)
	}
}

func TestValidate_UnknownGrowthStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.GrowthStrategy = "exponential"

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for unknown strategy, got %v", err)
	}
}

func TestValidate_NonPositiveAPY(t *testing.T) {
	cfg := validConfig()
	cfg.APYScenarios = map[string]float64{"base": 0}

	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero APY, got %v", err)
	}
}

func TestScenarios_DefaultFallback(t *testing.T) {
	cfg := validConfig()

	scenarios := cfg.Scenarios()
	if len(scenarios) != 3 {
		t.Fatalf("expected 3 default scenarios, got %d", len(scenarios))
	}
	if scenarios["worst"] != 20.0 || scenarios["base"] != 30.0 || scenarios["best"] != 40.0 {
		t.Errorf("unexpected default scenario set: %v", scenarios)
	}
}

func TestFoundationLP_SumsContributions(t *testing.T) {
	cfg := validConfig()

	if got := cfg.FoundationLP(); got != 100000 {
		t.Errorf("expected foundation LP 100000, got %v", got)
	}
}

func TestPeriodMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "single month",
			start: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "two years",
			start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2027, 12, 1, 0, 0, 0, 0, time.UTC),
			want:  24,
		},
		{
			name:  "year boundary",
			start: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			want:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Period{Start: tt.start, End: tt.end}
			if got := p.Months(); got != tt.want {
				t.Errorf("Months() = %d, want %d", got, tt.want)
			}
		})
	}
}
