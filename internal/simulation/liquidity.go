package simulation

import (
	"fmt"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// Accountant converts buyback USD amounts into paired token units and
// values the resulting liquidity position. Prices are fixed at
// construction and validated non-zero, so the unit conversion has no
// runtime failure path.
type Accountant struct {
	nativePrice     float64
	governancePrice float64
}

// NewAccountant builds an accountant from the configured token prices.
func NewAccountant(cfg *domain.SimulationConfig) (*Accountant, error) {
	nativePrice, ok := cfg.TokenPrices[cfg.NativeToken]
	if !ok || nativePrice <= 0 {
		return nil, fmt.Errorf("%w: token_prices[%q] must be > 0", domain.ErrInvalidConfig, cfg.NativeToken)
	}
	governancePrice, ok := cfg.TokenPrices[cfg.GovernanceToken]
	if !ok || governancePrice <= 0 {
		return nil, fmt.Errorf("%w: token_prices[%q] must be > 0", domain.ErrInvalidConfig, cfg.GovernanceToken)
	}

	return &Accountant{
		nativePrice:     nativePrice,
		governancePrice: governancePrice,
	}, nil
}

// Units converts the two buyback USD amounts into token units at the
// fixed prices.
func (a *Accountant) Units(nativeUSD, governanceUSD float64) (nativeUnits, governanceUnits float64) {
	return nativeUSD / a.nativePrice, governanceUSD / a.governancePrice
}

// PairValue re-values a paired deposit in USD. With prices held constant
// this equals the USD deposited, but the quantity carried forward is the
// liquidity value of the pair, not the deposit amount, so the conversion
// is made explicit.
func (a *Accountant) PairValue(nativeUnits, governanceUnits float64) float64 {
	return nativeUnits*a.nativePrice + governanceUnits*a.governancePrice
}
