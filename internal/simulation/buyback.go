// Package simulation implements the weekly buyback/liquidity/yield
// engine. A run is a pure function of (config, scenario name) producing
// an ordered slice of weekly results; re-running with identical inputs
// yields identical output.
package simulation

import "github.com/SkinxH/RPCfi-TRON/internal/domain"

// SplitBuybacks splits one week's gross revenue into the two buyback
// legs. Each leg receives domain.BuybackShare (25%) of revenue; the
// remaining half of revenue is retained by the infrastructure provider
// and leaves the model here.
func SplitBuybacks(weeklyRevenue float64) (nativeUSD, governanceUSD float64) {
	return domain.BuybackShare * weeklyRevenue, domain.BuybackShare * weeklyRevenue
}
