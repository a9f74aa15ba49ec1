package simulation

import "github.com/SkinxH/RPCfi-TRON/internal/domain"

// WeeklyYield computes one week's yield on a liquidity value at an
// annualized percentage yield. Yield is paid out, never folded back into
// the liquidity principal.
func WeeklyYield(lpValueUSD, apyPercent float64) float64 {
	return lpValueUSD * (apyPercent / 100) / domain.WeeksPerYear
}
