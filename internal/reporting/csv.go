package reporting

import (
	"fmt"
	"strings"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// RenderCSV renders the weekly result table as a CSV string.
func RenderCSV(results []domain.WeeklyResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("week,date,revenue_usd,native_buyback_usd,governance_buyback_usd,")
	sb.WriteString("native_units,governance_units,weekly_lp_value_usd,cumulative_dev_lp_usd,")
	sb.WriteString("total_lp_tvl_usd,dev_weekly_yield_usd,foundation_weekly_yield_usd,")
	sb.WriteString("cumulative_dev_yield_usd,cumulative_foundation_yield_usd\n")

	// Rows
	for _, w := range results {
		sb.WriteString(fmt.Sprintf("%d,%s,%.2f,%.2f,%.2f,%.6f,%.6f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			w.Week,
			w.Date.Format("2006-01-02"),
			w.RevenueUSD,
			w.NativeBuybackUSD,
			w.GovernanceBuybackUSD,
			w.NativeUnits,
			w.GovernanceUnits,
			w.WeeklyLPValueUSD,
			w.CumulativeDevLPUSD,
			w.TotalLPTVLUSD,
			w.DevWeeklyYieldUSD,
			w.FoundationWeeklyYieldUSD,
			w.CumulativeDevYieldUSD,
			w.CumulativeFoundationYieldUSD,
		))
	}

	return sb.String()
}
