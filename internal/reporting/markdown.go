package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders a report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# RPCfi Flow Report: %s\n\n", r.Run.ChainName))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: `%s`\n\n", r.Run.RunID))

	// Parameters
	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Growth Strategy | %s |\n", r.Run.GrowthStrategy))
	sb.WriteString(fmt.Sprintf("| APY Scenario | %s (%.1f%%) |\n", r.Run.ScenarioID, r.Run.APYPercent))
	sb.WriteString(fmt.Sprintf("| Period | %s to %s |\n",
		r.Run.PeriodStart.Format("2006-01"), r.Run.PeriodEnd.Format("2006-01")))
	sb.WriteString(fmt.Sprintf("| Weeks Simulated | %d |\n", r.Run.Weeks))
	sb.WriteString("\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | USD |\n")
	sb.WriteString("|--------|-----|\n")
	sb.WriteString(fmt.Sprintf("| Total RPC Revenue | %.2f |\n", r.Summary.TotalRevenueUSD))
	sb.WriteString(fmt.Sprintf("| Total Buybacks | %.2f |\n", r.Summary.TotalBuybackUSD))
	sb.WriteString(fmt.Sprintf("| Final LP TVL | %.2f |\n", r.Summary.FinalLPTVLUSD))
	sb.WriteString(fmt.Sprintf("| Cumulative Dev Yield | %.2f |\n", r.Summary.CumulativeDevYieldUSD))
	sb.WriteString(fmt.Sprintf("| Cumulative Foundation Yield | %.2f |\n", r.Summary.CumulativeFoundationYieldUSD))
	sb.WriteString(fmt.Sprintf("| Avg Weekly Dev Yield | %.2f |\n", r.Summary.AvgWeeklyDevYieldUSD))
	sb.WriteString(fmt.Sprintf("| Avg Weekly Foundation Yield | %.2f |\n", r.Summary.AvgWeeklyFoundationYieldUSD))
	sb.WriteString("\n")

	// Weekly table
	sb.WriteString("## Weekly Flows\n\n")
	if len(r.Results) > 0 {
		sb.WriteString("| Week | Date | Revenue | Weekly LP | Cum. Dev LP | Total TVL | Dev Yield | Foundation Yield |\n")
		sb.WriteString("|------|------|---------|-----------|-------------|-----------|-----------|------------------|\n")
		for _, w := range r.Results {
			sb.WriteString(fmt.Sprintf("| %d | %s | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				w.Week,
				w.Date.Format("2006-01-02"),
				w.RevenueUSD,
				w.WeeklyLPValueUSD,
				w.CumulativeDevLPUSD,
				w.TotalLPTVLUSD,
				w.DevWeeklyYieldUSD,
				w.FoundationWeeklyYieldUSD,
			))
		}
	} else {
		sb.WriteString("No weekly results.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
