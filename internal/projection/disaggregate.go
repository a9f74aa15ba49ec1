package projection

import "github.com/SkinxH/RPCfi-TRON/internal/domain"

// Disaggregate expands a monthly series into weekly points. Each month
// contributes exactly domain.WeeksGenerated points of revenue/4.33,
// dated 0, 1, 2 and 3 whole weeks after the month's first day.
//
// The weekly points of one month sum to 4/4.33 of the monthly figure,
// not the full amount. The shortfall is intentional and must be kept:
// downstream consumers were calibrated against this approximation.
func Disaggregate(monthly []domain.MonthlyRevenuePoint) []domain.WeeklyRevenuePoint {
	weekly := make([]domain.WeeklyRevenuePoint, 0, len(monthly)*domain.WeeksGenerated)

	for _, m := range monthly {
		weeklyRevenue := m.RevenueUSD / domain.WeeksPerMonth
		for week := 0; week < domain.WeeksGenerated; week++ {
			weekly = append(weekly, domain.WeeklyRevenuePoint{
				Date:       m.Month.AddDate(0, 0, 7*week),
				RevenueUSD: weeklyRevenue,
			})
		}
	}

	return weekly
}
