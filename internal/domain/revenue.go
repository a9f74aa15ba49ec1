package domain

import "time"

// MonthlyRevenuePoint is one month of projected (or historical) RPC
// revenue. Month is the first day of the calendar month, UTC.
type MonthlyRevenuePoint struct {
	Month      time.Time // first day of month, UTC
	RevenueUSD float64   // monthly revenue, >= 0
}

// WeeklyRevenuePoint is one weekly revenue slice derived from a monthly
// point. Four slices are generated per month, offset by whole weeks from
// the month's first day.
type WeeklyRevenuePoint struct {
	Date       time.Time // month start + 0..3 whole weeks
	RevenueUSD float64   // monthly revenue / WeeksPerMonth
}
