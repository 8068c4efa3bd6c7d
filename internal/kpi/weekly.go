package kpi

import "github.com/restoboard/restoboard/internal/models"

// AggregateWeek rolls daily records into one weekly aggregate: sums first,
// ratios re-derived from the sums. Averaging the daily percentages instead
// would let one near-zero-sales day distort the whole week, so the daily
// ratios are deliberately ignored here. Accepts an empty input and returns
// zero totals with nil ratios.
//
// Bump time is the one weighted metric: customer-weighted across the days
// that reported it, falling back to a simple mean when no reporting day has a
// customer count, nil when no day reported it at all.
func AggregateWeek(days []models.ComputedDailyRecord) models.WeeklyAggregate {
	var agg models.WeeklyAggregate
	agg.DaysReported = len(days)
	if len(days) > 0 {
		earliest := Day(days[0].BusinessDate)
		for _, d := range days[1:] {
			if bd := Day(d.BusinessDate); bd.Before(earliest) {
				earliest = bd
			}
		}
		agg.StoreID = days[0].StoreID
		agg.WeekStart = WeekStart(earliest).Format(DateFormat)
		agg.WeekEnd = WeekEnd(earliest).Format(DateFormat)
	}

	var bumpWeighted, bumpCustomers, bumpSum float64
	bumpDays := 0
	for _, d := range days {
		agg.NetSales += d.NetSales
		agg.LaborDollars += d.LaborDollars
		agg.LaborHours += d.LaborHours
		agg.FoodDollars += d.FoodDollars
		agg.DisposablesDollars += d.DisposablesDollars
		agg.VoidsDollars += d.VoidsDollars
		agg.WasteDollars += d.WasteDollars
		agg.Customers += d.Customers
		if d.ScheduledHours != nil {
			agg.ScheduledHours += *d.ScheduledHours
		}
		if d.BumpTimeMinutes != nil {
			bumpDays++
			bumpSum += *d.BumpTimeMinutes
			bumpWeighted += *d.BumpTimeMinutes * d.Customers
			bumpCustomers += d.Customers
		}
	}
	agg.PrimeDollars = agg.LaborDollars + agg.FoodDollars + agg.DisposablesDollars

	agg.PrimePct = pct(agg.PrimeDollars, agg.NetSales)
	agg.LaborPct = pct(agg.LaborDollars, agg.NetSales)
	agg.FoodPct = pct(agg.FoodDollars, agg.NetSales)
	agg.DisposablesPct = pct(agg.DisposablesDollars, agg.NetSales)
	agg.FoodDisposablesPct = pct(agg.FoodDollars+agg.DisposablesDollars, agg.NetSales)
	agg.SLPH = slph(agg.NetSales, agg.LaborHours)
	agg.AOV = div(agg.NetSales, agg.Customers)

	if bumpDays > 0 {
		var bump float64
		if bumpCustomers > 0 {
			bump = bumpWeighted / bumpCustomers
		} else {
			bump = bumpSum / float64(bumpDays)
		}
		agg.BumpTimeMinutes = &bump
	}
	return agg
}
