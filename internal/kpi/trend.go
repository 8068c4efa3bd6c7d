package kpi

import "github.com/restoboard/restoboard/internal/models"

// Rolling7DayPrime averages the last 7 defined daily PRIME percentages from a
// chronological sequence. Fewer qualifying days than the window is the normal
// case for a new store: the mean is computed over what exists and the count
// used is returned alongside so callers can show the sample size. Nil mean
// when nothing qualifies.
func Rolling7DayPrime(days []models.ComputedDailyRecord) (*float64, int) {
	var vals []float64
	for _, d := range days {
		if d.PrimePct != nil {
			vals = append(vals, *d.PrimePct)
		}
	}
	if len(vals) > 7 {
		vals = vals[len(vals)-7:]
	}
	return mean(vals)
}

// Rolling4WeekPrime averages up to the 4 trailing weekly PRIME percentages,
// skipping nils, same contract as the daily window.
func Rolling4WeekPrime(weekly []*float64) (*float64, int) {
	var vals []float64
	for _, w := range weekly {
		if w != nil {
			vals = append(vals, *w)
		}
	}
	if len(vals) > 4 {
		vals = vals[len(vals)-4:]
	}
	return mean(vals)
}

func mean(vals []float64) (*float64, int) {
	if len(vals) == 0 {
		return nil, 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	m := sum / float64(len(vals))
	return &m, len(vals)
}
