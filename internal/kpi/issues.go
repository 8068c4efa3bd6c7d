package kpi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/restoboard/restoboard/internal/models"
)

// DetectIssues scans a week's computed records once and emits one Issue per
// rule with at least one violating date, plus the single worst PRIME day when
// any day ran over target. Compliant rules are omitted, never emitted with a
// zero count. Thresholds appear in messages in the units the operator entered.
func DetectIssues(t models.StoreTargets, days []models.ComputedDailyRecord) []models.Issue {
	var primeDates, laborDates, slphDates []time.Time

	var worstDate time.Time
	var worstVariance float64
	var worstPct float64
	haveWorst := false

	for _, d := range days {
		bd := Day(d.BusinessDate)
		if d.PrimePct != nil && *d.PrimePct > t.PrimeMax {
			primeDates = append(primeDates, bd)
		}
		if d.LaborPct != nil && ClassifyLabor(t, d.LaborPct) != models.StatusOnTrack {
			laborDates = append(laborDates, bd)
		}
		if d.SLPH != nil && *d.SLPH < t.SLPHMin {
			slphDates = append(slphDates, bd)
		}
		if d.VariancePrime != nil {
			v := *d.VariancePrime
			// empates: gana la fecha más temprana
			if !haveWorst || v > worstVariance || (v == worstVariance && bd.Before(worstDate)) {
				haveWorst = true
				worstVariance = v
				worstDate = bd
				worstPct = *d.PrimePct
			}
		}
	}

	sortDates(primeDates)
	sortDates(laborDates)
	sortDates(slphDates)

	var issues []models.Issue
	if len(primeDates) > 0 {
		issues = append(issues, models.Issue{
			Type:    models.IssuePrimeOver,
			Dates:   formatDates(primeDates),
			Count:   len(primeDates),
			Message: fmt.Sprintf("PRIME above the %.1f%% target on %d day(s): %s", t.PrimeMax, len(primeDates), joinDates(primeDates)),
		})
	}
	if len(laborDates) > 0 {
		var msg string
		if t.LaborMin != nil {
			msg = fmt.Sprintf("Labor outside the %.1f-%.1f%% band on %d day(s): %s", *t.LaborMin, t.LaborMax, len(laborDates), joinDates(laborDates))
		} else {
			msg = fmt.Sprintf("Labor above the %.1f%% target on %d day(s): %s", t.LaborMax, len(laborDates), joinDates(laborDates))
		}
		issues = append(issues, models.Issue{
			Type:    models.IssueLaborOutside,
			Dates:   formatDates(laborDates),
			Count:   len(laborDates),
			Message: msg,
		})
	}
	if len(slphDates) > 0 {
		issues = append(issues, models.Issue{
			Type:    models.IssueProductivityBelow,
			Dates:   formatDates(slphDates),
			Count:   len(slphDates),
			Message: fmt.Sprintf("Sales per labor hour below the %.1f floor on %d day(s): %s", t.SLPHMin, len(slphDates), joinDates(slphDates)),
		})
	}
	if haveWorst && worstVariance > 0 {
		issues = append(issues, models.Issue{
			Type:    models.IssueWorstDay,
			Date:    worstDate.Format(DateFormat),
			Count:   1,
			Message: fmt.Sprintf("Worst PRIME day was %s at %.1f%% (%+.1f vs the %.1f%% target)", worstDate.Format("Mon Jan 2"), worstPct, worstVariance, t.PrimeMax),
		})
	}
	return issues
}

func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(DateFormat)
	}
	return out
}

func joinDates(dates []time.Time) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Format("Mon Jan 2")
	}
	return strings.Join(parts, ", ")
}
