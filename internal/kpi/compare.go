package kpi

import (
	"sort"

	"github.com/restoboard/restoboard/internal/models"
)

// Delta is current minus previous, nil unless both sides are defined. Never 0
// for an incomparable pair: 0 means "no change", nil means "nothing to compare".
func Delta(current, previous *float64) *float64 {
	if current == nil || previous == nil {
		return nil
	}
	d := *current - *previous
	return &d
}

// DeltaTotals compares two summed totals, but only when both weeks actually
// reported days; a delta against an empty week on either side is not a
// movement, it is nothing to compare.
func DeltaTotals(current, previous float64, currentReported, previousReported bool) *float64 {
	if !currentReported || !previousReported {
		return nil
	}
	d := current - previous
	return &d
}

// RankStores orders the comparison worst-first: PRIME is a cost ratio, so the
// highest weekly percentage needs attention first. Stores with no defined
// weekly PRIME sort last, never first and never as 0. Equal values fall back
// to store id for deterministic output. Rank fields are filled in 1-based.
func RankStores(rows []models.StoreComparisonRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := rows[i].Week.PrimePct, rows[j].Week.PrimePct
		switch {
		case pi == nil && pj == nil:
			return rows[i].StoreID < rows[j].StoreID
		case pi == nil:
			return false
		case pj == nil:
			return true
		case *pi != *pj:
			return *pi > *pj // peor primero
		default:
			return rows[i].StoreID < rows[j].StoreID
		}
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}
