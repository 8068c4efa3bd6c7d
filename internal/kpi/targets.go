package kpi

import "github.com/restoboard/restoboard/internal/models"

// Tolerance widths for the scoreboard scheme: a miss inside the band is a
// caution, beyond it a failure.
const (
	PctTolerance  = 2.0 // percentage points past a % boundary
	SLPHTolerance = 2.0 // SLPH units under the floor
)

// gradeCeiling classifies a should-stay-under value. tol 0 collapses yellow
// away, which is how the cockpit statuses are derived from the same boundaries.
func gradeCeiling(v, max, tol float64) models.Grade {
	switch {
	case v <= max:
		return models.GradeGreen
	case v > max+tol:
		return models.GradeRed
	default:
		return models.GradeYellow
	}
}

// gradeFloor classifies a should-stay-over value.
func gradeFloor(v, min, tol float64) models.Grade {
	switch {
	case v >= min:
		return models.GradeGreen
	case v < min-tol:
		return models.GradeRed
	default:
		return models.GradeYellow
	}
}

// ClassifyPrime grades PRIME % against the store ceiling. Nil in, unknown out.
func ClassifyPrime(t models.StoreTargets, primePct *float64) models.Status {
	if primePct == nil {
		return models.StatusUnknown
	}
	if gradeCeiling(*primePct, t.PrimeMax, 0) == models.GradeGreen {
		return models.StatusOnTrack
	}
	return models.StatusOver
}

// ClassifyLabor handles both target shapes in one place: a closed band when the
// store sets LaborMin, a plain ceiling otherwise. Ceiling-only stores can never
// be under.
func ClassifyLabor(t models.StoreTargets, laborPct *float64) models.Status {
	if laborPct == nil {
		return models.StatusUnknown
	}
	if t.LaborMin != nil && *laborPct < *t.LaborMin {
		return models.StatusUnder
	}
	if gradeCeiling(*laborPct, t.LaborMax, 0) == models.GradeGreen {
		return models.StatusOnTrack
	}
	return models.StatusOver
}

// ClassifyFoodDisposables grades the combined food+disposables % ceiling.
func ClassifyFoodDisposables(t models.StoreTargets, fdPct *float64) models.Status {
	if fdPct == nil {
		return models.StatusUnknown
	}
	if gradeCeiling(*fdPct, t.FoodDisposablesMax, 0) == models.GradeGreen {
		return models.StatusOnTrack
	}
	return models.StatusOver
}

// ClassifyProductivity grades SLPH against the store floor.
func ClassifyProductivity(t models.StoreTargets, slph *float64) models.Status {
	if slph == nil {
		return models.StatusUnknown
	}
	if gradeFloor(*slph, t.SLPHMin, 0) == models.GradeGreen {
		return models.StatusOnTrack
	}
	return models.StatusUnder
}

// GradePrime is the scoreboard (green/yellow/red) view of the PRIME ceiling.
func GradePrime(t models.StoreTargets, primePct *float64) models.Grade {
	if primePct == nil {
		return models.GradeUnknown
	}
	return gradeCeiling(*primePct, t.PrimeMax, PctTolerance)
}

// GradeLabor: below a band floor is caution, never failure — understaffing
// reads as a warning, overspending past the tolerance as red.
func GradeLabor(t models.StoreTargets, laborPct *float64) models.Grade {
	if laborPct == nil {
		return models.GradeUnknown
	}
	if t.LaborMin != nil && *laborPct < *t.LaborMin {
		return models.GradeYellow
	}
	return gradeCeiling(*laborPct, t.LaborMax, PctTolerance)
}

func GradeFoodDisposables(t models.StoreTargets, fdPct *float64) models.Grade {
	if fdPct == nil {
		return models.GradeUnknown
	}
	return gradeCeiling(*fdPct, t.FoodDisposablesMax, PctTolerance)
}

func GradeProductivity(t models.StoreTargets, slph *float64) models.Grade {
	if slph == nil {
		return models.GradeUnknown
	}
	return gradeFloor(*slph, t.SLPHMin, SLPHTolerance)
}
