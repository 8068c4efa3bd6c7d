package models

import "time"

// RawDailyRecord is one store's one business day of operational counters, exactly
// as the operator entered them. Natural key: (StoreID, BusinessDate). A business
// date is the operating day, not the wall-clock date; late-night closes still
// belong to the day the shift opened.
type RawDailyRecord struct {
	StoreID            string    `json:"store_id"`
	BusinessDate       time.Time `json:"business_date"`
	NetSales           float64   `json:"net_sales"`
	LaborDollars       float64   `json:"labor_dollars"`
	LaborHours         float64   `json:"labor_hours"`
	FoodDollars        float64   `json:"food_dollars"`
	DisposablesDollars float64   `json:"disposables_dollars"`
	VoidsDollars       float64   `json:"voids_dollars"`
	WasteDollars       float64   `json:"waste_dollars"`
	Customers          float64   `json:"customers"`
	ScheduledHours     *float64  `json:"scheduled_hours,omitempty"`
	BumpTimeMinutes    *float64  `json:"bump_time_minutes,omitempty"`
}

// ComputedDailyRecord adds the derived metrics to a raw record. Every ratio is a
// pointer: nil means the denominator was zero and the metric does not apply that
// day. Nil is never 0 — a no-sales day is not a 0%-cost day.
type ComputedDailyRecord struct {
	RawDailyRecord
	PrimeDollars       float64  `json:"prime_dollars"`
	PrimePct           *float64 `json:"prime_pct"`
	LaborPct           *float64 `json:"labor_pct"`
	FoodPct            *float64 `json:"food_pct"`
	DisposablesPct     *float64 `json:"disposables_pct"`
	FoodDisposablesPct *float64 `json:"food_disposables_pct"`
	SLPH               *float64 `json:"slph"`
	AOV                *float64 `json:"aov"`
	VariancePrime      *float64 `json:"variance_prime"`
}

// StoreTargets holds one store's threshold bands. LaborMin is optional: when set
// the labor target is a closed band [LaborMin, LaborMax], otherwise LaborMax is a
// plain ceiling.
type StoreTargets struct {
	StoreID            string   `json:"store_id"`
	Name               string   `json:"name"`
	PrimeMax           float64  `json:"prime_max"`
	LaborMin           *float64 `json:"labor_min,omitempty"`
	LaborMax           float64  `json:"labor_max"`
	FoodDisposablesMax float64  `json:"food_disposables_max"`
	SLPHMin            float64  `json:"slph_min"`
}

// WeeklyAggregate is a week rolled up from daily records: totals are straight
// sums, ratios are re-derived from those totals (never averaged from daily
// ratios).
type WeeklyAggregate struct {
	StoreID      string `json:"store_id,omitempty"`
	WeekStart    string `json:"week_start"`
	WeekEnd      string `json:"week_end"`
	DaysReported int    `json:"days_reported"`

	NetSales           float64 `json:"net_sales"`
	LaborDollars       float64 `json:"labor_dollars"`
	LaborHours         float64 `json:"labor_hours"`
	FoodDollars        float64 `json:"food_dollars"`
	DisposablesDollars float64 `json:"disposables_dollars"`
	VoidsDollars       float64 `json:"voids_dollars"`
	WasteDollars       float64 `json:"waste_dollars"`
	Customers          float64 `json:"customers"`
	ScheduledHours     float64 `json:"scheduled_hours"`
	PrimeDollars       float64 `json:"prime_dollars"`

	PrimePct           *float64 `json:"prime_pct"`
	LaborPct           *float64 `json:"labor_pct"`
	FoodPct            *float64 `json:"food_pct"`
	DisposablesPct     *float64 `json:"disposables_pct"`
	FoodDisposablesPct *float64 `json:"food_disposables_pct"`
	SLPH               *float64 `json:"slph"`
	AOV                *float64 `json:"aov"`
	BumpTimeMinutes    *float64 `json:"bump_time_minutes"`
	VariancePrime      *float64 `json:"variance_prime,omitempty"`
}

// Status is the cockpit-granularity classification of a metric against its
// target. StatusUnknown marks an undefined metric (nil ratio), which no view may
// coerce to a pass or a fail.
type Status string

const (
	StatusOnTrack Status = "on_track"
	StatusOver    Status = "over"
	StatusUnder   Status = "under"
	StatusUnknown Status = "unknown"
)

// Grade is the coarser scoreboard scheme for single-day views. Yellow covers the
// tolerance band past a boundary and the safe-side approach below a band floor.
type Grade string

const (
	GradeGreen   Grade = "green"
	GradeYellow  Grade = "yellow"
	GradeRed     Grade = "red"
	GradeUnknown Grade = "unknown"
)

type IssueType string

const (
	IssuePrimeOver         IssueType = "prime_over_target"
	IssueLaborOutside      IssueType = "labor_outside_band"
	IssueProductivityBelow IssueType = "productivity_below_floor"
	IssueWorstDay          IssueType = "worst_day_variance"
)

// Issue is an ephemeral violation summary, recomputed on every query. Date is
// set for the worst-day issue, Dates for per-rule violations.
type Issue struct {
	Type    IssueType `json:"type"`
	Date    string    `json:"date,omitempty"`
	Dates   []string  `json:"dates,omitempty"`
	Count   int       `json:"count"`
	Message string    `json:"message"`
}

// WeeklyReport is the cockpit response for one store's week.
type WeeklyReport struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`

	Week WeeklyAggregate       `json:"week"`
	Days []ComputedDailyRecord `json:"days"`

	PrimeStatus           Status `json:"prime_status"`
	LaborStatus           Status `json:"labor_status"`
	FoodDisposablesStatus Status `json:"food_disposables_status"`
	ProductivityStatus    Status `json:"productivity_status"`

	Issues []Issue `json:"issues"`

	Rolling7DayPrime      *float64 `json:"rolling_7day_prime"`
	Rolling7DayPrimeDays  int      `json:"rolling_7day_prime_days"`
	Rolling4WeekPrime     *float64 `json:"rolling_4week_prime"`
	Rolling4WeekPrimeUsed int      `json:"rolling_4week_prime_weeks"`

	Deltas WeekDeltas `json:"week_over_week"`
}

// WeekDeltas are current-minus-previous week movements. Nil means the pair was
// not comparable, which is different from a 0 (no change).
type WeekDeltas struct {
	NetSales  *float64 `json:"net_sales"`
	Customers *float64 `json:"customers"`
	PrimePct  *float64 `json:"prime_pct"`
	LaborPct  *float64 `json:"labor_pct"`
	SLPH      *float64 `json:"slph"`
	AOV       *float64 `json:"aov"`
}

// DailyScoreboard is the single-day view: the computed record plus its grades.
type DailyScoreboard struct {
	Day ComputedDailyRecord `json:"day"`

	PrimeGrade           Grade `json:"prime_grade"`
	LaborGrade           Grade `json:"labor_grade"`
	FoodDisposablesGrade Grade `json:"food_disposables_grade"`
	ProductivityGrade    Grade `json:"productivity_grade"`
}

// StoreComparisonRow is one store's line in the cross-store weekly ranking.
type StoreComparisonRow struct {
	StoreID   string          `json:"store_id"`
	StoreName string          `json:"store_name"`
	Week      WeeklyAggregate `json:"week"`
	Status    Status          `json:"prime_status"`
	Rank      int             `json:"rank"`
}

// TrendReport carries a rolling average together with the sample size actually
// used, so short windows are visible to the caller.
type TrendReport struct {
	StoreID           string   `json:"store_id"`
	Through           string   `json:"through"`
	Rolling7DayPrime  *float64 `json:"rolling_7day_prime"`
	DaysUsed          int      `json:"days_used"`
	Rolling4WeekPrime *float64 `json:"rolling_4week_prime"`
	WeeksUsed         int      `json:"weeks_used"`
}
