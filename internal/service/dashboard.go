package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/restoboard/restoboard/internal/kpi"
	"github.com/restoboard/restoboard/internal/metrics"
	"github.com/restoboard/restoboard/internal/models"
	"github.com/restoboard/restoboard/internal/store"
)

// Dashboard is the caller layer around the pure engine: it fetches rows and
// targets, de-duplicates, runs the rollup and assembles response DTOs. The
// engine itself stays stateless and cache-free; caching finished weeks is this
// layer's job.
type Dashboard struct {
	st    store.Store
	cache *ReportCache // nil when redis is not configured
	log   *slog.Logger
	now   func() time.Time
}

func NewDashboard(st store.Store, cache *ReportCache, log *slog.Logger) *Dashboard {
	return &Dashboard{st: st, cache: cache, log: log, now: time.Now}
}

func (s *Dashboard) UpsertEntry(ctx context.Context, rec models.RawDailyRecord) error {
	if _, err := s.st.Targets(ctx, rec.StoreID); err != nil {
		return err
	}
	return s.st.UpsertEntry(ctx, rec)
}

// WeeklyReport builds the cockpit view for one store's week around anchor.
func (s *Dashboard) WeeklyReport(ctx context.Context, storeID string, anchor time.Time) (models.WeeklyReport, error) {
	t, err := s.st.Targets(ctx, storeID)
	if err != nil {
		return models.WeeklyReport{}, err
	}
	ws := kpi.WeekStart(anchor)
	we := kpi.WeekEnd(anchor)

	cacheKey := fmt.Sprintf("weekly:%s:%s", storeID, ws.Format(kpi.DateFormat))
	closed := we.Before(kpi.Day(s.now()))
	if s.cache != nil && closed {
		var cached models.WeeklyReport
		if s.cache.Get(ctx, cacheKey, &cached) {
			metrics.CacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.CacheHits.WithLabelValues("miss").Inc()
	}

	days, err := s.computedWeek(ctx, t, ws, we)
	if err != nil {
		return models.WeeklyReport{}, err
	}
	agg := kpi.AggregateWeek(days)
	agg.StoreID = storeID
	agg.WeekStart = ws.Format(kpi.DateFormat)
	agg.WeekEnd = we.Format(kpi.DateFormat)
	agg.VariancePrime = kpi.Variance(agg.PrimePct, t.PrimeMax)
	metrics.WeeklyEvaluations.Inc()

	prevWS := kpi.PreviousWeekStart(ws)
	prevDays, err := s.computedWeek(ctx, t, prevWS, prevWS.AddDate(0, 0, 6))
	if err != nil {
		return models.WeeklyReport{}, err
	}
	prev := kpi.AggregateWeek(prevDays)

	issues := kpi.DetectIssues(t, days)
	for _, is := range issues {
		metrics.IssuesFlagged.WithLabelValues(string(is.Type)).Inc()
	}

	r7, n7, r4, n4, err := s.rollingPrime(ctx, t, we)
	if err != nil {
		return models.WeeklyReport{}, err
	}

	curReported := agg.DaysReported > 0
	prevReported := prev.DaysReported > 0
	rep := models.WeeklyReport{
		StoreID:   storeID,
		StoreName: t.Name,
		Week:      agg,
		Days:      days,

		PrimeStatus:           kpi.ClassifyPrime(t, agg.PrimePct),
		LaborStatus:           kpi.ClassifyLabor(t, agg.LaborPct),
		FoodDisposablesStatus: kpi.ClassifyFoodDisposables(t, agg.FoodDisposablesPct),
		ProductivityStatus:    kpi.ClassifyProductivity(t, agg.SLPH),

		Issues: issues,

		Rolling7DayPrime:      r7,
		Rolling7DayPrimeDays:  n7,
		Rolling4WeekPrime:     r4,
		Rolling4WeekPrimeUsed: n4,

		Deltas: models.WeekDeltas{
			NetSales:  kpi.DeltaTotals(agg.NetSales, prev.NetSales, curReported, prevReported),
			Customers: kpi.DeltaTotals(agg.Customers, prev.Customers, curReported, prevReported),
			PrimePct:  kpi.Delta(agg.PrimePct, prev.PrimePct),
			LaborPct:  kpi.Delta(agg.LaborPct, prev.LaborPct),
			SLPH:      kpi.Delta(agg.SLPH, prev.SLPH),
			AOV:       kpi.Delta(agg.AOV, prev.AOV),
		},
	}

	if s.cache != nil && closed {
		s.cache.Set(ctx, cacheKey, rep)
	}
	return rep, nil
}

// DailyScoreboard builds the single-day graded view.
func (s *Dashboard) DailyScoreboard(ctx context.Context, storeID string, date time.Time) (models.DailyScoreboard, error) {
	t, err := s.st.Targets(ctx, storeID)
	if err != nil {
		return models.DailyScoreboard{}, err
	}
	date = kpi.Day(date)
	rows, err := s.st.EntriesInRange(ctx, storeID, date, date)
	if err != nil {
		return models.DailyScoreboard{}, err
	}
	raw := models.RawDailyRecord{StoreID: storeID, BusinessDate: date}
	if len(rows) > 0 {
		raw = rows[0]
	}
	day := kpi.DeriveDaily(raw, t.PrimeMax)
	return models.DailyScoreboard{
		Day:                  day,
		PrimeGrade:           kpi.GradePrime(t, day.PrimePct),
		LaborGrade:           kpi.GradeLabor(t, day.LaborPct),
		FoodDisposablesGrade: kpi.GradeFoodDisposables(t, day.FoodDisposablesPct),
		ProductivityGrade:    kpi.GradeProductivity(t, day.SLPH),
	}, nil
}

// Trend returns the rolling averages through a date, with the sample sizes
// actually used.
func (s *Dashboard) Trend(ctx context.Context, storeID string, through time.Time) (models.TrendReport, error) {
	t, err := s.st.Targets(ctx, storeID)
	if err != nil {
		return models.TrendReport{}, err
	}
	through = kpi.Day(through)
	r7, n7, r4, n4, err := s.rollingPrime(ctx, t, through)
	if err != nil {
		return models.TrendReport{}, err
	}
	return models.TrendReport{
		StoreID:           storeID,
		Through:           through.Format(kpi.DateFormat),
		Rolling7DayPrime:  r7,
		DaysUsed:          n7,
		Rolling4WeekPrime: r4,
		WeeksUsed:         n4,
	}, nil
}

// CompareWeek ranks every configured store for the anchor week, worst PRIME
// first.
func (s *Dashboard) CompareWeek(ctx context.Context, anchor time.Time) ([]models.StoreComparisonRow, error) {
	targets, err := s.st.AllTargets(ctx)
	if err != nil {
		return nil, err
	}
	ws := kpi.WeekStart(anchor)
	we := kpi.WeekEnd(anchor)

	rows := make([]models.StoreComparisonRow, 0, len(targets))
	for _, t := range targets {
		days, err := s.computedWeek(ctx, t, ws, we)
		if err != nil {
			return nil, err
		}
		agg := kpi.AggregateWeek(days)
		agg.StoreID = t.StoreID
		agg.WeekStart = ws.Format(kpi.DateFormat)
		agg.WeekEnd = we.Format(kpi.DateFormat)
		agg.VariancePrime = kpi.Variance(agg.PrimePct, t.PrimeMax)
		rows = append(rows, models.StoreComparisonRow{
			StoreID:   t.StoreID,
			StoreName: t.Name,
			Week:      agg,
			Status:    kpi.ClassifyPrime(t, agg.PrimePct),
		})
	}
	kpi.RankStores(rows)
	return rows, nil
}

// computedWeek fetches one store's rows for [from,to] and derives them. The
// store contract already guarantees one row per day; dedupe anyway, la entrada
// del motor debe ser limpia.
func (s *Dashboard) computedWeek(ctx context.Context, t models.StoreTargets, from, to time.Time) ([]models.ComputedDailyRecord, error) {
	rows, err := s.st.EntriesInRange(ctx, t.StoreID, from, to)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(rows))
	out := make([]models.ComputedDailyRecord, 0, len(rows))
	for _, r := range rows {
		k := kpi.Day(r.BusinessDate).Format(kpi.DateFormat)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, kpi.DeriveDaily(r, t.PrimeMax))
	}
	return out, nil
}

// rollingPrime computes both trailing windows ending at through: the 7-day
// window over the trailing 28 calendar days, and the 4-week window over the
// last 4 completed rollups.
func (s *Dashboard) rollingPrime(ctx context.Context, t models.StoreTargets, through time.Time) (*float64, int, *float64, int, error) {
	through = kpi.Day(through)
	days, err := s.computedWeek(ctx, t, through.AddDate(0, 0, -27), through)
	if err != nil {
		return nil, 0, nil, 0, err
	}
	r7, n7 := kpi.Rolling7DayPrime(days)

	weekly := make([]*float64, 0, 4)
	ws := kpi.WeekStart(through)
	for i := 3; i >= 0; i-- {
		start := ws.AddDate(0, 0, -7*i)
		wkDays, err := s.computedWeek(ctx, t, start, start.AddDate(0, 0, 6))
		if err != nil {
			return nil, 0, nil, 0, err
		}
		weekly = append(weekly, kpi.AggregateWeek(wkDays).PrimePct)
	}
	r4, n4 := kpi.Rolling4WeekPrime(weekly)
	return r7, n7, r4, n4, nil
}
