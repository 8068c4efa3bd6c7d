package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restoboard/restoboard/internal/models"
)

func computedWeek(t *testing.T, raws []models.RawDailyRecord) []models.ComputedDailyRecord {
	t.Helper()
	out := make([]models.ComputedDailyRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, DeriveDaily(r, 55))
	}
	return out
}

func TestAggregateWeekSumsThenDerives(t *testing.T) {
	// 7 días iguales: net 5000, labor 1000, food 1400, disp 250
	monday := date(2025, 8, 18)
	var raws []models.RawDailyRecord
	for i := 0; i < 7; i++ {
		r := rawDay(monday.AddDate(0, 0, i), 5000, 1000, 80, 1400, 250)
		r.Customers = 250
		raws = append(raws, r)
	}

	agg := AggregateWeek(computedWeek(t, raws))

	assert.Equal(t, 7, agg.DaysReported)
	assert.Equal(t, "2025-08-18", agg.WeekStart)
	assert.Equal(t, "2025-08-24", agg.WeekEnd)
	assert.Equal(t, 35000.0, agg.NetSales)
	assert.Equal(t, 18550.0, agg.PrimeDollars)
	require.NotNil(t, agg.PrimePct)
	assert.InDelta(t, 18550.0/35000.0*100, *agg.PrimePct, 1e-9)
	require.NotNil(t, agg.SLPH)
	assert.InDelta(t, 35000.0/560.0, *agg.SLPH, 1e-9)
	require.NotNil(t, agg.AOV)
	assert.InDelta(t, 20.0, *agg.AOV, 1e-9)
}

func TestAggregateWeekZeroSalesDayDoesNotSkew(t *testing.T) {
	// 6 días al 50% de PRIME y un día cerrado (todo en 0): la semana queda
	// exactamente en 50%, el día cerrado no aporta ni numerador ni denominador
	monday := date(2025, 8, 18)
	var raws []models.RawDailyRecord
	for i := 0; i < 6; i++ {
		raws = append(raws, rawDay(monday.AddDate(0, 0, i), 5000, 1000, 80, 1200, 300))
	}
	raws = append(raws, rawDay(monday.AddDate(0, 0, 6), 0, 0, 0, 0, 0))

	agg := AggregateWeek(computedWeek(t, raws))

	require.NotNil(t, agg.PrimePct)
	assert.InDelta(t, 50.0, *agg.PrimePct, 1e-9)
}

func TestAggregateWeekEmpty(t *testing.T) {
	agg := AggregateWeek(nil)

	assert.Equal(t, 0, agg.DaysReported)
	assert.Equal(t, 0.0, agg.NetSales)
	assert.Nil(t, agg.PrimePct)
	assert.Nil(t, agg.LaborPct)
	assert.Nil(t, agg.SLPH)
	assert.Nil(t, agg.AOV)
	assert.Nil(t, agg.BumpTimeMinutes)
}

func TestAggregateWeekAllZeroSales(t *testing.T) {
	raws := []models.RawDailyRecord{
		rawDay(date(2025, 8, 18), 0, 100, 10, 50, 5),
		rawDay(date(2025, 8, 19), 0, 100, 10, 50, 5),
	}
	agg := AggregateWeek(computedWeek(t, raws))

	assert.Equal(t, 300.0, agg.PrimeDollars)
	assert.Nil(t, agg.PrimePct) // sin ventas no hay ratio semanal
	assert.Nil(t, agg.SLPH)     // aunque se sumaron horas
}

func TestAggregateWeekBumpTimeCustomerWeighted(t *testing.T) {
	r1 := rawDay(date(2025, 8, 18), 5000, 1000, 80, 1400, 250)
	r1.Customers = 100
	r1.BumpTimeMinutes = fptr(4)
	r2 := rawDay(date(2025, 8, 19), 5000, 1000, 80, 1400, 250)
	r2.Customers = 300
	r2.BumpTimeMinutes = fptr(8)
	r3 := rawDay(date(2025, 8, 20), 5000, 1000, 80, 1400, 250)
	r3.Customers = 200 // day without bump time stays out of the weighting

	agg := AggregateWeek(computedWeek(t, []models.RawDailyRecord{r1, r2, r3}))

	require.NotNil(t, agg.BumpTimeMinutes)
	assert.InDelta(t, (4*100+8*300)/400.0, *agg.BumpTimeMinutes, 1e-9)
}

func TestAggregateWeekBumpTimeFallbackUnweighted(t *testing.T) {
	// nadie reportó clientes: media simple de los días con bump time
	r1 := rawDay(date(2025, 8, 18), 5000, 1000, 80, 1400, 250)
	r1.BumpTimeMinutes = fptr(4)
	r2 := rawDay(date(2025, 8, 19), 5000, 1000, 80, 1400, 250)
	r2.BumpTimeMinutes = fptr(8)

	agg := AggregateWeek(computedWeek(t, []models.RawDailyRecord{r1, r2}))

	require.NotNil(t, agg.BumpTimeMinutes)
	assert.InDelta(t, 6.0, *agg.BumpTimeMinutes, 1e-9)
}

func TestAggregateWeekNoBumpTime(t *testing.T) {
	agg := AggregateWeek(computedWeek(t, []models.RawDailyRecord{
		rawDay(date(2025, 8, 18), 5000, 1000, 80, 1400, 250),
	}))
	assert.Nil(t, agg.BumpTimeMinutes)
}

func TestAggregateWeekScheduledHours(t *testing.T) {
	r1 := rawDay(date(2025, 8, 18), 5000, 1000, 80, 1400, 250)
	r1.ScheduledHours = fptr(85)
	r2 := rawDay(date(2025, 8, 19), 5000, 1000, 75, 1400, 250)
	r2.ScheduledHours = fptr(80)

	agg := AggregateWeek(computedWeek(t, []models.RawDailyRecord{r1, r2}))

	assert.Equal(t, 165.0, agg.ScheduledHours)
	assert.Equal(t, 155.0, agg.LaborHours)
}

func TestAggregateWeekIdempotent(t *testing.T) {
	days := computedWeek(t, []models.RawDailyRecord{
		rawDay(date(2025, 8, 18), 5000, 1000, 80, 1400, 250),
		rawDay(date(2025, 8, 19), 4200, 900, 70, 1100, 200),
	})
	assert.Equal(t, AggregateWeek(days), AggregateWeek(days))
}
