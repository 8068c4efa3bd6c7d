package kpi

import (
	"time"

	"github.com/restoboard/restoboard/internal/models"
)

func fptr(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testTargets is a band-labor store used across the suite.
func testTargets() models.StoreTargets {
	return models.StoreTargets{
		StoreID:            "downtown",
		Name:               "Downtown",
		PrimeMax:           55,
		LaborMin:           fptr(28),
		LaborMax:           32,
		FoodDisposablesMax: 30,
		SLPHMin:            65,
	}
}

// ceilingTargets has no labor floor.
func ceilingTargets() models.StoreTargets {
	t := testTargets()
	t.StoreID = "airport"
	t.Name = "Airport"
	t.LaborMin = nil
	return t
}

func rawDay(d time.Time, netSales, labor, hours, food, disp float64) models.RawDailyRecord {
	return models.RawDailyRecord{
		StoreID:            "downtown",
		BusinessDate:       d,
		NetSales:           netSales,
		LaborDollars:       labor,
		LaborHours:         hours,
		FoodDollars:        food,
		DisposablesDollars: disp,
	}
}
