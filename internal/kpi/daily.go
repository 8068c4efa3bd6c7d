package kpi

import "github.com/restoboard/restoboard/internal/models"

// DeriveDaily turns one raw record into its computed form. Pure: no error
// cases, no side effects. Absent numerics are already 0 on the raw record;
// every division is guarded, returning nil (not 0, not NaN) when the
// denominator is not positive. primeMax is only used for the variance field.
func DeriveDaily(raw models.RawDailyRecord, primeMax float64) models.ComputedDailyRecord {
	c := models.ComputedDailyRecord{RawDailyRecord: raw}
	c.PrimeDollars = raw.LaborDollars + raw.FoodDollars + raw.DisposablesDollars

	c.PrimePct = pct(c.PrimeDollars, raw.NetSales)
	c.LaborPct = pct(raw.LaborDollars, raw.NetSales)
	c.FoodPct = pct(raw.FoodDollars, raw.NetSales)
	c.DisposablesPct = pct(raw.DisposablesDollars, raw.NetSales)
	c.FoodDisposablesPct = pct(raw.FoodDollars+raw.DisposablesDollars, raw.NetSales)
	c.SLPH = slph(raw.NetSales, raw.LaborHours)
	c.AOV = div(raw.NetSales, raw.Customers)
	c.VariancePrime = Variance(c.PrimePct, primeMax)
	return c
}

// Variance is value minus ceiling, nil when the value is undefined.
func Variance(pct *float64, ceiling float64) *float64 {
	if pct == nil {
		return nil
	}
	v := *pct - ceiling
	return &v
}

// pct devuelve num/den*100, nil si no hay denominador.
func pct(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := num / den * 100
	return &v
}

func div(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := num / den
	return &v
}

// slph needs sales besides hours: a closed day with logged hours has no
// productivity to grade, igual que los ratios de costo.
func slph(netSales, laborHours float64) *float64 {
	if netSales <= 0 {
		return nil
	}
	return div(netSales, laborHours)
}
