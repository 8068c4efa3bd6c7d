package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restoboard/restoboard/internal/models"
)

func TestDelta(t *testing.T) {
	d := Delta(fptr(53), fptr(50))
	require.NotNil(t, d)
	assert.InDelta(t, 3.0, *d, 1e-9)

	// incomparable nunca es 0
	assert.Nil(t, Delta(nil, fptr(50)))
	assert.Nil(t, Delta(fptr(53), nil))
	assert.Nil(t, Delta(nil, nil))
}

func TestDeltaTotals(t *testing.T) {
	d := DeltaTotals(35000, 33000, true, true)
	require.NotNil(t, d)
	assert.InDelta(t, 2000.0, *d, 1e-9)

	// either side without data kills the comparison; an empty current week
	// must not read as "down by everything"
	assert.Nil(t, DeltaTotals(35000, 0, true, false))
	assert.Nil(t, DeltaTotals(0, 33000, false, true))
	assert.Nil(t, DeltaTotals(0, 0, false, false))
}

func row(id string, prime *float64) models.StoreComparisonRow {
	return models.StoreComparisonRow{StoreID: id, Week: models.WeeklyAggregate{PrimePct: prime}}
}

func TestRankStoresWorstFirst(t *testing.T) {
	rows := []models.StoreComparisonRow{
		row("a", fptr(51)),
		row("b", fptr(58)),
		row("c", fptr(54)),
	}

	RankStores(rows)

	assert.Equal(t, "b", rows[0].StoreID) // el PRIME más alto es el peor
	assert.Equal(t, "c", rows[1].StoreID)
	assert.Equal(t, "a", rows[2].StoreID)
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Rank, rows[1].Rank, rows[2].Rank})
}

func TestRankStoresNilLast(t *testing.T) {
	rows := []models.StoreComparisonRow{
		row("a", nil),
		row("b", fptr(48)),
		row("c", nil),
		row("d", fptr(60)),
	}

	RankStores(rows)

	assert.Equal(t, "d", rows[0].StoreID)
	assert.Equal(t, "b", rows[1].StoreID)
	// nil prime sorts last, deterministically by id
	assert.Equal(t, "a", rows[2].StoreID)
	assert.Equal(t, "c", rows[3].StoreID)
}

func TestRankStoresTieBreakByID(t *testing.T) {
	rows := []models.StoreComparisonRow{
		row("z", fptr(50)),
		row("m", fptr(50)),
	}

	RankStores(rows)

	assert.Equal(t, "m", rows[0].StoreID)
	assert.Equal(t, "z", rows[1].StoreID)
}
