package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restoboard/restoboard/internal/models"
	"github.com/restoboard/restoboard/internal/service"
	"github.com/restoboard/restoboard/internal/store"
)

func testServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	laborMin := 28.0
	require.NoError(t, st.SaveTargets(context.Background(), models.StoreTargets{
		StoreID: "downtown", Name: "Downtown", PrimeMax: 55,
		LaborMin: &laborMin, LaborMax: 32, FoodDisposablesMax: 30, SLPHMin: 65,
	}))
	svc := service.NewDashboard(st, nil, slog.Default())
	srv := httptest.NewServer(NewRouter(slog.Default(), svc, nil))
	t.Cleanup(srv.Close)
	return srv, st
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}

func TestEntryUpsertThenWeeklyReport(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"business_date":"2025-08-18","net_sales":5000,"labor_dollars":1500,"labor_hours":70,"food_dollars":1000,"customers":200}`
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/stores/downtown/entries", strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 204, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/stores/downtown/week?anchor=2025-08-20")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var rep models.WeeklyReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, "2025-08-18", rep.Week.WeekStart)
	assert.Equal(t, 1, rep.Week.DaysReported)
	require.NotNil(t, rep.Week.PrimePct)
	assert.InDelta(t, 50.0, *rep.Week.PrimePct, 1e-9)
	assert.Equal(t, models.StatusOnTrack, rep.PrimeStatus)
}

func TestEntryUpsertUnknownStore(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"business_date":"2025-08-18","net_sales":5000}`
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/stores/nowhere/entries", strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestEntryUpsertBadDate(t *testing.T) {
	srv, _ := testServer(t)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/stores/downtown/entries", strings.NewReader(`{"net_sales":1}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWeeklyReportBadAnchor(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/api/stores/downtown/week?anchor=not-a-date")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)
}

func TestWeeklyReportUnknownStore(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/api/stores/nowhere/week?anchor=2025-08-20")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDailyScoreboardEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"business_date":"2025-08-18","net_sales":5000,"labor_dollars":1500,"labor_hours":70,"food_dollars":1300,"disposables_dollars":250}`
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/stores/downtown/entries", strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 204, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/stores/downtown/day?date=2025-08-18")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var sb models.DailyScoreboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sb))
	assert.Equal(t, models.GradeRed, sb.PrimeGrade)
}

func TestCompareEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/compare/week?anchor=2025-08-20")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var rows []models.StoreComparisonRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "downtown", rows[0].StoreID)
	assert.Nil(t, rows[0].Week.PrimePct)
}
