package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/restoboard/restoboard/internal/export"
	"github.com/restoboard/restoboard/internal/kpi"
	"github.com/restoboard/restoboard/internal/metrics"
	"github.com/restoboard/restoboard/internal/models"
	"github.com/restoboard/restoboard/internal/service"
	"github.com/restoboard/restoboard/internal/store"
	"github.com/restoboard/restoboard/internal/utils"
)

func NewRouter(log *slog.Logger, svc *service.Dashboard, digest *export.Digest) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", metrics.Handler())

	mux.Put("/api/stores/{store}/entries", func(w http.ResponseWriter, r *http.Request) {
		storeID := chi.URLParam(r, "store")
		var p entryPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad body", 400)
			return
		}
		rec, err := p.toRecord(storeID)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if err := svc.UpsertEntry(r.Context(), rec); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(204)
	})

	mux.Get("/api/stores/{store}/week", func(w http.ResponseWriter, r *http.Request) {
		anchor, err := dateParam(r, "anchor", time.Now())
		if err != nil {
			http.Error(w, "bad anchor date (YYYY-MM-DD)", 400)
			return
		}
		rep, err := svc.WeeklyReport(r.Context(), chi.URLParam(r, "store"), anchor)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, rep)
	})

	mux.Get("/api/stores/{store}/day", func(w http.ResponseWriter, r *http.Request) {
		date, err := dateParam(r, "date", time.Now())
		if err != nil {
			http.Error(w, "bad date (YYYY-MM-DD)", 400)
			return
		}
		sb, err := svc.DailyScoreboard(r.Context(), chi.URLParam(r, "store"), date)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, sb)
	})

	mux.Get("/api/stores/{store}/trend", func(w http.ResponseWriter, r *http.Request) {
		through, err := dateParam(r, "through", time.Now())
		if err != nil {
			http.Error(w, "bad through date (YYYY-MM-DD)", 400)
			return
		}
		tr, err := svc.Trend(r.Context(), chi.URLParam(r, "store"), through)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, tr)
	})

	mux.Get("/api/compare/week", func(w http.ResponseWriter, r *http.Request) {
		anchor, err := dateParam(r, "anchor", time.Now())
		if err != nil {
			http.Error(w, "bad anchor date (YYYY-MM-DD)", 400)
			return
		}
		rows, err := svc.CompareWeek(r.Context(), anchor)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, rows)
	})

	mux.Post("/api/digest/run", func(w http.ResponseWriter, r *http.Request) {
		anchor, err := dateParam(r, "anchor", time.Now())
		if err != nil {
			http.Error(w, "bad anchor date (YYYY-MM-DD)", 400)
			return
		}
		n, err := digest.SendWeekly(r.Context(), anchor)
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		writeJSON(w, map[string]any{"stores": n})
	})

	return mux
}

// entryPayload is the manual-entry body; the business date travels as
// YYYY-MM-DD, everything absent defaults to 0.
type entryPayload struct {
	BusinessDate       string   `json:"business_date"`
	NetSales           float64  `json:"net_sales"`
	LaborDollars       float64  `json:"labor_dollars"`
	LaborHours         float64  `json:"labor_hours"`
	FoodDollars        float64  `json:"food_dollars"`
	DisposablesDollars float64  `json:"disposables_dollars"`
	VoidsDollars       float64  `json:"voids_dollars"`
	WasteDollars       float64  `json:"waste_dollars"`
	Customers          float64  `json:"customers"`
	ScheduledHours     *float64 `json:"scheduled_hours"`
	BumpTimeMinutes    *float64 `json:"bump_time_minutes"`
}

func (p entryPayload) toRecord(storeID string) (models.RawDailyRecord, error) {
	d, err := time.Parse(kpi.DateFormat, p.BusinessDate)
	if err != nil {
		return models.RawDailyRecord{}, errors.New("business_date required (YYYY-MM-DD)")
	}
	return models.RawDailyRecord{
		StoreID:            storeID,
		BusinessDate:       d,
		NetSales:           p.NetSales,
		LaborDollars:       p.LaborDollars,
		LaborHours:         p.LaborHours,
		FoodDollars:        p.FoodDollars,
		DisposablesDollars: p.DisposablesDollars,
		VoidsDollars:       p.VoidsDollars,
		WasteDollars:       p.WasteDollars,
		Customers:          p.Customers,
		ScheduledHours:     p.ScheduledHours,
		BumpTimeMinutes:    p.BumpTimeMinutes,
	}, nil
}

func dateParam(r *http.Request, key string, def time.Time) (time.Time, error) {
	q := r.URL.Query().Get(key)
	if q == "" {
		return def, nil
	}
	return time.Parse(kpi.DateFormat, q)
}

func writeErr(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrUnknownStore) {
		http.Error(w, "unknown store", 404)
		return
	}
	http.Error(w, err.Error(), 500)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
