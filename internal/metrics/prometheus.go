package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restoboard_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "restoboard_http_request_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	WeeklyEvaluations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "restoboard_weekly_evaluations_total",
		Help: "Weekly KPI rollups computed.",
	})

	IssuesFlagged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restoboard_issues_flagged_total",
		Help: "Issues emitted by the flagging engine, by type.",
	}, []string{"type"})

	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "restoboard_report_cache_total",
		Help: "Weekly report cache lookups by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, WeeklyEvaluations, IssuesFlagged, CacheHits)
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler { return promhttp.Handler() }
