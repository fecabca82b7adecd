package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "evaluations_total", Help: "Pipeline evaluations by outcome"},
		[]string{"outcome"},
	)
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "notifications_total", Help: "Reports delivered per channel"},
		[]string{"channel"},
	)
	FetchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "fetch_errors_total", Help: "Upstream chart fetch failures"},
	)
)

func init() {
	prometheus.MustRegister(EvaluationsTotal, NotificationsTotal, FetchErrorsTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
