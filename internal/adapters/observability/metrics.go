package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "hotel_content"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	SupplierRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "supplier_requests_total", Help: "Outbound supplier requests."},
		[]string{"supplier", "endpoint", "status"},
	)
	SupplierLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "supplier_request_duration_seconds",
			Help:    "Outbound supplier request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"supplier", "endpoint"},
	)
	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "supplier_breaker_state", Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)."},
		[]string{"supplier"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del|error
	)
	Normalizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "normalizations_total", Help: "Normalization outcomes per supplier."},
		[]string{"supplier", "outcome"},
	)
	PushOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "push_results_total", Help: "Per-hotel push outcomes."},
		[]string{"supplier", "status"},
	)
	AuditDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "audit_events_dropped_total", Help: "Activity events dropped on a full queue or write error."},
	)
)

// Serve starts a side listener exposing reg on addr. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency,
		SupplierRequests, SupplierLatency, BreakerState,
		CacheEvents, Normalizations, PushOutcomes, AuditDropped,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveSupplier records one outbound call. status 0 means no response.
func ObserveSupplier(supplier, endpoint string, status int, dur time.Duration) {
	SupplierRequests.WithLabelValues(supplier, endpoint, strconv.Itoa(status)).Inc()
	SupplierLatency.WithLabelValues(supplier, endpoint).Observe(dur.Seconds())
}

func ObserveBreaker(supplier string, state int) {
	BreakerState.WithLabelValues(supplier).Set(float64(state))
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveNormalize(supplier string, err error) {
	Normalizations.WithLabelValues(supplier, LabelErr(err)).Inc()
}

func ObservePush(supplier, status string) {
	PushOutcomes.WithLabelValues(supplier, status).Inc()
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
