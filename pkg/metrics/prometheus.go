package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetches     *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastPrice   *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
	tracked     map[string]struct{}
}

// New creates a Prometheus metrics recorder registered on reg.
// A nil reg falls back to the default registerer. Only symbols listed in
// tracked get a last price gauge.
func New(reg prometheus.Registerer, tracked ...string) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	set := make(map[string]struct{}, len(tracked))
	for _, s := range tracked {
		set[s] = struct{}{}
	}

	return &Recorder{
		tracked: set,
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdash_fetches_total",
				Help: "Market data fetches by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockdash_last_price",
				Help: "Last observed close for a symbol",
			},
			[]string{"symbol"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockdash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records the outcome of one provider fetch.
func (r *Recorder) RecordFetch(outcome string) {
	r.fetches.WithLabelValues(outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a tracked symbol and ignores
// the rest.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	if _, ok := r.tracked[symbol]; !ok {
		return
	}
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
