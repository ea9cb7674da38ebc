package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the pad.
type Metrics struct {
	// Upstream fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: source={weather,flightplan}, outcome={success,network,decode,empty}
	FetchDuration *prometheus.HistogramVec // labels: source={weather,flightplan}
	FetchInFlight prometheus.Gauge

	// Reducer loop metrics.
	EventsApplied *prometheus.CounterVec // labels: event
	QueueDepth    prometheus.Gauge
	LoopRunning   prometheus.Gauge

	// Record publishing metrics.
	RecordsPublished *prometheus.CounterVec // labels: record_type={weather,flightplan}
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.FetchInFlight,
		m.EventsApplied,
		m.QueueDepth,
		m.LoopRunning,
		m.RecordsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flypad",
			Name:      "fetch_requests_total",
			Help:      "Upstream fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flypad",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream request duration in seconds, including body decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		FetchInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flypad",
			Name:      "fetch_in_flight",
			Help:      "Commands currently being executed by the orchestrator.",
		}),
		EventsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flypad",
			Name:      "events_applied_total",
			Help:      "Events applied by the reducer, by event type.",
		}, []string{"event"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flypad",
			Name:      "event_queue_depth",
			Help:      "Events waiting in the inbound queue.",
		}),
		LoopRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flypad",
			Name:      "loop_running",
			Help:      "1 when the reducer loop is active, 0 when shut down.",
		}),
		RecordsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flypad",
			Name:      "records_published_total",
			Help:      "Normalized records written to the record topic.",
		}, []string{"record_type"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flypad",
			Name:      "publish_errors_total",
			Help:      "Failed record publishes.",
		}),
	}
}
