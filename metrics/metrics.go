package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all the available internal metrics
type Metrics struct {
	// Registry holds the metrics of one submission run
	Registry *prometheus.Registry

	// APIRequestsTotal is the number of HTTP requests made to the ingestion API,
	// the token endpoint and blob storage.
	//
	// Labels: method (request HTTP method), status_code (response HTTP status
	// code, "error" if no response was received)
	APIRequestsTotal *prometheus.CounterVec

	// APIRequestDurationsMilliseconds is the number of milliseconds HTTP requests take.
	//
	// Labels: method (request HTTP method)
	APIRequestDurationsMilliseconds *prometheus.HistogramVec

	// SubmissionPollsTotal is the number of submission status requests made
	// while waiting for a commit to be processed
	SubmissionPollsTotal prometheus.Counter

	// SubmissionRunDurationsMilliseconds is the number of milliseconds a
	// submission run takes.
	//
	// Labels: status (terminal submission status, "error" if the run failed)
	SubmissionRunDurationsMilliseconds *prometheus.HistogramVec
}

// NewMetrics creates a Metrics struct with all the Prometheus metrics recorders
// initialized and registered in a new registry
func NewMetrics() Metrics {
	metrics := Metrics{
		Registry: prometheus.NewRegistry(),
		APIRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "store_submit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests made",
		}, []string{"method", "status_code"}),
		APIRequestDurationsMilliseconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "store_submit",
			Subsystem: "http",
			Name:      "request_durations_milliseconds",
			Help:      "Time, in milliseconds, HTTP requests took",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"method"}),
		SubmissionPollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store_submit",
			Subsystem: "submission",
			Name:      "polls_total",
			Help:      "Total number of submission status requests",
		}),
		SubmissionRunDurationsMilliseconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "store_submit",
			Subsystem: "submission",
			Name:      "run_durations_milliseconds",
			Help:      "Duration, in milliseconds, of submission runs",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 8),
		}, []string{"status"}),
	}

	metrics.Registry.MustRegister(metrics.APIRequestsTotal)
	metrics.Registry.MustRegister(metrics.APIRequestDurationsMilliseconds)
	metrics.Registry.MustRegister(metrics.SubmissionPollsTotal)
	metrics.Registry.MustRegister(metrics.SubmissionRunDurationsMilliseconds)

	return metrics
}

// StartTimer starts a Timer for the provided Prometheus observer. Calling .Finish()
// on the returned timer will records the time elapsed in milliseconds.
func (m Metrics) StartTimer(observer prometheus.Observer) Timer {
	return Timer{
		startTime: time.Now(),
		observer:  observer,
	}
}

// WriteToTextfile writes the current metric values to path in the Prometheus
// text format, ex., for the node exporter textfile collector
func (m Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
