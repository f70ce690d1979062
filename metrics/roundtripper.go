package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRoundTripper wraps an http.RoundTripper and records metrics about every
// request it performs
type MetricsRoundTripper struct {
	// Transport which will actually perform requests, http.DefaultTransport if nil
	Transport http.RoundTripper

	// Metrics requests are recorded in
	Metrics Metrics
}

// RoundTrip implements http.RoundTripper
func (t MetricsRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	durationTimer := t.Metrics.StartTimer(t.Metrics.APIRequestDurationsMilliseconds.With(
		prometheus.Labels{"method": r.Method}))

	resp, err := transport.RoundTrip(r)

	durationTimer.Finish()

	statusCode := "error"
	if err == nil {
		statusCode = fmt.Sprintf("%d", resp.StatusCode)
	}

	t.Metrics.APIRequestsTotal.With(prometheus.Labels{
		"method":      r.Method,
		"status_code": statusCode,
	}).Inc()

	return resp, err
}

// InstrumentClient returns a copy of client whose transport records metrics.
// A nil client is treated as http.DefaultClient.
func (m Metrics) InstrumentClient(client *http.Client) *http.Client {
	instrumented := http.Client{}
	if client != nil {
		instrumented = *client
	}

	instrumented.Transport = MetricsRoundTripper{
		Transport: instrumented.Transport,
		Metrics:   m,
	}

	return &instrumented
}
