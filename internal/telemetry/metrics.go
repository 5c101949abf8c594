package telemetry

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	transportReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffc_transport_requests_total",
			Help: "Total requests sent to the evaluation backend",
		},
		[]string{"endpoint", "status"},
	)
	transportDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffc_transport_request_duration_seconds",
			Help:    "Evaluation backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffc_decode_failures_total",
			Help: "Backend responses that could not be decoded",
		},
		[]string{"payload"},
	)
)

// StatusTransportError labels requests that never produced an HTTP status.
const StatusTransportError = "error"

// Register registers the collectors with reg. Already registered collectors
// are not an error, so client constructors call it every time.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{transportReqs, transportDur, decodeFailures} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}

// ObserveRequest records one backend round trip. status is the HTTP status
// code, or 0 when the request failed before a response arrived.
func ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	label := StatusTransportError
	if status > 0 {
		label = strconv.Itoa(status)
	}
	transportReqs.WithLabelValues(endpoint, label).Inc()
	transportDur.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// DecodeFailed counts a response payload that failed to decode.
func DecodeFailed(payload string) {
	decodeFailures.WithLabelValues(payload).Inc()
}
