package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(transportReqs.WithLabelValues("/metrics-test", "200"))
	ObserveRequest("/metrics-test", 200, 10*time.Millisecond)
	ObserveRequest("/metrics-test", 0, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(transportReqs.WithLabelValues("/metrics-test", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(transportReqs.WithLabelValues("/metrics-test", StatusTransportError)))
}

func TestDecodeFailed(t *testing.T) {
	before := testutil.ToFloat64(decodeFailures.WithLabelValues("flag_state"))
	DecodeFailed("flag_state")
	assert.Equal(t, before+1, testutil.ToFloat64(decodeFailures.WithLabelValues("flag_state")))
}
