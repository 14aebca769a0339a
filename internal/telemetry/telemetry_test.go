package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemmaandrew/anneal-image/internal/anneal"
	"github.com/lemmaandrew/anneal-image/internal/logging"
)

func TestMetricsObserver(t *testing.T) {
	m := NewMetrics()

	var got []float64
	obs := m.Observer(func(_ int, temperature, cost float64) {
		got = append(got, temperature, cost)
	})

	obs(1, 999.0, 12345.0)
	obs(2, 998.0, 12000.0)

	assert.Equal(t, []float64{999, 12345, 998, 12000}, got, "wrapped observer must still run")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.iterations))
	assert.Equal(t, 998.0, testutil.ToFloat64(m.temperature))
	assert.Equal(t, 12000.0, testutil.ToFloat64(m.currentCost))
}

func TestMetricsObserverNilNext(t *testing.T) {
	m := NewMetrics()
	obs := m.Observer(nil)
	assert.NotPanics(t, func() { obs(1, 10, 20) })
}

func TestMetricsRecordResult(t *testing.T) {
	m := NewMetrics()
	m.RecordResult(&anneal.Result{Accepted: 17, FinalCost: 55})
	assert.Equal(t, 17.0, testutil.ToFloat64(m.accepted))
	assert.Equal(t, 55.0, testutil.ToFloat64(m.currentCost))
}

func TestServerRoutes(t *testing.T) {
	logger := logging.New(logging.ErrorLevel, io.Discard)
	srv := NewServer(":0", NewMetrics(), logger)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	body, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "anneal_iterations_total")
}
