package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveResolve(t *testing.T) {
	m := New()
	m.ObserveResolve("javascript", ResultOK, 3*time.Millisecond)
	m.ObserveResolve("javascript", ResultOK, time.Millisecond)
	m.ObserveResolve("javascript", ResultSyntaxError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues("javascript", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("javascript", ResultSyntaxError)))
}

func TestMetrics_AddElements(t *testing.T) {
	m := New()
	m.AddElements(map[string]int{"IfStatement": 2, "ReturnStatement": 1}, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.elements.WithLabelValues("IfStatement")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.placeholders))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveResolve("javascript", ResultOK, time.Millisecond)
		m.AddElements(map[string]int{"IfStatement": 1}, 1)
		m.ObserveRequest("/health", "200")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest("/code-analyzer/api/v1/resolve", "200")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `code_analyzer_http_requests_total{route="/code-analyzer/api/v1/resolve",status="200"} 1`)
}
