package metrics

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegistrationCounters(t *testing.T) {
	m := New()
	m.Registration(OutcomeCreated)
	m.Registration(OutcomeCreated)
	m.Registration(OutcomeDuplicate)
	m.TokenFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues(OutcomeDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tokenFailures))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Registration(OutcomeInvalid)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `players_registrations_total{outcome="invalid"} 1`)
}
