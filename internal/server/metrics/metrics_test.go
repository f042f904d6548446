package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.Registration(ResultSuccess)
	m.Registration(ResultSuccess)
	m.Registration(ResultUsernameTaken)
	m.Login(ResultInvalidCredentials)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues(ResultUsernameTaken)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues(ResultInvalidCredentials)))
}

func TestMetrics_Registered(t *testing.T) {
	m := New()
	m.Registration(ResultSuccess)
	m.Login(ResultSuccess)
	m.ObserveHash(10 * time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, f := range families {
		registered[f.GetName()] = true
	}

	for _, name := range []string{
		"gophauth_registrations_total",
		"gophauth_logins_total",
		"gophauth_password_hash_seconds",
	} {
		assert.True(t, registered[name], "metric %q should be registered", name)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Registration(ResultSuccess)
		m.Login(ResultError)
		m.ObserveHash(time.Second)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Login(ResultSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `gophauth_logins_total{result="success"} 1`)
}
