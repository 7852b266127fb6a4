package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.SessionMutation("cart", "add")
	m.SessionMutation("cart", "add")
	m.Login("password", "success")
	m.Registration("conflict")
	m.OrderCommitted("cod", 45)
	m.OrderCommitted("card", 5)
	m.PaymentRecorded("paid")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cartMutations.WithLabelValues("cart", "add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("password", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("conflict")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.orderAmount))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues("paid")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SessionMutation("cart", "add")
		m.Login("admin", "failure")
		m.Registration("created")
		m.OrderCommitted("cod", 1)
		m.PaymentRecorded("failed")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.OrderCommitted("cod", 10)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_orders_total{payment_method="cod"} 1`)
}
