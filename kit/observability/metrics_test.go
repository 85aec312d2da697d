package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := NewMetrics("web")
	m.OrdersCreatedAdd(2)
	m.OrderTransitioned("confirmed")
	m.PaymentProcessed("credit_card", "successful")
	m.PaymentProcessed("credit_card", "successful")
	m.GatewayCall("credit_card", "successful", 120*time.Millisecond)
	m.HTTPRequest("/orders", "201", 3*time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(m.OrdersCreated))
	require.Equal(t, float64(1), testutil.ToFloat64(m.OrderTransitions.WithLabelValues("confirmed")))
	require.Equal(t, float64(2), testutil.ToFloat64(m.PaymentsProcessed.WithLabelValues("credit_card", "successful")))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "orderpay_web_payments_processed_total")

	// a second instance owns a separate registry
	require.NotPanics(t, func() { NewMetrics("web") })
}
