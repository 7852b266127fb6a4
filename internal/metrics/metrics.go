// Package metrics, mağaza olaylarını prometheus sayaçlarına yazar.
// Nil bir *Metrics üzerinde tüm metotlar sessizce hiçbir şey yapmaz.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics, uygulamanın sayaçlarını tutar
type Metrics struct {
	registry      *prometheus.Registry
	cartMutations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	orders        *prometheus.CounterVec
	orderAmount   prometheus.Counter
	payments      *prometheus.CounterVec
}

// New, kendi registry'si ile yeni bir Metrics oluşturur
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_mutations_total",
			Help:      "Cart and wishlist mutations by container and operation.",
		}, []string{"container", "op"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by authenticator and result.",
		}, []string{"authenticator", "result"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by result.",
		}, []string{"result"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Orders written to the ledger by payment method.",
		}, []string{"payment_method"}),
		orderAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_amount_total",
			Help:      "Sum of total_amount over all committed orders.",
		}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payment rows recorded by status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		m.cartMutations,
		m.logins,
		m.registrations,
		m.orders,
		m.orderAmount,
		m.payments,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler, /metrics için http.Handler döndürür
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionMutation(container, op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(container, op).Inc()
}

func (m *Metrics) Login(authenticator, result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(authenticator, result).Inc()
}

func (m *Metrics) Registration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) OrderCommitted(paymentMethod string, amount float64) {
	if m == nil {
		return
	}
	m.orders.WithLabelValues(paymentMethod).Inc()
	m.orderAmount.Add(amount)
}

func (m *Metrics) PaymentRecorded(status string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(status).Inc()
}
