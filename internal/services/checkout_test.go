package services

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutService_PlaceOrderCashOnDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.carts.Add(ctx, testSession, 1))
	require.NoError(t, f.carts.Add(ctx, testSession, 1))
	require.NoError(t, f.carts.Add(ctx, testSession, 2))

	result, err := f.checkout.PlaceOrder(ctx, testSession, validOrderForm(models.PaymentMethodCOD))
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutConfirmed, result.Outcome)
	assert.InDelta(t, 28.5, result.Order.TotalAmount, 1e-9)
	assert.Equal(t, models.PaymentStatusOnDelivery, result.Payment.Status)

	orders, err := f.db.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ada", orders[0].FirstName)
	assert.Equal(t, "10001", orders[0].Zipcode)
	assert.InDelta(t, 28.5, orders[0].TotalAmount, 1e-9)
	assert.WithinDuration(t, time.Now(), orders[0].CreatedAt, time.Minute)

	state := f.state(t)
	require.NotNil(t, state.Cart, "the cart key is kept as an explicit empty container")
	assert.True(t, state.Cart.IsEmpty())
}

func TestCheckoutService_PlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.checkout.PlaceOrder(ctx, testSession, validOrderForm(models.PaymentMethodCOD))
	assert.ErrorIs(t, err, ErrValidation)

	n, err := f.db.CountRows(ctx, "orders")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCheckoutService_StaleItemsAreNotCharged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := models.NewSessionState()
	state.EnsureCart().Set("3", 1)
	state.EnsureCart().Set("500", 4)
	require.NoError(t, f.sessions.Put(ctx, testSession, state))

	result, err := f.checkout.PlaceOrder(ctx, testSession, validOrderForm(models.PaymentMethodCOD))
	require.NoError(t, err)
	assert.InDelta(t, 30.0, result.Order.TotalAmount, 1e-9)
}

func TestCheckoutService_CardPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.carts.Add(ctx, testSession, 2))

	result, err := f.checkout.PlaceOrder(ctx, testSession, validOrderForm(models.PaymentMethodCard))
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutPaymentRequired, result.Outcome)
	assert.Equal(t, models.PaymentStatusPending, result.Payment.Status)
	orderID := result.Order.ID
	require.NotNil(t, f.state(t).PendingOrderID)
	assert.Equal(t, orderID, *f.state(t).PendingOrderID)

	payment, err := f.checkout.Pay(ctx, testSession, orderID, "5111 1111")
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)

	_, err = f.checkout.Pay(ctx, testSession, orderID, "")
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	payment, err = f.checkout.Pay(ctx, testSession, orderID, "4111 1111 1111 1111")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)

	latest, err := f.db.GetLatestPayment(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, latest.Status)
	assert.Nil(t, f.state(t).PendingOrderID, "a paid order is no longer pending")

	_, err = f.checkout.Pay(ctx, testSession, orderID, "4000")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := f.db.CountRows(ctx, "payments")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	order, err := f.db.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, result.Order.TotalAmount, order.TotalAmount)
}

func TestCheckoutService_PayUnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.Pay(context.Background(), testSession, 12345, "4111")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutService_PayOtherSessionsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.carts.Add(ctx, testSession, 1))
	result, err := f.checkout.PlaceOrder(ctx, testSession, validOrderForm(models.PaymentMethodCard))
	require.NoError(t, err)

	_, err = f.checkout.Pay(ctx, "someone-else", result.Order.ID, "4111")
	assert.ErrorIs(t, err, ErrNotFound)

	latest, err := f.db.GetLatestPayment(ctx, result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, latest.Status)
}

func TestCheckoutService_PayCashOnDeliveryOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.carts.Add(ctx, testSession, 1))
	result, err := f.checkout.PlaceOrder(ctx, testSession, validOrderForm(models.PaymentMethodCOD))
	require.NoError(t, err)

	assert.Nil(t, f.state(t).PendingOrderID)
	_, err = f.checkout.Pay(ctx, testSession, result.Order.ID, "4111")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutService_Summary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.checkout.Summary(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	require.NoError(t, f.carts.Add(ctx, testSession, 3))
	view, err = f.checkout.Summary(ctx, testSession)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, view.Total, 1e-9)
}

func TestCheckoutService_Metrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.carts.Add(ctx, testSession, 1))
	_, err := f.checkout.PlaceOrder(ctx, testSession, validOrderForm(models.PaymentMethodCOD))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	f.metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_orders_total{payment_method="cod"} 1`)
	assert.Contains(t, string(body), `storefront_payments_total{status="pay_on_delivery"} 1`)
}
