package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"
)

// OrderLedger, sipariş ve ödeme kayıtlarına erişimi tanımlar
type OrderLedger interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, orderID int) (*models.Order, error)
	RecordPayment(ctx context.Context, payment *models.Payment) error
	GetLatestPayment(ctx context.Context, orderID int) (*models.Payment, error)
}

// CheckoutService, sepeti siparişe dönüştürür ve ödeme adımını yürütür
type CheckoutService struct {
	sessions database.SessionStore
	carts    *CartService
	ledger   OrderLedger
	email    *EmailService
	metrics  *metrics.Metrics
}

// NewCheckoutService, yeni bir CheckoutService örneği oluşturur
func NewCheckoutService(sessions database.SessionStore, carts *CartService, ledger OrderLedger, email *EmailService, m *metrics.Metrics) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		carts:    carts,
		ledger:   ledger,
		email:    email,
		metrics:  m,
	}
}

// Summary, ödeme sayfasında gösterilecek sepet özetini döndürür
func (cs *CheckoutService) Summary(ctx context.Context, sessionID string) (models.CartView, error) {
	return cs.carts.View(ctx, sessionID)
}

// PlaceOrder, sepeti fiyatlandırır, tek bir sipariş satırı yazar ve oturumdaki
// sepeti boşaltır
func (cs *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, form models.OrderForm) (*models.CheckoutResult, error) {
	view, err := cs.carts.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, newError(KindValidation, "Your cart is empty.", nil)
	}

	order := &models.Order{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Address:     form.Address,
		City:        form.City,
		State:       form.State,
		Zipcode:     form.Zipcode,
		TotalAmount: view.Total,
	}
	if err := cs.ledger.CreateOrder(ctx, order); err != nil {
		log.Printf("CheckoutService.PlaceOrder - Error creating order: %v", err)
		return nil, newError(KindInternal, "Could not place your order, please try again.", err)
	}

	method := models.PaymentMethodCard
	outcome := models.CheckoutPaymentRequired
	status := models.PaymentStatusPending
	if form.PaymentMethod == models.PaymentMethodCOD {
		method = models.PaymentMethodCOD
		outcome = models.CheckoutConfirmed
		status = models.PaymentStatusOnDelivery
	}

	err = updateSession(ctx, cs.sessions, sessionID, func(state *models.SessionState) {
		state.Cart = models.NewCart()
		if outcome == models.CheckoutConfirmed {
			state.AddFlash("success", "Your order has been placed.")
			return
		}
		orderID := order.ID
		state.PendingOrderID = &orderID
	})
	if err != nil {
		log.Printf("CheckoutService.PlaceOrder - Order %d committed but cart not cleared: %v", order.ID, err)
		return nil, err
	}

	payment := &models.Payment{OrderID: order.ID, Method: method, Status: status}
	if err := cs.ledger.RecordPayment(ctx, payment); err != nil {
		log.Printf("CheckoutService.PlaceOrder - Error recording payment for order %d: %v", order.ID, err)
		return nil, newError(KindInternal, "Your order was saved but payment could not be started.", err)
	}

	cs.metrics.OrderCommitted(method, order.TotalAmount)
	cs.metrics.PaymentRecorded(status)
	if err := cs.email.SendOrderConfirmation(order, view.Totals); err != nil {
		log.Printf("CheckoutService.PlaceOrder - Error sending confirmation: %v", err)
	}
	log.Printf("CheckoutService.PlaceOrder - Order %d created, total %.2f, method %s", order.ID, order.TotalAmount, method)

	return &models.CheckoutResult{
		Order:   *order,
		Payment: *payment,
		Outcome: outcome,
		Totals:  view.Totals,
	}, nil
}

// Pay, kart ödemesini simüle eder: 4 ile başlayan kart numaraları kabul edilir.
// Yalnızca bu oturumda verilip ödeme bekleyen sipariş ödenebilir. Her deneme
// yeni bir ödeme satırı ekler; sipariş satırı değişmez.
func (cs *CheckoutService) Pay(ctx context.Context, sessionID string, orderID int, cardNumber string) (*models.Payment, error) {
	state, err := cs.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, newError(KindInternal, "Could not load your session.", err)
	}
	if state.PendingOrderID == nil || *state.PendingOrderID != orderID {
		log.Printf("CheckoutService.Pay - Order %d is not pending in session %s", orderID, sessionID)
		return nil, newError(KindNotFound, "Order not found.", nil)
	}

	if _, err := cs.ledger.GetOrderByID(ctx, orderID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, newError(KindNotFound, "Order not found.", err)
		}
		return nil, newError(KindInternal, "Could not load your order.", err)
	}

	latest, err := cs.ledger.GetLatestPayment(ctx, orderID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, newError(KindInternal, "Could not load your payment.", err)
	}
	if latest != nil {
		switch latest.Status {
		case models.PaymentStatusPaid:
			return nil, newError(KindConflict, "This order has already been paid.", nil)
		case models.PaymentStatusOnDelivery:
			return nil, newError(KindConflict, "This order is paid on delivery.", nil)
		}
	}

	cardNumber = strings.ReplaceAll(strings.TrimSpace(cardNumber), " ", "")
	status := models.PaymentStatusFailed
	if strings.HasPrefix(cardNumber, "4") {
		status = models.PaymentStatusPaid
	}

	payment := &models.Payment{OrderID: orderID, Method: models.PaymentMethodCard, Status: status}
	if err := cs.ledger.RecordPayment(ctx, payment); err != nil {
		return nil, newError(KindInternal, "Could not record your payment.", err)
	}
	cs.metrics.PaymentRecorded(status)
	log.Printf("CheckoutService.Pay - Order %d payment %s", orderID, status)

	if status == models.PaymentStatusPaid {
		err := updateSession(ctx, cs.sessions, sessionID, func(state *models.SessionState) {
			state.PendingOrderID = nil
		})
		if err != nil {
			log.Printf("CheckoutService.Pay - Order %d paid but pending id not cleared: %v", orderID, err)
		}
	}

	if status == models.PaymentStatusFailed {
		return payment, newError(KindPaymentDeclined, fmt.Sprintf("Payment for order #%d was declined.", orderID), nil)
	}
	return payment, nil
}
