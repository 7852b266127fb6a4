package models

import "time"

// Order, sipariş defterindeki değişmez kayıt
type Order struct {
	ID          int       `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Zipcode     string    `json:"zipcode"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderForm, ödeme sayfasındaki sipariş formu
type OrderForm struct {
	FirstName     string `form:"first_name" binding:"required"`
	LastName      string `form:"last_name" binding:"required"`
	Email         string `form:"email" binding:"required,email"`
	Address       string `form:"address" binding:"required"`
	City          string `form:"city" binding:"required"`
	State         string `form:"state" binding:"required"`
	Zipcode       string `form:"zipcode" binding:"required"`
	PaymentMethod string `form:"payment_method"`
}

// PaymentMethodCOD, kapıda ödeme seçeneği
const PaymentMethodCOD = "cod"

// PaymentMethodCard, kartla ödeme seçeneği
const PaymentMethodCard = "card"

// Ödeme durumları
const (
	PaymentStatusOnDelivery = "pay_on_delivery"
	PaymentStatusPending    = "pending"
	PaymentStatusPaid       = "paid"
	PaymentStatusFailed     = "failed"
)

// Payment, bir siparişe ait ödeme denemesi. Siparişten ayrı ve yalnızca
// eklenerek tutulur; en son kayıt güncel durumdur.
type Payment struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentForm, kart ödeme formu
type PaymentForm struct {
	OrderID    int    `form:"order_id" binding:"required"`
	CardNumber string `form:"card_number"`
}

// Checkout sonuçları
const (
	CheckoutConfirmed       = "confirmed"
	CheckoutPaymentRequired = "payment_required"
)

// CheckoutResult, sipariş kaydından sonra akışın nereye gideceğini söyler
type CheckoutResult struct {
	Order   Order   `json:"order"`
	Payment Payment `json:"payment"`
	Outcome string  `json:"outcome"`
	Totals  Totals  `json:"totals"`
}
