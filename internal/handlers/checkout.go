package handlers

import (
	"log"
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// CheckoutPage, sipariş öncesi sepet özetini döndürür
func (h *Handler) CheckoutPage(c *gin.Context) {
	summary, err := h.checkout.Summary(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"summary": summary})
}

// HandleCheckout, sipariş formunu işler
func (h *Handler) HandleCheckout(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("HandleCheckout - Form bind error: %v", err)
		h.fail(c, &services.Error{Kind: services.KindValidation, Message: "Please fill in all required fields.", Err: err})
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), sessionID(c), form)
	if err != nil {
		h.fail(c, err)
		return
	}

	data := gin.H{
		"success": true,
		"outcome": result.Outcome,
		"order":   result.Order,
		"payment": result.Payment,
		"totals":  result.Totals,
	}
	if result.Outcome == models.CheckoutPaymentRequired {
		data["next"] = "/payment"
	}
	h.respond(c, http.StatusCreated, data)
}

// HandlePayment, kart ödemesini işler
func (h *Handler) HandlePayment(c *gin.Context) {
	var form models.PaymentForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, &services.Error{Kind: services.KindValidation, Message: "Order id is required.", Err: err})
		return
	}

	payment, err := h.checkout.Pay(c.Request.Context(), sessionID(c), form.OrderID, form.CardNumber)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.flash(c, "success", "Payment successful, your order is confirmed.")
	h.respond(c, http.StatusOK, gin.H{"success": true, "payment": payment})
}
