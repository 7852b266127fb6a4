package handlers

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/database"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminDashboard, tablo sayılarını döndürür
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	counts := gin.H{}
	for _, table := range []string{"users", "orders", "payments"} {
		n, err := h.db.CountRows(ctx, table)
		if err != nil {
			h.fail(c, err)
			return
		}
		counts[table] = n
	}
	h.respond(c, http.StatusOK, gin.H{"counts": counts})
}

// AdminGetUsers, tüm kullanıcıları listeler
func (h *Handler) AdminGetUsers(c *gin.Context) {
	users, err := h.db.GetAllUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"users": users})
}

// AdminGetOrders, sipariş defterini en yeniden eskiye listeler
func (h *Handler) AdminGetOrders(c *gin.Context) {
	orders, err := h.db.GetAllOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"orders": orders})
}

// AdminDeleteUser, kullanıcıyı siler
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, errInvalidID)
		return
	}
	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.fail(c, &services.Error{Kind: services.KindNotFound, Message: "User not found.", Err: err})
			return
		}
		h.fail(c, err)
		return
	}
	log.Printf("AdminDeleteUser - User %d deleted", id)
	h.respond(c, http.StatusOK, gin.H{"success": true})
}
