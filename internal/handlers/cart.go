package handlers

import (
	"net/http"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// CartPage, sepetteki ürünleri ve fiyat özetini döndürür
func (h *Handler) CartPage(c *gin.Context) {
	view, err := h.carts.View(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"cart": view})
}

func (h *Handler) cartMutation(c *gin.Context, mutate func(productID int) error) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, errInvalidID)
		return
	}
	if err := mutate(id); err != nil {
		h.fail(c, err)
		return
	}
	view, err := h.carts.View(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"success": true, "cart": view})
}

// AddToCart, ürünün sepetteki adedini bir artırır
func (h *Handler) AddToCart(c *gin.Context) {
	h.cartMutation(c, func(id int) error {
		return h.carts.Add(c.Request.Context(), sessionID(c), id)
	})
}

// RemoveFromCart, ürünü sepetten çıkarır
func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.cartMutation(c, func(id int) error {
		return h.carts.Remove(c.Request.Context(), sessionID(c), id)
	})
}

// UpdateCartItem, adedi formdaki quantity değeriyle değiştirir
func (h *Handler) UpdateCartItem(c *gin.Context) {
	quantity := services.ParseQuantity(c.PostForm("quantity"))
	h.cartMutation(c, func(id int) error {
		return h.carts.SetQuantity(c.Request.Context(), sessionID(c), id, quantity)
	})
}

// WishlistPage, istek listesindeki ürünleri döndürür
func (h *Handler) WishlistPage(c *gin.Context) {
	products, err := h.wishlists.Materialize(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"wishlist": products})
}

func (h *Handler) wishlistMutation(c *gin.Context, mutate func(productID int) error) {
	id, ok := idParam(c)
	if !ok {
		h.fail(c, errInvalidID)
		return
	}
	if err := mutate(id); err != nil {
		h.fail(c, err)
		return
	}
	products, err := h.wishlists.Materialize(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, http.StatusOK, gin.H{"success": true, "wishlist": productIDs(products)})
}

// AddToWishlist, ürünü istek listesine ekler
func (h *Handler) AddToWishlist(c *gin.Context) {
	h.wishlistMutation(c, func(id int) error {
		return h.wishlists.Add(c.Request.Context(), sessionID(c), id)
	})
}

// RemoveFromWishlist, ürünü istek listesinden çıkarır
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	h.wishlistMutation(c, func(id int) error {
		return h.wishlists.Remove(c.Request.Context(), sessionID(c), id)
	})
}

// MoveToCart, ürünü istek listesinden sepete taşır
func (h *Handler) MoveToCart(c *gin.Context) {
	h.wishlistMutation(c, func(id int) error {
		return h.wishlists.MoveToCart(c.Request.Context(), sessionID(c), id)
	})
}
