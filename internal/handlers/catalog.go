package handlers

import (
	"log"
	"net/http"

	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

const bestSellingLimit = 8

// ProductsPage, tüm ürünleri listeler
func (h *Handler) ProductsPage(c *gin.Context) {
	h.respond(c, http.StatusOK, gin.H{"products": h.catalog.ListProducts()})
}

// ProductDetail, tek bir ürünü döndürür. Bilinmeyen ürün için ürün listesine
// hata mesajıyla yönlendirir.
func (h *Handler) ProductDetail(c *gin.Context) {
	id, ok := idParam(c)
	if ok {
		if product, found := h.catalog.GetProduct(id).Get(); found {
			h.respond(c, http.StatusOK, gin.H{"product": product})
			return
		}
	}
	log.Printf("ProductDetail - Product not found: %s", c.Param("id"))
	h.flash(c, "error", "Product not found.")
	c.Redirect(http.StatusSeeOther, "/products")
}

// TagPage, verilen etiketteki ürünleri listeleyen bir handler döndürür
func (h *Handler) TagPage(tag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respond(c, http.StatusOK, gin.H{"tag": tag, "products": h.catalog.ByTag(tag)})
	}
}

// BestSellingPage, verilen dönemin en çok satanlarını listeler
func (h *Handler) BestSellingPage(period string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respond(c, http.StatusOK, gin.H{"period": period, "products": h.catalog.BestSelling(period, bestSellingLimit)})
	}
}

// SearchPage, ürün adı ve etiketlerinde arama yapar
func (h *Handler) SearchPage(c *gin.Context) {
	q := c.Query("q")
	h.respond(c, http.StatusOK, gin.H{"query": q, "products": h.catalog.Search(q)})
}

func productIDs(products []models.Product) []int {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
