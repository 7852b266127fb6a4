package handlers

import (
	"storefront/internal/metrics"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// NewRouter, tüm rotaları kayıtlı bir gin engine döndürür
func NewRouter(h *Handler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.GET("/metrics", gin.WrapH(m.Handler()))

	site := r.Group("/")
	site.Use(h.SessionMiddleware())
	{
		// Katalog
		site.GET("/products", h.ProductsPage)
		site.GET("/products/:id", h.ProductDetail)
		for _, tag := range []string{"gadgets", "shoes", "men_clothings", "women_clothings"} {
			site.GET("/"+tag, h.TagPage(tag))
		}
		site.GET("/best-selling", h.BestSellingPage(models.PeriodAllTime))
		site.GET("/last30days", h.BestSellingPage(models.PeriodLast30Days))
		site.GET("/search", h.SearchPage)

		// Sepet
		site.GET("/cart", h.CartPage)
		site.POST("/cart/add/:id", h.AddToCart)
		site.POST("/cart/remove/:id", h.RemoveFromCart)
		site.POST("/cart/update/:id", h.UpdateCartItem)

		// İstek listesi
		site.GET("/wishlist", h.WishlistPage)
		site.POST("/wishlist/add/:id", h.AddToWishlist)
		site.POST("/wishlist/remove/:id", h.RemoveFromWishlist)
		site.POST("/wishlist/move/:id", h.MoveToCart)

		// Kullanıcı
		site.POST("/register", h.HandleRegister)
		site.POST("/login", h.HandleLogin)
		site.GET("/logout", h.UserLogout)
		site.POST("/admin/login", h.AdminLogin)
	}

	checkout := site.Group("/")
	checkout.Use(h.AuthUserMiddleware())
	{
		checkout.GET("/checkout", h.CheckoutPage)
		checkout.POST("/checkout", h.HandleCheckout)
		checkout.POST("/payment", h.HandlePayment)
	}

	admin := site.Group("/admin")
	admin.Use(h.AdminMiddleware())
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/users", h.AdminGetUsers)
		admin.GET("/orders", h.AdminGetOrders)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
	}

	return r
}
