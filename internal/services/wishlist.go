package services

import (
	"context"
	"log"
	"strconv"

	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"
)

// WishlistService, oturumdaki istek listesini yönetir
type WishlistService struct {
	sessions database.SessionStore
	catalog  ProductCatalog
	carts    *CartService
	metrics  *metrics.Metrics
}

// NewWishlistService, yeni bir WishlistService örneği oluşturur
func NewWishlistService(sessions database.SessionStore, catalog ProductCatalog, carts *CartService, m *metrics.Metrics) *WishlistService {
	return &WishlistService{
		sessions: sessions,
		catalog:  catalog,
		carts:    carts,
		metrics:  m,
	}
}

// Add, ürünü istek listesine ekler. Aynı ürünü ikinci kez eklemek etkisizdir.
func (ws *WishlistService) Add(ctx context.Context, sessionID string, productID int) error {
	product, ok := ws.catalog.GetProduct(productID).Get()
	if !ok {
		return newError(KindNotFound, "Product not found.", nil)
	}
	err := updateSession(ctx, ws.sessions, sessionID, func(state *models.SessionState) {
		if state.EnsureWishlist().Add(models.ProductKey(productID)) {
			state.AddFlash("success", product.Name+" added to your wishlist.")
		} else {
			state.AddFlash("info", product.Name+" is already in your wishlist.")
		}
	})
	if err != nil {
		return err
	}
	ws.metrics.SessionMutation("wishlist", "add")
	log.Printf("WishlistService.Add - SessionID: %s, ProductID: %d", sessionID, productID)
	return nil
}

// Remove, ürünü istek listesinden çıkarır; yoksa bir şey yapmaz
func (ws *WishlistService) Remove(ctx context.Context, sessionID string, productID int) error {
	err := updateSession(ctx, ws.sessions, sessionID, func(state *models.SessionState) {
		state.EnsureWishlist().Remove(models.ProductKey(productID))
	})
	if err != nil {
		return err
	}
	ws.metrics.SessionMutation("wishlist", "remove")
	return nil
}

// MoveToCart, ürünü istek listesinden çıkarıp sepete bir adet ekler
func (ws *WishlistService) MoveToCart(ctx context.Context, sessionID string, productID int) error {
	if ws.catalog.GetProduct(productID).IsAbsent() {
		return newError(KindNotFound, "Product not found.", nil)
	}
	if err := ws.Remove(ctx, sessionID, productID); err != nil {
		return err
	}
	return ws.carts.Add(ctx, sessionID, productID)
}

// Materialize, istek listesindeki ürünleri liste sırasıyla döndürür
func (ws *WishlistService) Materialize(ctx context.Context, sessionID string) ([]models.Product, error) {
	state, err := ws.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, newError(KindInternal, "Could not load your session.", err)
	}
	return MaterializeWishlist(ws.catalog, state.Wishlist), nil
}

// MaterializeWishlist, katalogda bulunmayan id'leri atlayarak ürünleri döndürür
func MaterializeWishlist(catalog ProductCatalog, wishlist *models.Wishlist) []models.Product {
	products := []models.Product{}
	for _, key := range wishlist.IDs() {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if product, ok := catalog.GetProduct(id).Get(); ok {
			products = append(products, product)
		}
	}
	return products
}
