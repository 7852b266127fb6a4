package services

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// ShippingFee, ara toplam sıfırdan büyükse eklenen sabit kargo ücreti
const ShippingFee = 5.0

// centPlaces, tutarların yuvarlandığı ondalık basamak sayısı
const centPlaces = 2

func toCents(d decimal.Decimal) float64 {
	return d.Round(centPlaces).InexactFloat64()
}

// ProductCatalog, katalog okuma işlemlerini tanımlar
type ProductCatalog interface {
	ListProducts() []models.Product
	GetProduct(id int) mo.Option[models.Product]
}

// CartService, oturumdaki sepet işlemlerini yönetir
type CartService struct {
	sessions database.SessionStore
	catalog  ProductCatalog
	metrics  *metrics.Metrics
}

// NewCartService, yeni bir CartService örneği oluşturur
func NewCartService(sessions database.SessionStore, catalog ProductCatalog, m *metrics.Metrics) *CartService {
	return &CartService{
		sessions: sessions,
		catalog:  catalog,
		metrics:  m,
	}
}

// updateSession, oturumu okur, fn ile değiştirir ve geri yazar
func updateSession(ctx context.Context, store database.SessionStore, sessionID string, fn func(*models.SessionState)) error {
	state, err := store.Get(ctx, sessionID)
	if err != nil {
		return newError(KindInternal, "Could not load your session.", err)
	}
	fn(state)
	if err := store.Put(ctx, sessionID, state); err != nil {
		return newError(KindInternal, "Could not save your session.", err)
	}
	return nil
}

// Add, ürünün adedini bir artırır; ürün sepette yoksa 1 adetle ekler
func (cs *CartService) Add(ctx context.Context, sessionID string, productID int) error {
	product, ok := cs.catalog.GetProduct(productID).Get()
	if !ok {
		log.Printf("CartService.Add - Product not found: %d", productID)
		return newError(KindNotFound, "Product not found.", nil)
	}

	var quantity int
	err := updateSession(ctx, cs.sessions, sessionID, func(state *models.SessionState) {
		quantity = state.EnsureCart().Add(models.ProductKey(productID))
		state.AddFlash("success", product.Name+" added to your cart.")
	})
	if err != nil {
		return err
	}
	cs.metrics.SessionMutation("cart", "add")
	log.Printf("CartService.Add - SessionID: %s, ProductID: %d, Quantity: %d", sessionID, productID, quantity)
	return nil
}

// Remove, ürünü sepetten çıkarır; ürün sepette yoksa bir şey yapmaz
func (cs *CartService) Remove(ctx context.Context, sessionID string, productID int) error {
	err := updateSession(ctx, cs.sessions, sessionID, func(state *models.SessionState) {
		state.EnsureCart().Remove(models.ProductKey(productID))
	})
	if err != nil {
		return err
	}
	cs.metrics.SessionMutation("cart", "remove")
	log.Printf("CartService.Remove - SessionID: %s, ProductID: %d", sessionID, productID)
	return nil
}

// SetQuantity, adedi üzerine yazar. quantity <= 0 ürünü siler.
func (cs *CartService) SetQuantity(ctx context.Context, sessionID string, productID, quantity int) error {
	err := updateSession(ctx, cs.sessions, sessionID, func(state *models.SessionState) {
		state.EnsureCart().Set(models.ProductKey(productID), quantity)
	})
	if err != nil {
		return err
	}
	cs.metrics.SessionMutation("cart", "set")
	log.Printf("CartService.SetQuantity - SessionID: %s, ProductID: %d, Quantity: %d", sessionID, productID, quantity)
	return nil
}

// ParseQuantity, formdan gelen adedi çözer; boş ya da geçersizse 1 döner
func ParseQuantity(raw string) int {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return q
}

// Materialize, oturumdaki sepeti katalogla birleştirip fiyatlandırılmış
// satırları ve ara toplamı döndürür
func (cs *CartService) Materialize(ctx context.Context, sessionID string) ([]models.LineItem, float64, error) {
	state, err := cs.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, 0, newError(KindInternal, "Could not load your session.", err)
	}
	items, subtotal := MaterializeCart(cs.catalog, state.Cart)
	return items, subtotal, nil
}

// View, sepet sayfası için satırları ve fiyat özetini döndürür
func (cs *CartService) View(ctx context.Context, sessionID string) (models.CartView, error) {
	items, subtotal, err := cs.Materialize(ctx, sessionID)
	if err != nil {
		return models.CartView{}, err
	}
	return models.CartView{Items: items, Totals: Price(subtotal)}, nil
}

// MaterializeCart, sepeti ürün id sırasıyla katalogla birleştirir. Katalogda
// artık bulunmayan id'ler sessizce atlanır.
func MaterializeCart(catalog ProductCatalog, cart *models.Cart) ([]models.LineItem, float64) {
	quantities := cart.Items()
	entries := lo.FilterMap(lo.Entries(quantities), func(e lo.Entry[string, int], _ int) (lo.Tuple2[int, int], bool) {
		id, err := strconv.Atoi(e.Key)
		return lo.T2(id, e.Value), err == nil
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].A < entries[j].A })

	items := []models.LineItem{}
	subtotal := decimal.Zero
	for _, entry := range entries {
		id, quantity := entry.Unpack()
		product, ok := catalog.GetProduct(id).Get()
		if !ok {
			continue
		}
		line := decimal.NewFromFloat(product.DiscountPrice).Mul(decimal.NewFromInt(int64(quantity)))
		subtotal = subtotal.Add(line)
		items = append(items, models.LineItem{
			Product:  product,
			Quantity: quantity,
			Subtotal: toCents(line),
		})
	}
	return items, toCents(subtotal)
}

// Price, sepet ve ödeme ekranlarının ortak fiyat kuralı: ara toplam sıfırdan
// büyükse sabit kargo eklenir. Tutarlar kuruşa yuvarlanır.
func Price(subtotal float64) models.Totals {
	sub := decimal.NewFromFloat(subtotal).Round(centPlaces)
	shipping := decimal.Zero
	if sub.IsPositive() {
		shipping = decimal.NewFromFloat(ShippingFee)
	}
	return models.Totals{
		Subtotal: toCents(sub),
		Shipping: toCents(shipping),
		Total:    toCents(sub.Add(shipping)),
	}
}
