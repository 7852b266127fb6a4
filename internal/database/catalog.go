package database

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"storefront/internal/models"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// catalogFile, katalog YAML dosyasının yapısı
type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

// Catalog, süreç başlarken yüklenen ve sonra değişmeyen ürün listesi.
// Yazma olmadığı için kilitsiz paylaşılır.
type Catalog struct {
	products []models.Product
	byID     map[int]int
}

// LoadCatalog, verilen YAML dosyasından kataloğu yükler. path boşsa gömülü
// varsayılan katalog kullanılır.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalogYAML
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = raw
	}
	return ParseCatalog(data)
}

// ParseCatalog, YAML verisinden kataloğu oluşturur ve doğrular
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(file.Products)
}

// NewCatalog, ürün listesinden doğrulanmış bir katalog oluşturur
func NewCatalog(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		if p.Price < 0 || p.DiscountPrice < 0 {
			return nil, fmt.Errorf("catalog: product %d has a negative price", p.ID)
		}
		if p.DiscountPrice > p.Price {
			return nil, fmt.Errorf("catalog: product %d discount price %.2f exceeds price %.2f", p.ID, p.DiscountPrice, p.Price)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.Sold == nil {
			p.Sold = map[string]int{}
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// ListProducts, katalog sırasıyla tüm ürünleri döndürür
func (c *Catalog) ListProducts() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// GetProduct, id'ye göre ürünü döndürür
func (c *Catalog) GetProduct(id int) mo.Option[models.Product] {
	idx, ok := c.byID[id]
	if !ok {
		return mo.None[models.Product]()
	}
	return mo.Some(c.products[idx])
}

// ByTag, verilen etiketi taşıyan ürünler
func (c *Catalog) ByTag(tag string) []models.Product {
	return lo.Filter(c.products, func(p models.Product, _ int) bool {
		return p.HasTag(tag)
	})
}

// BestSelling, verilen dönemde en çok satan ürünler. limit <= 0 ise hepsi döner.
func (c *Catalog) BestSelling(period string, limit int) []models.Product {
	products := lo.Filter(c.products, func(p models.Product, _ int) bool {
		return p.Sold[period] > 0
	})
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Sold[period] != products[j].Sold[period] {
			return products[i].Sold[period] > products[j].Sold[period]
		}
		return products[i].ID < products[j].ID
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products
}

// Search, isim ve etiketlerde büyük/küçük harf duyarsız arama yapar
func (c *Catalog) Search(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Product{}
	}
	return lo.Filter(c.products, func(p models.Product, _ int) bool {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
		return lo.ContainsBy(p.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), q)
		})
	})
}
