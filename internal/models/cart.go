package models

import (
	"encoding/json"
	"strconv"
)

// Cart, oturumdaki ürün id -> adet eşlemesidir. Adedi sıfır veya negatif olan
// bir kayıt hiçbir zaman saklanmaz.
type Cart struct {
	items map[string]int
}

// NewCart, boş bir sepet oluşturur
func NewCart() *Cart {
	return &Cart{items: map[string]int{}}
}

// ProductKey, ürün id'sini oturumda kullanılan string anahtara çevirir
func ProductKey(productID int) string {
	return strconv.Itoa(productID)
}

// Add, ürünün adedini bir artırır
func (c *Cart) Add(productID string) int {
	if c.items == nil {
		c.items = map[string]int{}
	}
	c.items[productID]++
	return c.items[productID]
}

// Remove, ürünü sepetten çıkarır; ürün yoksa bir şey yapmaz
func (c *Cart) Remove(productID string) {
	delete(c.items, productID)
}

// Set, adedi üzerine yazar; quantity <= 0 ise ürünü siler
func (c *Cart) Set(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if c.items == nil {
		c.items = map[string]int{}
	}
	c.items[productID] = quantity
}

// Quantity, ürünün sepetteki adedini döndürür (yoksa 0)
func (c *Cart) Quantity(productID string) int {
	if c == nil {
		return 0
	}
	return c.items[productID]
}

// Len, sepetteki farklı ürün sayısını döndürür
func (c *Cart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// IsEmpty, sepette hiç ürün olmadığında true döner
func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// TotalItems, sepetteki toplam adet
func (c *Cart) TotalItems() int {
	total := 0
	if c == nil {
		return total
	}
	for _, q := range c.items {
		total += q
	}
	return total
}

// Items, sepetin bir kopyasını döndürür
func (c *Cart) Items() map[string]int {
	out := make(map[string]int, c.Len())
	if c == nil {
		return out
	}
	for id, q := range c.items {
		out[id] = q
	}
	return out
}

// Clone, sepetin bağımsız bir kopyasını oluşturur
func (c *Cart) Clone() *Cart {
	return &Cart{items: c.Items()}
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.items)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	raw := map[string]int{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.items = make(map[string]int, len(raw))
	for id, q := range raw {
		if q > 0 {
			c.items[id] = q
		}
	}
	return nil
}

// LineItem, katalogla birleştirilmiş ve fiyatlandırılmış sepet satırıdır
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Totals, sepet ve ödeme ekranlarının ortak fiyat özeti
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// CartView, sepet sayfasında gösterilen görünüm
type CartView struct {
	Items []LineItem `json:"items"`
	Totals
}
