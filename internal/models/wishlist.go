package models

import "encoding/json"

// Wishlist, oturumdaki ürün id kümesidir. Oturum deposu kümeyi doğrudan
// tutamadığı için sıralı ve tekrarsız bir dizi olarak serileştirilir.
type Wishlist struct {
	ids []string
}

// NewWishlist, verilen id'lerden tekrarsız bir istek listesi oluşturur
func NewWishlist(ids ...string) *Wishlist {
	w := &Wishlist{}
	for _, id := range ids {
		w.Add(id)
	}
	return w
}

// Add, id'yi kümeye ekler; ikinci ekleme etkisizdir
func (w *Wishlist) Add(productID string) bool {
	if w.Has(productID) {
		return false
	}
	w.ids = append(w.ids, productID)
	return true
}

// Remove, id'yi kümeden çıkarır; yoksa bir şey yapmaz
func (w *Wishlist) Remove(productID string) bool {
	for i, id := range w.ids {
		if id == productID {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Has, id'nin kümede olup olmadığını döndürür
func (w *Wishlist) Has(productID string) bool {
	if w == nil {
		return false
	}
	for _, id := range w.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// IDs, eklenme sırasına göre id'lerin kopyası
func (w *Wishlist) IDs() []string {
	if w == nil {
		return []string{}
	}
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

// Len, kümedeki id sayısı
func (w *Wishlist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.ids)
}

// IsEmpty, küme boşsa true döner
func (w *Wishlist) IsEmpty() bool {
	return w.Len() == 0
}

// Clone, bağımsız bir kopya oluşturur
func (w *Wishlist) Clone() *Wishlist {
	return &Wishlist{ids: w.IDs()}
}

func (w Wishlist) MarshalJSON() ([]byte, error) {
	if w.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(w.ids)
}

func (w *Wishlist) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.ids = nil
	for _, id := range raw {
		w.Add(id)
	}
	return nil
}
