package models

// Flash, kullanıcıya bir sonraki yanıtta gösterilecek mesaj
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// SessionState, tek bir ziyaretçinin oturumunda tutulan durum.
// Cart nil ise oturumda "cart" anahtarı yoktur; boş ama nil olmayan Cart
// açıkça boşaltılmış sepettir.
type SessionState struct {
	Cart     *Cart     `json:"cart,omitempty"`
	Wishlist *Wishlist `json:"wishlist,omitempty"`
	UserID   *int      `json:"user_id,omitempty"`
	Username string    `json:"username,omitempty"`
	IsAdmin  bool      `json:"is_admin,omitempty"`
	Flashes  []Flash   `json:"_flashes,omitempty"`

	// PendingOrderID, bu oturumda verilen ve kart ödemesi bekleyen sipariş
	PendingOrderID *int `json:"pending_order_id,omitempty"`
}

// NewSessionState, boş bir oturum durumu döndürür
func NewSessionState() *SessionState {
	return &SessionState{}
}

// IsAuthenticated, oturumda bir kullanıcı ya da admin kimliği varsa true döner
func (s *SessionState) IsAuthenticated() bool {
	return s.UserID != nil || s.IsAdmin
}

// EnsureCart, sepet yoksa boş bir sepet oluşturur
func (s *SessionState) EnsureCart() *Cart {
	if s.Cart == nil {
		s.Cart = NewCart()
	}
	return s.Cart
}

// EnsureWishlist, istek listesi yoksa boş bir liste oluşturur
func (s *SessionState) EnsureWishlist() *Wishlist {
	if s.Wishlist == nil {
		s.Wishlist = NewWishlist()
	}
	return s.Wishlist
}

// Clear, oturumdaki tüm anahtarları siler
func (s *SessionState) Clear() {
	*s = SessionState{}
}

// AddFlash, oturuma bir flash mesajı ekler
func (s *SessionState) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes, biriken flash mesajlarını döndürür ve temizler
func (s *SessionState) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	if flashes == nil {
		return []Flash{}
	}
	return flashes
}
