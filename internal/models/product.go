package models

// Product, katalogdaki salt okunur ürünü temsil eder
type Product struct {
	ID            int            `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Description   string         `json:"description,omitempty" yaml:"description"`
	Price         float64        `json:"price" yaml:"price"`
	DiscountPrice float64        `json:"discount_price" yaml:"discount_price"`
	Image         string         `json:"image,omitempty" yaml:"image"`
	Tags          []string       `json:"tags" yaml:"tags"`
	Sold          map[string]int `json:"sold" yaml:"sold"`
}

// HasTag, ürünün verilen etikete sahip olup olmadığını döndürür
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Satış dönemleri
const (
	PeriodAllTime    = "all_time"
	PeriodLast30Days = "last_30_days"
)
