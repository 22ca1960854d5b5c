package domain

import "github.com/shopspring/decimal"

type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

// Product is immutable once fetched; whichever view fetched it owns it.
type Product struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	ImageURL      string              `json:"image_url"`
	CategoryID    int64               `json:"category_id"`
	CategoryName  string              `json:"category_name"`
	Gender        Gender              `json:"gender"`
	StockQuantity int                 `json:"stock_quantity"`
	Sizes         []string            `json:"sizes,omitempty"`
	SizeChart     map[string][]string `json:"size_chart,omitempty"` // values aligned positionally with Sizes
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
