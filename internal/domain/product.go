package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry owned by the upstream store API. The POS never
// mutates products; stock reflects the last catalog fetch.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Code        string          `json:"code,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	ExpiresAt   string          `json:"expiresAt,omitempty"`
}

// ProductPage is one page of the upstream catalog listing.
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Pages      int       `json:"pages"`
	Page       int       `json:"page"`
	Categories []string  `json:"categories,omitempty"`
}

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Category    string          `json:"category"`
	ExpiresAt   string          `json:"expiresAt"`
}
