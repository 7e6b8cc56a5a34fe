package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"supermarket-pos/internal/domain"
)

// storeProduct mirrors the store API's product representation.
type storeProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Code        string          `json:"codigo"`
	Price       decimal.Decimal `json:"precio"`
	MinStock    int             `json:"stock_minimo"`
	Stock       int             `json:"stock_actual"`
	ExpiresAt   *string         `json:"fecha_vencimiento"`
	Category    string          `json:"categoria"`
	ImageURL    *string         `json:"imagen_url"`
}

type productListResponse struct {
	Products   []storeProduct `json:"productos"`
	Total      int            `json:"total"`
	Pages      int            `json:"pages"`
	Page       int            `json:"current_page"`
	Categories []string       `json:"categorias"`
}

type productResponse struct {
	Product storeProduct `json:"producto"`
}

// ProductFilter selects a slice of the upstream catalog.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

// FetchProducts lists catalog products. Callable idempotently at any time.
func (c *Client) FetchProducts(ctx context.Context, token string, f ProductFilter) (*domain.ProductPage, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("categoria", f.Category)
	}
	if f.Search != "" {
		q.Set("busqueda", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}

	path := "/api/productos"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var resp productListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}

	page := &domain.ProductPage{
		Products:   make([]domain.Product, 0, len(resp.Products)),
		Total:      resp.Total,
		Pages:      resp.Pages,
		Page:       resp.Page,
		Categories: resp.Categories,
	}
	for _, sp := range resp.Products {
		page.Products = append(page.Products, toDomainProduct(sp))
	}
	return page, nil
}

// CreateProduct creates a catalog product through the store's admin API.
func (c *Client) CreateProduct(ctx context.Context, token string, in domain.ProductInput) (*domain.Product, error) {
	var resp productResponse
	if err := c.doForm(ctx, http.MethodPost, "/api/productos/", token, productForm(in), &resp); err != nil {
		return nil, err
	}
	p := toDomainProduct(resp.Product)
	return &p, nil
}

// UpdateProduct updates a catalog product.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, in domain.ProductInput) (*domain.Product, error) {
	var resp productResponse
	path := fmt.Sprintf("/api/productos/%d", id)
	if err := c.doForm(ctx, http.MethodPut, path, token, productForm(in), &resp); err != nil {
		return nil, err
	}
	p := toDomainProduct(resp.Product)
	return &p, nil
}

// DeleteProduct removes a catalog product.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/productos/%d", id), token, nil, nil)
}

func productForm(in domain.ProductInput) url.Values {
	form := url.Values{}
	form.Set("nombre", in.Name)
	form.Set("descripcion", in.Description)
	form.Set("precio", in.Price.String())
	form.Set("stock_minimo", strconv.Itoa(in.MinStock))
	form.Set("stock_actual", strconv.Itoa(in.Stock))
	form.Set("categoria", in.Category)
	if in.ExpiresAt != "" {
		form.Set("fecha_vencimiento", in.ExpiresAt)
	}
	return form
}

func toDomainProduct(sp storeProduct) domain.Product {
	p := domain.Product{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		Code:        sp.Code,
		Category:    sp.Category,
		Price:       sp.Price,
		Stock:       sp.Stock,
		MinStock:    sp.MinStock,
	}
	if sp.ExpiresAt != nil {
		p.ExpiresAt = *sp.ExpiresAt
	}
	if sp.ImageURL != nil {
		p.ImageURL = *sp.ImageURL
	}
	return p
}
