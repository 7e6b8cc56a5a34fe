package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"supermarket-pos/internal/domain"
)

type salesTodayResponse struct {
	Total decimal.Decimal `json:"total"`
	Date  string          `json:"fecha"`
}

type countResponse struct {
	Total int `json:"total"`
}

type lowStockResponse struct {
	Total     int `json:"total"`
	Threshold int `json:"umbral"`
	Products  []struct {
		ID    int64  `json:"id"`
		Name  string `json:"nombre"`
		Stock int    `json:"stock"`
	} `json:"productos"`
}

// FetchStats aggregates the store's dashboard endpoints into one snapshot.
func (c *Client) FetchStats(ctx context.Context, token string) (*domain.Stats, error) {
	var sales salesTodayResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/estadisticas/ventas-hoy", token, nil, &sales); err != nil {
		return nil, err
	}
	var products countResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/estadisticas/productos", token, nil, &products); err != nil {
		return nil, err
	}
	var low lowStockResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/estadisticas/stock-bajo", token, nil, &low); err != nil {
		return nil, err
	}
	var clients countResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/estadisticas/clientes", token, nil, &clients); err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		SalesToday:    sales.Total,
		ProductCount:  products.Total,
		LowStockCount: low.Total,
		ClientCount:   clients.Total,
		FetchedAt:     time.Now().UTC(),
	}
	for _, p := range low.Products {
		stats.LowStock = append(stats.LowStock, domain.LowStockProduct{ID: p.ID, Name: p.Name, Stock: p.Stock})
	}
	return stats, nil
}
