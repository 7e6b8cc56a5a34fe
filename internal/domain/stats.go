package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockProduct identifies a product below the upstream low-stock threshold.
type LowStockProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// Stats is the dashboard snapshot aggregated from the upstream stats endpoints.
type Stats struct {
	SalesToday    decimal.Decimal   `json:"salesToday"`
	ProductCount  int               `json:"productCount"`
	LowStockCount int               `json:"lowStockCount"`
	LowStock      []LowStockProduct `json:"lowStock,omitempty"`
	ClientCount   int               `json:"clientCount"`
	FetchedAt     time.Time         `json:"fetchedAt"`
}
