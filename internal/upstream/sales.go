package upstream

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"supermarket-pos/internal/domain"
)

// storeSale mirrors the store API's sale payload.
type storeSale struct {
	Customer string          `json:"cliente"`
	Phone    string          `json:"telefono"`
	Products []storeSaleLine `json:"productos"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"impuestos"`
	Total    decimal.Decimal `json:"total"`
	Method   string          `json:"metodoPago"`
	Tendered decimal.Decimal `json:"montoRecibido"`
	Change   decimal.Decimal `json:"cambio"`
}

type storeSaleLine struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

var wireMethods = map[domain.PaymentMethod]string{
	domain.PaymentCash:     "efectivo",
	domain.PaymentCard:     "tarjeta",
	domain.PaymentTransfer: "transferencia",
}

// SubmitSale records a completed sale upstream. It is called at most once per
// checkout attempt; retries are user-initiated.
func (c *Client) SubmitSale(ctx context.Context, token string, rec domain.SaleRecord) error {
	lines := make([]storeSaleLine, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		lines = append(lines, storeSaleLine{
			ID:       l.ProductID,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			Subtotal: l.Subtotal,
		})
	}

	payload := storeSale{
		Customer: rec.Customer.Name,
		Phone:    rec.Customer.Phone,
		Products: lines,
		Subtotal: rec.Subtotal,
		Tax:      rec.Tax,
		Total:    rec.Total,
		Method:   wireMethods[rec.Method],
		Tendered: rec.Tendered,
		Change:   rec.Change,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/ventas", token, payload, nil)
}
