package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale is settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// ParsePaymentMethod validates a method coming from the terminal UI.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	case PaymentTransfer:
		return PaymentTransfer, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// GeneralCustomer is the sentinel label for walk-in sales without a name.
const GeneralCustomer = "Cliente General"

// Customer is the optional buyer attached to a sale.
type Customer struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SaleLine is one line of a submitted sale, snapshotted at checkout time.
type SaleLine struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleRecord is the outbound checkout payload. It is constructed once per
// completed checkout and never stored locally.
type SaleRecord struct {
	Customer Customer        `json:"customer"`
	Lines    []SaleLine      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Method   PaymentMethod   `json:"method"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
}
