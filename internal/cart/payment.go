package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	"supermarket-pos/internal/domain"
)

// PaymentState is the cash-drawer sub-state of a register. It is reset
// whenever the register returns to a new-sale state.
type PaymentState struct {
	Method   domain.PaymentMethod
	Tendered decimal.Decimal
}

func newPaymentState() PaymentState {
	return PaymentState{Method: domain.PaymentCash}
}

// SelectMethod switches the payment method and clears any tendered amount so
// cash sub-state never leaks across methods.
func (p *PaymentState) SelectMethod(m domain.PaymentMethod) {
	p.Method = m
	p.Tendered = decimal.Zero
}

// SetTendered records the cash offered by the customer. The amount arrives as
// free text from the terminal; anything unparseable or negative counts as
// zero rather than failing the flow.
func (p *PaymentState) SetTendered(raw string) {
	p.Tendered = parseTendered(raw)
}

func parseTendered(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Change is tendered minus total. Negative change means the tender does not
// cover the sale and blocks checkout.
func (p PaymentState) Change(total decimal.Decimal) decimal.Decimal {
	return p.Tendered.Sub(total)
}

// Covers reports whether the selected method settles the given total: card
// and transfer always do, cash only when the tender is sufficient.
func (p PaymentState) Covers(total decimal.Decimal) bool {
	if p.Method != domain.PaymentCash {
		return true
	}
	return p.Tendered.GreaterThanOrEqual(total)
}
