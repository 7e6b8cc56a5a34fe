package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"supermarket-pos/internal/domain"
)

// Phase is the register checkout flow state.
type Phase string

const (
	// PhaseBuilding is the default add-items state.
	PhaseBuilding Phase = "building"
	// PhaseAwaitingPayment is entered on an explicit proceed-to-payment action.
	PhaseAwaitingPayment Phase = "awaiting_payment"
	// PhaseSubmitting covers the single in-flight sale submission.
	PhaseSubmitting Phase = "submitting"
	// PhaseComplete shows the finished sale until the register resets.
	PhaseComplete Phase = "complete"
	// PhaseFailed holds a rejected submission; any further input returns the
	// register to PhaseAwaitingPayment with the draft intact.
	PhaseFailed Phase = "failed"
)

// ErrPhase rejects an action that is not valid in the register's current phase.
var ErrPhase = errors.New("action not allowed in current phase")

// Register is one terminal's sale in progress: the cart, the optional
// customer, the payment sub-state and the checkout flow phase.
type Register struct {
	cart     *Cart
	customer domain.Customer
	payment  PaymentState
	phase    Phase
}

func NewRegister() *Register {
	return &Register{
		cart:    NewCart(),
		payment: newPaymentState(),
		phase:   PhaseBuilding,
	}
}

func (r *Register) Phase() Phase { return r.phase }

func (r *Register) Cart() *Cart { return r.cart }

func (r *Register) Customer() domain.Customer { return r.customer }

func (r *Register) Payment() PaymentState { return r.payment }

// recover drops a failed register back to awaiting-payment. Every user input
// funnels through here so the failure notice clears on the next action.
func (r *Register) recover() {
	if r.phase == PhaseFailed {
		r.phase = PhaseAwaitingPayment
	}
}

// AddProduct adds one unit to the cart. Only valid while building the sale.
func (r *Register) AddProduct(p domain.Product) error {
	r.recover()
	if r.phase != PhaseBuilding {
		return ErrPhase
	}
	r.cart.Add(p)
	return nil
}

func (r *Register) SetQuantity(productID int64, quantity int) error {
	r.recover()
	if r.phase != PhaseBuilding {
		return ErrPhase
	}
	return r.cart.SetQuantity(productID, quantity)
}

func (r *Register) RemoveProduct(productID int64) error {
	r.recover()
	if r.phase != PhaseBuilding {
		return ErrPhase
	}
	r.cart.Remove(productID)
	return nil
}

func (r *Register) SetCustomer(name, phone string) {
	r.recover()
	r.customer = domain.Customer{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
}

// BeginPayment moves a non-empty register to the payment step.
func (r *Register) BeginPayment() error {
	r.recover()
	if r.phase != PhaseBuilding {
		return ErrPhase
	}
	if r.cart.IsEmpty() {
		return domain.ErrEmptyCart
	}
	r.phase = PhaseAwaitingPayment
	return nil
}

// CancelPayment abandons the payment step and returns to building. The cart
// and entered payment details survive; only a completed sale resets them.
func (r *Register) CancelPayment() error {
	r.recover()
	if r.phase != PhaseAwaitingPayment {
		return ErrPhase
	}
	r.phase = PhaseBuilding
	return nil
}

func (r *Register) SelectPaymentMethod(m domain.PaymentMethod) error {
	r.recover()
	if r.phase != PhaseAwaitingPayment {
		return ErrPhase
	}
	r.payment.SelectMethod(m)
	return nil
}

func (r *Register) SetTendered(raw string) error {
	r.recover()
	if r.phase != PhaseAwaitingPayment {
		return ErrPhase
	}
	r.payment.SetTendered(raw)
	return nil
}

// CanCheckout is the sole gating predicate before submission: at least one
// line item, and for cash a tender covering the total. Always recomputed.
func (r *Register) CanCheckout() bool {
	if r.cart.IsEmpty() {
		return false
	}
	return r.payment.Covers(r.cart.Totals().Total)
}

// BeginSubmit transitions to submitting and returns the sale snapshot to send
// upstream. The caller must later settle the outcome with CompleteSubmit or
// FailSubmit.
func (r *Register) BeginSubmit() (domain.SaleRecord, error) {
	r.recover()
	if r.phase != PhaseAwaitingPayment {
		return domain.SaleRecord{}, ErrPhase
	}
	if r.cart.IsEmpty() {
		return domain.SaleRecord{}, domain.ErrEmptyCart
	}
	if !r.payment.Covers(r.cart.Totals().Total) {
		return domain.SaleRecord{}, domain.ErrInsufficientTender
	}
	r.phase = PhaseSubmitting
	return r.buildSaleRecord(), nil
}

func (r *Register) CompleteSubmit() error {
	if r.phase != PhaseSubmitting {
		return ErrPhase
	}
	r.phase = PhaseComplete
	return nil
}

func (r *Register) FailSubmit() error {
	if r.phase != PhaseSubmitting {
		return ErrPhase
	}
	r.phase = PhaseFailed
	return nil
}

// Reset returns the register to a fresh sale: empty cart, no customer, clean
// payment sub-state.
func (r *Register) Reset() {
	r.cart.Clear()
	r.customer = domain.Customer{}
	r.payment = newPaymentState()
	r.phase = PhaseBuilding
}

// buildSaleRecord snapshots the sale. Walk-in customers without a name get
// the general-customer label; non-cash methods record the total as tendered
// with zero change.
func (r *Register) buildSaleRecord() domain.SaleRecord {
	totals := r.cart.Totals()

	customer := r.customer
	if customer.Name == "" {
		customer.Name = domain.GeneralCustomer
	}

	items := r.cart.Items()
	lines := make([]domain.SaleLine, 0, len(items))
	for _, li := range items {
		lines = append(lines, domain.SaleLine{
			ProductID: li.Product.ID,
			Quantity:  li.Quantity,
			UnitPrice: li.Product.Price,
			Subtotal:  li.Subtotal(),
		})
	}

	tendered := r.payment.Tendered
	change := r.payment.Change(totals.Total)
	if r.payment.Method != domain.PaymentCash {
		tendered = totals.Total
		change = decimal.Zero
	}

	return domain.SaleRecord{
		Customer: customer,
		Lines:    lines,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
		Method:   r.payment.Method,
		Tendered: tendered,
		Change:   change,
	}
}
