// Package cart implements the POS cart engine: an in-memory line-item
// collection with derived totals, a payment sub-state, and the register
// checkout flow. The engine performs no I/O; callers drive it with discrete
// user actions and submit the resulting sale record themselves.
package cart

import (
	"github.com/shopspring/decimal"

	"supermarket-pos/internal/domain"
)

// TaxRate is the fixed VAT rate applied to every sale.
var TaxRate = decimal.NewFromFloat(0.21)

// LineItem is one product entry in the cart.
type LineItem struct {
	Product  domain.Product
	Quantity int
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Totals are the cart aggregates, recomputed from the line items on demand.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Cart is an insertion-ordered collection of line items keyed by product ID.
type Cart struct {
	order []int64
	items map[int64]*LineItem
}

func NewCart() *Cart {
	return &Cart{items: make(map[int64]*LineItem)}
}

// Add puts one unit of the product in the cart. The passed product carries
// the stock from the latest catalog fetch, and the line's snapshot is updated
// so quantity limits always track current stock. Adding past stock is a
// silent no-op, as is adding a product with zero stock; the register UI
// treats a tap that cannot count as nothing happening.
func (c *Cart) Add(p domain.Product) {
	if li, ok := c.items[p.ID]; ok {
		li.Product.Stock = p.Stock
		if li.Quantity+1 > p.Stock {
			return
		}
		li.Quantity++
		return
	}
	if p.Stock <= 0 {
		return
	}
	c.items[p.ID] = &LineItem{Product: p, Quantity: 1}
	c.order = append(c.order, p.ID)
}

// SetQuantity sets a line's quantity. Zero removes the line. A quantity above
// the line's stock snapshot rejects the call and leaves the line unchanged;
// callers with access to the live catalog should RefreshStock first.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	li, ok := c.items[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	if quantity > li.Product.Stock {
		return domain.ErrInsufficientStock
	}
	li.Quantity = quantity
	return nil
}

// RefreshStock updates a line's stock snapshot after a catalog refetch.
// Unknown IDs are ignored.
func (c *Cart) RefreshStock(productID int64, stock int) {
	if li, ok := c.items[productID]; ok {
		li.Product.Stock = stock
	}
}

// Remove deletes the line item if present. Removing an absent ID is a no-op.
func (c *Cart) Remove(productID int64) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Items returns the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

func (c *Cart) Len() int { return len(c.order) }

func (c *Cart) IsEmpty() bool { return len(c.order) == 0 }

// Totals recomputes the aggregates from the current line items. Tax is the
// subtotal at the fixed rate, rounded to cents; the total is subtotal plus
// rounded tax so the three figures always reconcile.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, id := range c.order {
		subtotal = subtotal.Add(c.items[id].Subtotal())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.order = nil
	c.items = make(map[int64]*LineItem)
}
