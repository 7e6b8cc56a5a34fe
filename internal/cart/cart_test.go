package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-pos/internal/domain"
)

func product(id int64, price string, stock int) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  "product",
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func TestAddCreatesAndIncrementsLine(t *testing.T) {
	c := NewCart()
	p := product(1, "10.00", 3)

	c.Add(p)
	c.Add(p)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Subtotal().Equal(decimal.RequireFromString("20.00")))

	c.Add(p)
	items = c.Items()
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].Subtotal().Equal(decimal.RequireFromString("30.00")))
}

func TestAddPastStockIsSilentNoop(t *testing.T) {
	c := NewCart()
	p := product(1, "10.00", 3)

	for i := 0; i < 4; i++ {
		c.Add(p)
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddTracksLatestStock(t *testing.T) {
	c := NewCart()
	for i := 0; i < 4; i++ {
		c.Add(product(1, "10.00", 3))
	}
	require.Equal(t, 3, c.Items()[0].Quantity)

	// A restock seen by a later catalog fetch lifts the cap on the same line.
	c.Add(product(1, "10.00", 10))
	assert.Equal(t, 4, c.Items()[0].Quantity)
}

func TestAddStockDropTightensLine(t *testing.T) {
	c := NewCart()
	c.Add(product(1, "10.00", 5))
	c.Add(product(1, "10.00", 5))

	// Stock fell to 2 by the next fetch; the add no-ops and the line's limit
	// follows the new stock.
	c.Add(product(1, "10.00", 2))
	assert.Equal(t, 2, c.Items()[0].Quantity)
	assert.ErrorIs(t, c.SetQuantity(1, 5), domain.ErrInsufficientStock)
}

func TestRefreshStock(t *testing.T) {
	c := NewCart()
	c.Add(product(1, "5.00", 2))
	require.ErrorIs(t, c.SetQuantity(1, 4), domain.ErrInsufficientStock)

	c.RefreshStock(1, 10)
	require.NoError(t, c.SetQuantity(1, 4))

	c.RefreshStock(99, 10)
	assert.Equal(t, 4, c.Items()[0].Quantity)
}

func TestAddZeroStockIsNoop(t *testing.T) {
	c := NewCart()
	c.Add(product(1, "5.00", 0))
	assert.True(t, c.IsEmpty())
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := NewCart()
	c.Add(product(1, "5.00", 5))

	require.NoError(t, c.SetQuantity(1, 0))
	assert.True(t, c.IsEmpty())
}

func TestSetQuantityOverStockRejected(t *testing.T) {
	c := NewCart()
	c.Add(product(1, "5.00", 2))

	err := c.SetQuantity(1, 3)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	c := NewCart()
	err := c.SetQuantity(42, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := NewCart()
	c.Add(product(1, "5.00", 5))
	c.Add(product(2, "3.00", 5))

	c.Remove(1)
	c.Remove(1)
	c.Remove(99)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Product.ID)
}

func TestItemsKeepInsertionOrder(t *testing.T) {
	c := NewCart()
	c.Add(product(3, "1.00", 9))
	c.Add(product(1, "1.00", 9))
	c.Add(product(2, "1.00", 9))
	c.Add(product(1, "1.00", 9))

	var ids []int64
	for _, li := range c.Items() {
		ids = append(ids, li.Product.ID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestTotalsRecomputedFromLines(t *testing.T) {
	c := NewCart()
	c.Add(product(1, "10.00", 5))
	c.Add(product(1, "10.00", 5))
	c.Add(product(2, "7.50", 5))

	totals := c.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("27.50")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("5.78")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("33.28")), "total %s", totals.Total)

	// Mutating the cart must be reflected immediately, no cached totals.
	require.NoError(t, c.SetQuantity(1, 1))
	totals = c.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("17.50")))
}

func TestTotalsEmptyCart(t *testing.T) {
	totals := NewCart().Totals()
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestParseTendered(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"100.00", "100.00"},
		{" 42.5 ", "42.5"},
		{"", "0"},
		{"abc", "0"},
		{"-5", "0"},
	}
	for _, tc := range cases {
		got := parseTendered(tc.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "raw=%q got=%s", tc.raw, got)
	}
}

func TestSelectMethodClearsTendered(t *testing.T) {
	p := newPaymentState()
	p.SetTendered("50")
	p.SelectMethod(domain.PaymentCard)
	assert.True(t, p.Tendered.IsZero())

	p.SelectMethod(domain.PaymentCash)
	assert.True(t, p.Tendered.IsZero(), "switching back must not restore the old tender")
}

func TestChangeComputation(t *testing.T) {
	p := newPaymentState()
	p.SetTendered("100.00")
	total := decimal.RequireFromString("82.50")
	assert.True(t, p.Change(total).Equal(decimal.RequireFromString("17.50")))
	assert.True(t, p.Covers(total))

	p.SetTendered("50.00")
	assert.True(t, p.Change(total).IsNegative())
	assert.False(t, p.Covers(total))
}

func TestNonCashAlwaysCovers(t *testing.T) {
	p := newPaymentState()
	p.SelectMethod(domain.PaymentTransfer)
	assert.True(t, p.Covers(decimal.RequireFromString("9999.99")))
}
