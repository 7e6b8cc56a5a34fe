// Package register coordinates the per-terminal cart engines: it applies user
// actions, gates checkout to a single in-flight submission, and runs the
// post-sale reset and catalog refetch.
package register

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"supermarket-pos/internal/cart"
	"supermarket-pos/internal/domain"
)

type catalogProvider interface {
	Get(id int64) (domain.Product, bool)
	Refresh(ctx context.Context, token string) error
}

type salesClient interface {
	SubmitSale(ctx context.Context, token string, rec domain.SaleRecord) error
}

// Service owns the open registers, keyed by register ID.
type Service struct {
	catalog    catalogProvider
	sales      salesClient
	logger     *log.Logger
	resetDelay time.Duration

	mu        sync.Mutex
	registers map[string]*terminal
}

type terminal struct {
	eng        *cart.Register
	submitting bool
}

func New(catalog catalogProvider, sales salesClient, resetDelay time.Duration, logger *log.Logger) *Service {
	return &Service{
		catalog:    catalog,
		sales:      sales,
		logger:     logger,
		resetDelay: resetDelay,
		registers:  make(map[string]*terminal),
	}
}

// Open creates a fresh register and returns its ID.
func (s *Service) Open() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.registers[id] = &terminal{eng: cart.NewRegister()}
	s.mu.Unlock()
	return id
}

// Close discards a register. A pending post-sale reset for it becomes a no-op.
func (s *Service) Close(id string) {
	s.mu.Lock()
	delete(s.registers, id)
	s.mu.Unlock()
}

// Item is one cart line in a register state snapshot.
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Payment is the payment sub-state in a register state snapshot.
type Payment struct {
	Method   domain.PaymentMethod `json:"method"`
	Tendered decimal.Decimal      `json:"tendered"`
	Change   decimal.Decimal      `json:"change"`
}

// State is the full view of a register returned to the terminal UI.
type State struct {
	ID          string          `json:"id"`
	Phase       cart.Phase      `json:"phase"`
	Items       []Item          `json:"items"`
	Customer    domain.Customer `json:"customer"`
	Totals      cart.Totals     `json:"totals"`
	Payment     Payment         `json:"payment"`
	CanCheckout bool            `json:"canCheckout"`
	Submitting  bool            `json:"submitting"`
}

// CheckoutResult carries the figures shown on the sale-complete screen.
type CheckoutResult struct {
	Total  decimal.Decimal      `json:"total"`
	Change decimal.Decimal      `json:"change"`
	Method domain.PaymentMethod `json:"method"`
}

// State snapshots a register for the UI.
func (s *Service) State(id string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term, ok := s.registers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snapshot(id, term), nil
}

func snapshot(id string, term *terminal) *State {
	eng := term.eng
	totals := eng.Cart().Totals()
	payment := eng.Payment()

	items := eng.Cart().Items()
	out := make([]Item, 0, len(items))
	for _, li := range items {
		out = append(out, Item{
			ProductID: li.Product.ID,
			Name:      li.Product.Name,
			UnitPrice: li.Product.Price,
			Quantity:  li.Quantity,
			Subtotal:  li.Subtotal(),
		})
	}

	return &State{
		ID:       id,
		Phase:    eng.Phase(),
		Items:    out,
		Customer: eng.Customer(),
		Totals:   totals,
		Payment: Payment{
			Method:   payment.Method,
			Tendered: payment.Tendered,
			Change:   payment.Change(totals.Total),
		},
		CanCheckout: eng.CanCheckout(),
		Submitting:  term.submitting,
	}
}

// withRegister runs fn against a register under the service lock.
func (s *Service) withRegister(id string, fn func(*terminal) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	term, ok := s.registers[id]
	if !ok {
		return domain.ErrNotFound
	}
	return fn(term)
}

// AddItem adds one unit of a catalog product to the register's cart.
func (s *Service) AddItem(id string, productID int64) error {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}
	return s.withRegister(id, func(term *terminal) error {
		return term.eng.AddProduct(p)
	})
}

// SetQuantity changes a line's quantity, validated against the stock from the
// latest catalog fetch rather than the snapshot taken when the line was added.
func (s *Service) SetQuantity(id string, productID int64, quantity int) error {
	return s.withRegister(id, func(term *terminal) error {
		if p, ok := s.catalog.Get(productID); ok {
			term.eng.Cart().RefreshStock(productID, p.Stock)
		}
		return term.eng.SetQuantity(productID, quantity)
	})
}

func (s *Service) RemoveItem(id string, productID int64) error {
	return s.withRegister(id, func(term *terminal) error {
		return term.eng.RemoveProduct(productID)
	})
}

func (s *Service) SetCustomer(id, name, phone string) error {
	return s.withRegister(id, func(term *terminal) error {
		term.eng.SetCustomer(name, phone)
		return nil
	})
}

func (s *Service) BeginPayment(id string) error {
	return s.withRegister(id, func(term *terminal) error {
		return term.eng.BeginPayment()
	})
}

func (s *Service) CancelPayment(id string) error {
	return s.withRegister(id, func(term *terminal) error {
		return term.eng.CancelPayment()
	})
}

func (s *Service) SelectPaymentMethod(id string, m domain.PaymentMethod) error {
	return s.withRegister(id, func(term *terminal) error {
		return term.eng.SelectPaymentMethod(m)
	})
}

func (s *Service) SetTendered(id, raw string) error {
	return s.withRegister(id, func(term *terminal) error {
		return term.eng.SetTendered(raw)
	})
}

// Checkout submits the register's sale. Exactly one submission may be in
// flight per register; the outcome is applied to the register even if the
// operator has moved on, and a success schedules the full reset plus a
// catalog refetch after the display interval.
func (s *Service) Checkout(ctx context.Context, token, id string) (*CheckoutResult, error) {
	s.mu.Lock()
	term, ok := s.registers[id]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if term.submitting {
		s.mu.Unlock()
		return nil, domain.ErrCheckoutInFlight
	}
	rec, err := term.eng.BeginSubmit()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	term.submitting = true
	s.mu.Unlock()

	// Once begun the submission runs to an outcome; a dropped terminal
	// connection must not cancel the upstream request mid-flight. The store
	// client's own timeout still bounds the call.
	submitErr := s.sales.SubmitSale(context.WithoutCancel(ctx), token, rec)

	s.mu.Lock()
	term.submitting = false
	if submitErr != nil {
		if err := term.eng.FailSubmit(); err != nil {
			s.logger.Printf("register %s: fail transition: %v", id, err)
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("submit sale: %w", submitErr)
	}
	if err := term.eng.CompleteSubmit(); err != nil {
		s.logger.Printf("register %s: complete transition: %v", id, err)
	}
	s.mu.Unlock()

	time.AfterFunc(s.resetDelay, func() { s.finishSale(id, token) })

	return &CheckoutResult{
		Total:  rec.Total,
		Change: rec.Change,
		Method: rec.Method,
	}, nil
}

// finishSale resets a completed register and refetches the catalog so the
// snapshot reflects the stock decremented upstream. The register may have
// been closed in the meantime; then only the refetch runs.
func (s *Service) finishSale(id, token string) {
	s.mu.Lock()
	if term, ok := s.registers[id]; ok && term.eng.Phase() == cart.PhaseComplete {
		term.eng.Reset()
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.catalog.Refresh(ctx, token); err != nil {
		s.logger.Printf("post-sale catalog refresh: %v", err)
	}
}
