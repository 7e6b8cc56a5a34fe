// Package catalog keeps the in-memory snapshot of the upstream product list
// that the registers sell from.
package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"supermarket-pos/internal/domain"
	"supermarket-pos/internal/upstream"
)

type fetcher interface {
	FetchProducts(ctx context.Context, token string, f upstream.ProductFilter) (*domain.ProductPage, error)
}

// Service caches the last good catalog fetch. A failed refresh keeps the
// previous snapshot in place so the registers can keep selling.
type Service struct {
	client   fetcher
	logger   *log.Logger
	pageSize int

	mu         sync.RWMutex
	products   []domain.Product
	categories []string
	fetchedAt  time.Time
}

func New(client fetcher, pageSize int, logger *log.Logger) *Service {
	return &Service{client: client, pageSize: pageSize, logger: logger}
}

// Refresh replaces the snapshot with a fresh fetch. On failure the previous
// snapshot survives and the error is returned for the caller to surface.
func (s *Service) Refresh(ctx context.Context, token string) error {
	page, err := s.client.FetchProducts(ctx, token, upstream.ProductFilter{PerPage: s.pageSize})
	if err != nil {
		s.logger.Printf("catalog refresh failed: %v", err)
		return fmt.Errorf("refresh catalog: %w", err)
	}

	s.mu.Lock()
	s.products = page.Products
	s.categories = page.Categories
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Products returns a copy of the current snapshot.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns the category list from the last fetch.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Get looks a product up by ID in the snapshot.
func (s *Service) Get(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Search filters the snapshot by name or code, case-insensitively. An empty
// query returns the full snapshot.
func (s *Service) Search(query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Products()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Code), query) {
			out = append(out, p)
		}
	}
	return out
}

// FetchedAt reports when the snapshot was last replaced; zero if never.
func (s *Service) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
