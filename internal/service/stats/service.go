// Package stats caches the dashboard snapshot fetched from the upstream
// stats endpoints and refreshes it in the background.
package stats

import (
	"context"
	"fmt"
	"log"
	"sync"

	"supermarket-pos/internal/domain"
)

type fetcher interface {
	FetchStats(ctx context.Context, token string) (*domain.Stats, error)
}

// Service holds the latest stats snapshot. Background refreshes reuse the
// bearer token of the last operator who requested stats, since the poller has
// no session of its own.
type Service struct {
	client fetcher
	logger *log.Logger

	mu        sync.RWMutex
	snapshot  *domain.Stats
	lastToken string
}

func New(client fetcher, logger *log.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Refresh fetches a new snapshot with the given token. On failure the
// previous snapshot stays available.
func (s *Service) Refresh(ctx context.Context, token string) (*domain.Stats, error) {
	snap, err := s.client.FetchStats(ctx, token)
	if err != nil {
		s.logger.Printf("stats refresh failed: %v", err)
		return nil, fmt.Errorf("refresh stats: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snap
	s.lastToken = token
	s.mu.Unlock()
	return snap, nil
}

// Snapshot returns the cached stats, or false if none was fetched yet.
func (s *Service) Snapshot() (*domain.Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

// Poll refreshes the snapshot with the last seen token; it is the poller's
// task and does nothing until an operator has fetched stats once.
func (s *Service) Poll(ctx context.Context) {
	s.mu.RLock()
	token := s.lastToken
	s.mu.RUnlock()
	if token == "" {
		return
	}
	if _, err := s.Refresh(ctx, token); err != nil {
		s.logger.Printf("stats poll: %v", err)
	}
}
