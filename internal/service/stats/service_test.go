package stats

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-pos/internal/domain"
)

type stubFetcher struct {
	stats     *domain.Stats
	err       error
	calls     int
	lastToken string
}

func (s *stubFetcher) FetchStats(_ context.Context, token string) (*domain.Stats, error) {
	s.calls++
	s.lastToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestSnapshotEmptyBeforeRefresh(t *testing.T) {
	svc := New(&stubFetcher{}, testLogger())
	_, ok := svc.Snapshot()
	assert.False(t, ok)
}

func TestRefreshStoresSnapshot(t *testing.T) {
	fetcher := &stubFetcher{stats: &domain.Stats{ProductCount: 42}}
	svc := New(fetcher, testLogger())

	snap, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 42, snap.ProductCount)

	cached, ok := svc.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 42, cached.ProductCount)
}

func TestFailedRefreshKeepsSnapshot(t *testing.T) {
	fetcher := &stubFetcher{stats: &domain.Stats{ProductCount: 1}}
	svc := New(fetcher, testLogger())
	_, err := svc.Refresh(context.Background(), "tok")
	require.NoError(t, err)

	fetcher.err = errors.New("boom")
	_, err = svc.Refresh(context.Background(), "tok")
	require.Error(t, err)

	cached, ok := svc.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 1, cached.ProductCount)
}

func TestPollUsesLastToken(t *testing.T) {
	fetcher := &stubFetcher{stats: &domain.Stats{}}
	svc := New(fetcher, testLogger())

	// Without a prior operator fetch the poll is a no-op.
	svc.Poll(context.Background())
	assert.Equal(t, 0, fetcher.calls)

	_, err := svc.Refresh(context.Background(), "operator-token")
	require.NoError(t, err)

	svc.Poll(context.Background())
	assert.Equal(t, 2, fetcher.calls)
	assert.Equal(t, "operator-token", fetcher.lastToken)
}
