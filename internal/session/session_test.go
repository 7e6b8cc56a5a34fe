package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Issue("cajero1", "cajero", "upstream-token")
	require.NotEmpty(t, s.ID)

	got, ok := m.Validate(s.ID)
	require.True(t, ok)
	assert.Equal(t, "cajero1", got.Username)
	assert.Equal(t, "cajero", got.Role)
	assert.Equal(t, "upstream-token", got.Token)
}

func TestValidateUnknown(t *testing.T) {
	m := NewManager(time.Hour)
	_, ok := m.Validate("nope")
	assert.False(t, ok)
}

func TestExpiredSessionDropped(t *testing.T) {
	m := NewManager(time.Minute)
	current := time.Now()
	m.now = func() time.Time { return current }

	s := m.Issue("admin", "admin", "tok")

	current = current.Add(2 * time.Minute)
	_, ok := m.Validate(s.ID)
	assert.False(t, ok)

	// Dropped for good, not just hidden.
	current = current.Add(-2 * time.Minute)
	_, ok = m.Validate(s.ID)
	assert.False(t, ok)
}

func TestRevoke(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Issue("admin", "admin", "tok")
	m.Revoke(s.ID)
	_, ok := m.Validate(s.ID)
	assert.False(t, ok)

	m.Revoke("already-gone")
}
