package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	s := NewStore(30 * time.Minute)
	ct := New(testChart(t))

	id := s.Create(ct)
	require.NotEmpty(t, id)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, ct, got)
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get("no-such-session")
	assert.False(t, ok)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(30 * time.Minute)
	id := s.Create(New(testChart(t)))

	s.Delete(id)
	_, ok := s.Get(id)
	assert.False(t, ok)

	// Deleting an unknown id is a no-op.
	s.Delete(id)
}

func TestStoreExpiry(t *testing.T) {
	now := time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)
	s := NewStore(30 * time.Minute)
	s.now = func() time.Time { return now }

	id := s.Create(New(testChart(t)))

	// Just inside the TTL the session is alive.
	now = now.Add(29 * time.Minute)
	_, ok := s.Get(id)
	require.True(t, ok)

	// The access above slid the expiry forward by another TTL.
	now = now.Add(29 * time.Minute)
	_, ok = s.Get(id)
	require.True(t, ok)

	// Past the idle TTL the session lapses.
	now = now.Add(31 * time.Minute)
	_, ok = s.Get(id)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestStoreSweepsLapsedSessions(t *testing.T) {
	now := time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)
	s := NewStore(10 * time.Minute)
	s.now = func() time.Time { return now }

	s.Create(New(testChart(t)))
	s.Create(New(testChart(t)))
	assert.Equal(t, 2, s.Len())

	now = now.Add(11 * time.Minute)
	assert.Zero(t, s.Len())
}
