package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// =============================================================================
// Memory Store Test Suite
// =============================================================================

type MemoryStoreSuite struct {
	suite.Suite
	now   time.Time
	store *MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s.store = NewMemoryStore(WithClock(func() time.Time { return s.now }))
}

func (s *MemoryStoreSuite) TestGetSet() {
	ctx := context.Background()

	s.Run("missing key is a miss", func() {
		_, ok := s.store.Get(ctx, "nope")
		s.False(ok)
	})

	s.Run("round trips a value", func() {
		s.store.Set(ctx, "k", []byte("v"), time.Minute)
		val, ok := s.store.Get(ctx, "k")
		s.True(ok)
		s.Equal([]byte("v"), val)
	})

	s.Run("entry expires after its TTL", func() {
		s.store.Set(ctx, "short", []byte("v"), time.Minute)
		s.now = s.now.Add(2 * time.Minute)
		_, ok := s.store.Get(ctx, "short")
		s.False(ok)
	})

	s.Run("zero TTL falls back to the default", func() {
		s.store.Set(ctx, "dflt", []byte("v"), 0)
		s.now = s.now.Add(TTLDefault - time.Second)
		_, ok := s.store.Get(ctx, "dflt")
		s.True(ok)
		s.now = s.now.Add(2 * time.Second)
		_, ok = s.store.Get(ctx, "dflt")
		s.False(ok)
	})
}

func (s *MemoryStoreSuite) TestDeletePattern() {
	ctx := context.Background()
	s.store.Set(ctx, "proj-1:overview:x", []byte("a"), time.Minute)
	s.store.Set(ctx, "proj-1:funnel:y", []byte("b"), time.Minute)
	s.store.Set(ctx, "proj-2:overview:x", []byte("c"), time.Minute)

	s.Require().NoError(s.store.DeletePattern(ctx, "proj-1:*"))

	_, ok := s.store.Get(ctx, "proj-1:overview:x")
	s.False(ok)
	_, ok = s.store.Get(ctx, "proj-1:funnel:y")
	s.False(ok)
	_, ok = s.store.Get(ctx, "proj-2:overview:x")
	s.True(ok)
}
