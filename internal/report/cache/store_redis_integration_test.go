//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pulse/internal/report/cache"
	"pulse/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *cache.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = cache.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestGetSet() {
	ctx := context.Background()

	_, ok := s.store.Get(ctx, "missing")
	s.False(ok)

	s.store.Set(ctx, "proj-1:overview:end:2024-03-07", []byte(`{"totalEvents":5}`), time.Minute)
	val, ok := s.store.Get(ctx, "proj-1:overview:end:2024-03-07")
	s.True(ok)
	s.JSONEq(`{"totalEvents":5}`, string(val))
}

func (s *RedisStoreSuite) TestSetAppliesTTL() {
	ctx := context.Background()
	s.store.Set(ctx, "ttl-key", []byte("v"), time.Hour)

	ttl, err := s.redis.Client.TTL(ctx, "pulse:reports:ttl-key").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 59*time.Minute)
	s.LessOrEqual(ttl, time.Hour)
}

func (s *RedisStoreSuite) TestDeletePattern() {
	ctx := context.Background()
	s.store.Set(ctx, "proj-1:overview:a", []byte("1"), time.Minute)
	s.store.Set(ctx, "proj-1:funnel:b", []byte("2"), time.Minute)
	s.store.Set(ctx, "proj-2:overview:a", []byte("3"), time.Minute)

	s.Require().NoError(s.store.DeletePattern(ctx, "proj-1:*"))

	_, ok := s.store.Get(ctx, "proj-1:overview:a")
	s.False(ok)
	_, ok = s.store.Get(ctx, "proj-1:funnel:b")
	s.False(ok)
	_, ok = s.store.Get(ctx, "proj-2:overview:a")
	s.True(ok)
}
