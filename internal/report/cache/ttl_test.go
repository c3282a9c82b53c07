package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// =============================================================================
// TTL Policy Test Suite
// =============================================================================
// The recency policy is the central caching invariant: fresher data is
// cached for less time.

type TTLSuite struct {
	suite.Suite
	now time.Time
}

func TestTTLSuite(t *testing.T) {
	suite.Run(t, new(TTLSuite))
}

func (s *TTLSuite) SetupTest() {
	s.now = time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
}

func (s *TTLSuite) TestTTLForPeriod() {
	day := func(offset int) time.Time {
		return time.Date(2024, 3, 15+offset, 23, 59, 59, 0, time.UTC)
	}

	s.Run("window ending today is fresh", func() {
		s.Equal(TTLFresh, TTLForPeriod(s.now, day(-7), day(0)))
	})

	s.Run("window ending yesterday is settled", func() {
		s.Equal(TTLSettled, TTLForPeriod(s.now, day(-8), day(-1)))
	})

	s.Run("window ending ten days ago is settled", func() {
		s.Equal(TTLSettled, TTLForPeriod(s.now, day(-17), day(-10)))
	})

	s.Run("no end date defaults to today", func() {
		s.Equal(TTLFresh, TTLForPeriod(s.now, time.Time{}, time.Time{}))
	})

	s.Run("future end date falls back to default", func() {
		s.Equal(TTLDefault, TTLForPeriod(s.now, day(0), day(3)))
	})

	s.Run("end of today at any clock time is still today", func() {
		endMorning := time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC)
		s.Equal(TTLFresh, TTLForPeriod(s.now, endMorning, endMorning))
	})
}
