package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "pulse/pkg/domain-errors"
)

// =============================================================================
// Date Range Test Suite
// =============================================================================

type DateRangeSuite struct {
	suite.Suite
	now time.Time
}

func TestDateRangeSuite(t *testing.T) {
	suite.Run(t, new(DateRangeSuite))
}

func (s *DateRangeSuite) SetupTest() {
	s.now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func (s *DateRangeSuite) TestParseDateRange() {
	s.Run("defaults to the last 30 days ending today", func() {
		r, err := ParseDateRange(s.now, "", "")
		s.Require().NoError(err)
		s.Equal("2024-02-15", r.StartDate())
		s.Equal("2024-03-15", r.EndDate())
		s.Equal(30, r.PeriodDays())
	})

	s.Run("explicit bounds are inclusive with end of day", func() {
		r, err := ParseDateRange(s.now, "2024-03-01", "2024-03-07")
		s.Require().NoError(err)
		s.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Start)
		s.Equal(time.Date(2024, 3, 7, 23, 59, 59, 0, time.UTC), r.End)
		s.Equal(7, r.PeriodDays())
	})

	s.Run("start only keeps end at today", func() {
		r, err := ParseDateRange(s.now, "2024-03-10", "")
		s.Require().NoError(err)
		s.Equal("2024-03-10", r.StartDate())
		s.Equal("2024-03-15", r.EndDate())
	})

	s.Run("single day window floors at one period day", func() {
		r, err := ParseDateRange(s.now, "2024-03-05", "2024-03-05")
		s.Require().NoError(err)
		s.Equal(1, r.PeriodDays())
	})

	s.Run("malformed start is a validation error", func() {
		_, err := ParseDateRange(s.now, "03/01/2024", "")
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("malformed end is a validation error", func() {
		_, err := ParseDateRange(s.now, "", "soon")
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("inverted bounds are a validation error", func() {
		_, err := ParseDateRange(s.now, "2024-03-07", "2024-03-01")
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *DateRangeSuite) TestPrevious() {
	s.Run("is the identical length immediately preceding", func() {
		r, err := ParseDateRange(s.now, "2024-03-01", "2024-03-07")
		s.Require().NoError(err)

		prev := r.Previous()
		s.Equal(time.Date(2024, 2, 23, 0, 0, 0, 0, time.UTC), prev.Start)
		s.Equal(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), prev.End)
		s.Equal(r.PeriodDays(), prev.PeriodDays())
	})

	s.Run("single day window looks at the prior day", func() {
		r, err := ParseDateRange(s.now, "2024-03-05", "2024-03-05")
		s.Require().NoError(err)

		prev := r.Previous()
		s.Equal("2024-03-04", prev.StartDate())
		s.Equal("2024-03-04", prev.EndDate())
	})
}
