package timeseries

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// =============================================================================
// Query Builder Test Suite
// =============================================================================

type QuerySuite struct {
	suite.Suite
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(QuerySuite))
}

func (s *QuerySuite) TestSQL() {
	s.Run("renders full statement", func() {
		q := Select("event_name AS name", "count() AS total").
			From(TableEvents).
			Where(
				EqString(ColProjectID, "p-1"),
				Between(ColTimestamp, 100, 200),
			).
			GroupBy(ColEventName).
			OrderByDesc("total").
			Limit(10)

		sql, err := q.SQL()
		s.Require().NoError(err)
		s.Equal("SELECT event_name AS name, count() AS total FROM events "+
			"WHERE project_id = 'p-1' AND timestamp >= 100 AND timestamp <= 200 "+
			"GROUP BY event_name ORDER BY total DESC LIMIT 10", sql)
	})

	s.Run("renders minimal statement", func() {
		sql, err := Select("count() AS total").From(TableInvalidEvents).SQL()
		s.Require().NoError(err)
		s.Equal("SELECT count() AS total FROM invalid_events", sql)
	})

	s.Run("escapes untrusted values", func() {
		q := Select("count() AS total").
			From(TableEvents).
			Where(EqString(ColEventName, "sign'up"))
		sql, err := q.SQL()
		s.Require().NoError(err)
		s.Contains(sql, `event_name = 'sign\'up'`)
	})

	s.Run("rejects unknown table", func() {
		_, err := Select("count()").From(Table("system.tables")).SQL()
		s.Error(err)
		s.Contains(err.Error(), "unknown table")
	})

	s.Run("rejects unknown column", func() {
		_, err := Select("count()").
			From(TableEvents).
			Where(EqString(Column("user_agent; DROP"), "x")).
			SQL()
		s.Error(err)
		s.Contains(err.Error(), "unknown column")
	})

	s.Run("rejects empty select", func() {
		_, err := Select().From(TableEvents).SQL()
		s.Error(err)
	})

	s.Run("rejects missing table", func() {
		_, err := Select("count()").SQL()
		s.Error(err)
	})

	s.Run("first builder error wins", func() {
		q := Select("count()").
			From(Table("nope")).
			Where(EqString(Column("also_nope"), "x"))
		_, err := q.SQL()
		s.Error(err)
		s.Contains(err.Error(), "unknown table")
	})
}

func (s *QuerySuite) TestConds() {
	s.Run("EqInt", func() {
		c := EqInt(ColValue, 42)
		s.NoError(c.err)
		s.Equal("value = 42", c.expr)
	})

	s.Run("GtFloat renders without exponent", func() {
		c := GtFloat(ColValue, 0)
		s.NoError(c.err)
		s.Equal("value > 0", c.expr)
	})

	s.Run("NotEmpty", func() {
		c := NotEmpty(ColUTMSource)
		s.NoError(c.err)
		s.Equal("utm_source != ''", c.expr)
	})

	s.Run("GroupByExpr renders literal", func() {
		sql, err := Select("toDate(toDateTime(timestamp)) AS day", "count() AS total").
			From(TableEvents).
			GroupByExpr("day").
			OrderByAsc("day").
			SQL()
		s.Require().NoError(err)
		s.Contains(sql, "GROUP BY day ORDER BY day ASC")
	})
}
