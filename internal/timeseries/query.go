package timeseries

import (
	"fmt"
	"strconv"
	"strings"
)

// Table names the queryable tables in the time-series store. Only
// allow-listed tables may appear in query text.
type Table string

const (
	// TableEvents holds one row per tracked occurrence, immutable once
	// ingested. This subsystem never writes to it.
	TableEvents Table = "events"
	// TableInvalidEvents holds rejected/structurally invalid events.
	TableInvalidEvents Table = "invalid_events"
	// TableDeliveryLogs holds one row per conversion-API forwarding attempt.
	TableDeliveryLogs Table = "delivery_logs"
)

var validTables = map[Table]struct{}{
	TableEvents:        {},
	TableInvalidEvents: {},
	TableDeliveryLogs:  {},
}

// Column names the filterable/groupable columns. Identifiers are validated
// against this allow-list rather than escaped.
type Column string

const (
	ColProjectID   Column = "project_id"
	ColEventName   Column = "event_name"
	ColTimestamp   Column = "timestamp"
	ColIngestedAt  Column = "ingested_at"
	ColAnonymousID Column = "anonymous_id"
	ColSessionID   Column = "session_id"
	ColUTMSource   Column = "utm_source"
	ColUTMMedium   Column = "utm_medium"
	ColUTMCampaign Column = "utm_campaign"
	ColValue       Column = "value"
	ColStatus      Column = "status"
)

var validColumns = map[Column]struct{}{
	ColProjectID:   {},
	ColEventName:   {},
	ColTimestamp:   {},
	ColIngestedAt:  {},
	ColAnonymousID: {},
	ColSessionID:   {},
	ColUTMSource:   {},
	ColUTMMedium:   {},
	ColUTMCampaign: {},
	ColValue:       {},
	ColStatus:      {},
}

// Cond is a rendered WHERE predicate. Construct it only through the typed
// constructors below; they are the sole path by which request data reaches
// query text.
type Cond struct {
	expr string
	err  error
}

// EqString matches a column against an untrusted string value.
func EqString(col Column, v string) Cond {
	if err := checkColumn(col); err != nil {
		return Cond{err: err}
	}
	return Cond{expr: fmt.Sprintf("%s = '%s'", col, Escape(v))}
}

// EqInt matches a column against an integer value.
func EqInt(col Column, v int64) Cond {
	if err := checkColumn(col); err != nil {
		return Cond{err: err}
	}
	return Cond{expr: fmt.Sprintf("%s = %d", col, v)}
}

// GtFloat requires a numeric column to exceed v.
func GtFloat(col Column, v float64) Cond {
	if err := checkColumn(col); err != nil {
		return Cond{err: err}
	}
	return Cond{expr: fmt.Sprintf("%s > %s", col, strconv.FormatFloat(v, 'f', -1, 64))}
}

// Between bounds a second-granularity timestamp column inclusively.
func Between(col Column, from, to int64) Cond {
	if err := checkColumn(col); err != nil {
		return Cond{err: err}
	}
	return Cond{expr: fmt.Sprintf("%s >= %d AND %s <= %d", col, from, col, to)}
}

// NotEmpty excludes rows whose string column is empty.
func NotEmpty(col Column) Cond {
	if err := checkColumn(col); err != nil {
		return Cond{err: err}
	}
	return Cond{expr: fmt.Sprintf("%s != ''", col)}
}

func checkColumn(col Column) error {
	if _, ok := validColumns[col]; !ok {
		return fmt.Errorf("unknown column: %s", col)
	}
	return nil
}

// Query builds a single SELECT statement for the store's dialect. Report
// shapes are fixed at design time, so select expressions are source
// literals; only Cond values carry request data.
type Query struct {
	selects []string
	table   Table
	conds   []Cond
	groups  []string
	order   string
	limit   int
	err     error
}

// Select starts a query with the given select expressions. Expressions must
// be design-time literals (aggregations, column aliases), never request
// data.
func Select(exprs ...string) *Query {
	return &Query{selects: exprs}
}

// From sets the source table, validated against the allow-list.
func (q *Query) From(t Table) *Query {
	if _, ok := validTables[t]; !ok {
		q.fail(fmt.Errorf("unknown table: %s", t))
		return q
	}
	q.table = t
	return q
}

// Where appends predicates, joined with AND.
func (q *Query) Where(conds ...Cond) *Query {
	for _, c := range conds {
		if c.err != nil {
			q.fail(c.err)
			return q
		}
	}
	q.conds = append(q.conds, conds...)
	return q
}

// GroupBy appends grouping columns, validated against the allow-list.
func (q *Query) GroupBy(cols ...Column) *Query {
	for _, col := range cols {
		if err := checkColumn(col); err != nil {
			q.fail(err)
			return q
		}
		q.groups = append(q.groups, string(col))
	}
	return q
}

// GroupByExpr appends a grouping expression. The expression must be a
// design-time literal (e.g. a select alias), never request data.
func (q *Query) GroupByExpr(expr string) *Query {
	q.groups = append(q.groups, expr)
	return q
}

// OrderByDesc orders by a design-time literal expression, descending.
func (q *Query) OrderByDesc(expr string) *Query {
	q.order = expr + " DESC"
	return q
}

// OrderByAsc orders by a design-time literal expression, ascending.
func (q *Query) OrderByAsc(expr string) *Query {
	q.order = expr + " ASC"
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// SQL renders the statement. The first builder error wins.
func (q *Query) SQL() (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if len(q.selects) == 0 {
		return "", fmt.Errorf("query has no select expressions")
	}
	if q.table == "" {
		return "", fmt.Errorf("query has no table")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.selects, ", "))
	b.WriteString(" FROM ")
	b.WriteString(string(q.table))

	if len(q.conds) > 0 {
		exprs := make([]string, len(q.conds))
		for i, c := range q.conds {
			exprs[i] = c.expr
		}
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(exprs, " AND "))
	}
	if len(q.groups) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(q.groups, ", "))
	}
	if q.order != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.order)
	}
	if q.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.limit))
	}
	return b.String(), nil
}
