// Package timeseries is the query/escaping layer against the external
// append-only columnar event store. The store accepts query text over HTTP
// and answers with newline-delimited JSON rows; this package centralizes
// query construction, escaping and typed row decoding so no other package
// ever concatenates query text.
package timeseries

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pulse/internal/platform/config"
	dErrors "pulse/pkg/domain-errors"
)

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pulse_timeseries_query_duration_seconds",
	Help:    "Latency of time-series store queries by outcome",
	Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
}, []string{"status"})

// maxErrorBody bounds how much of an upstream error response is carried in
// the returned error.
const maxErrorBody = 4 << 10

// maxRowBytes bounds a single response row.
const maxRowBytes = 1 << 20

// Runner executes one query against the store and returns the raw
// row-oriented response body. It is the seam report computers depend on, so
// tests can substitute a spy without HTTP.
type Runner interface {
	Run(ctx context.Context, query string) (io.ReadCloser, error)
}

// Client is the HTTP implementation of Runner. Each query is a single
// request/response round trip; no retries are layered on top.
type Client struct {
	httpClient *http.Client
	baseURL    string
	database   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New constructs a store client. Ownership is explicit: cmd/server builds
// one client and injects it; there are no package-level instances.
func New(cfg config.TimeSeriesConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		database:   cfg.Database,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Run posts the query text to the store. Non-2xx responses and transport
// failures surface as upstream_query errors carrying the store's message.
func (c *Client) Run(ctx context.Context, query string) (io.ReadCloser, error) {
	start := time.Now()

	params := url.Values{}
	if c.database != "" {
		params.Set("database", c.database)
	}
	// Keep 64-bit integers unquoted so counts decode into integer fields.
	params.Set("output_format_json_quote_64bit_integers", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/?"+params.Encode(), strings.NewReader(query))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build store request")
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		queryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamQuery, "time-series store unreachable")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		queryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, dErrors.Newf(dErrors.CodeUpstreamQuery,
			"time-series query failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	queryDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	return resp.Body, nil
}

// Ping checks store connectivity with a trivial query. Used best-effort at
// startup and by health checks.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.Run(ctx, "SELECT 1")
	if err != nil {
		return err
	}
	defer body.Close()
	_, err = io.Copy(io.Discard, body)
	return err
}

// QueryRows renders q, executes it with FORMAT JSONEachRow, and decodes
// each response line into T. A row that fails typed decode rejects the
// whole call with an upstream_query error rather than being coerced to
// zero; fields absent from a row decode to their zero values.
func QueryRows[T any](ctx context.Context, r Runner, q *Query) ([]T, error) {
	sqlText, err := q.SQL()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build query")
	}

	body, err := r.Run(ctx, sqlText+" FORMAT JSONEachRow")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var rows []T
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64<<10), maxRowBytes)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var row T
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUpstreamQuery, "malformed store row")
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamQuery, "read store response")
	}
	return rows, nil
}

// QueryOne is QueryRows for single-row aggregations. A missing row returns
// the zero value of T, matching stores that omit the row entirely for empty
// windows.
func QueryOne[T any](ctx context.Context, r Runner, q *Query) (T, error) {
	rows, err := QueryRows[T](ctx, r, q)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(rows) == 0 {
		var zero T
		return zero, nil
	}
	return rows[0], nil
}
