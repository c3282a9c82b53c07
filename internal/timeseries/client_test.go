package timeseries

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"pulse/internal/platform/config"
	dErrors "pulse/pkg/domain-errors"
)

// =============================================================================
// Client Test Suite
// =============================================================================

type ClientSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) newClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	s.T().Cleanup(srv.Close)
	client := New(config.TimeSeriesConfig{URL: srv.URL, Database: "pulse"})
	return client, srv
}

type countRow struct {
	Total int64 `json:"total"`
}

func (s *ClientSuite) TestQueryRows() {
	s.Run("decodes newline-delimited rows", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			s.Contains(string(body), "FORMAT JSONEachRow")
			s.Equal("pulse", r.URL.Query().Get("database"))
			s.Equal("0", r.URL.Query().Get("output_format_json_quote_64bit_integers"))
			io.WriteString(w, "{\"total\":3}\n{\"total\":7}\n")
		})

		rows, err := QueryRows[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Require().NoError(err)
		s.Require().Len(rows, 2)
		s.Equal(int64(3), rows[0].Total)
		s.Equal(int64(7), rows[1].Total)
	})

	s.Run("missing fields decode to zero", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "{}\n")
		})
		rows, err := QueryRows[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Require().NoError(err)
		s.Require().Len(rows, 1)
		s.Zero(rows[0].Total)
	})

	s.Run("malformed row rejects the call", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "{\"total\":3}\nnot json\n")
		})
		_, err := QueryRows[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUpstreamQuery))
	})

	s.Run("non-numeric value in numeric column rejects the call", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "{\"total\":\"many\"}\n")
		})
		_, err := QueryRows[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUpstreamQuery))
	})

	s.Run("non-2xx carries upstream message", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, "Code: 60. Unknown table events")
		})
		_, err := QueryRows[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUpstreamQuery))
		s.Contains(err.Error(), "Unknown table events")
	})

	s.Run("unreachable store surfaces upstream error", func() {
		client := New(config.TimeSeriesConfig{URL: "http://127.0.0.1:1"})
		_, err := QueryRows[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUpstreamQuery))
	})

	s.Run("invalid query never reaches the store", func() {
		var hits int
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
			hits++
		})
		_, err := QueryRows[countRow](context.Background(), client,
			Select("count()").From(Table("bogus")))
		s.Error(err)
		s.Zero(hits)
	})
}

func (s *ClientSuite) TestQueryOne() {
	s.Run("returns first row", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "{\"total\":9}\n")
		})
		row, err := QueryOne[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Require().NoError(err)
		s.Equal(int64(9), row.Total)
	})

	s.Run("empty response yields zero value", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {})
		row, err := QueryOne[countRow](context.Background(), client,
			Select("count() AS total").From(TableEvents))
		s.Require().NoError(err)
		s.Zero(row.Total)
	})
}

func (s *ClientSuite) TestPing() {
	s.Run("healthy store", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			s.Equal("SELECT 1", string(body))
			io.WriteString(w, "1\n")
		})
		s.NoError(client.Ping(context.Background()))
	})

	s.Run("unhealthy store", func() {
		client, _ := s.newClient(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		s.Error(client.Ping(context.Background()))
	})
}
