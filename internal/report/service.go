package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pulse/internal/access"
	"pulse/internal/errlog"
	"pulse/internal/report/cache"
	reportmetrics "pulse/internal/report/metrics"
	ts "pulse/internal/timeseries"
	id "pulse/pkg/domain"
	"pulse/pkg/requestcontext"
)

// Service is the reporting façade: Access Guard, then cache lookup, then
// the report computer, then cache write. The guard always runs before the
// cache is consulted so revoked access is never served from a warm entry.
type Service struct {
	guard    *access.Guard
	store    ts.Runner
	errors   errlog.Store
	projects access.ProjectStore
	cache    cache.Store
	metrics  *reportmetrics.Metrics
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables report caching. Without it every request recomputes.
func WithCache(store cache.Store) Option {
	return func(s *Service) {
		s.cache = store
	}
}

func WithMetrics(m *reportmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(guard *access.Guard, store ts.Runner, errorLog errlog.Store, projects access.ProjectStore, opts ...Option) (*Service, error) {
	if guard == nil {
		return nil, errors.New("access guard is required")
	}
	if store == nil {
		return nil, errors.New("time-series store is required")
	}
	if errorLog == nil {
		return nil, errors.New("error log store is required")
	}
	if projects == nil {
		return nil, errors.New("project store is required")
	}
	s := &Service{
		guard:    guard,
		store:    store,
		errors:   errorLog,
		projects: projects,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Request identifies a report call. StartDate/EndDate are optional
// YYYY-MM-DD calendar bounds; the default window is the last 30 days ending
// today.
type Request struct {
	ProjectID   id.ProjectID
	TenantID    id.TenantID
	PrincipalID id.UserID
	StartDate   string
	EndDate     string
}

// GetOverview returns the overview report for the requested window.
func (s *Service) GetOverview(ctx context.Context, req Request) (*Overview, error) {
	if err := s.guard.CheckAccess(ctx, req.ProjectID, req.TenantID, req.PrincipalID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	r, err := ParseDateRange(now, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(req.ProjectID.String(), id.ReportOverview, map[string]string{
		"start": r.StartDate(),
		"end":   r.EndDate(),
	})
	ttl := cache.TTLForPeriod(now, r.Start, r.End)

	return fetchCached(ctx, s, key, id.ReportOverview, ttl, func(ctx context.Context) (*Overview, error) {
		return s.computeOverview(ctx, req.ProjectID, r, now)
	})
}

// GetFunnel returns the step-reach funnel for the given ordered event
// names. An empty step list is replaced by the default e-commerce funnel
// before computation.
func (s *Service) GetFunnel(ctx context.Context, req Request, steps []string) (*Funnel, error) {
	if err := s.guard.CheckAccess(ctx, req.ProjectID, req.TenantID, req.PrincipalID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	r, err := ParseDateRange(now, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		steps = DefaultFunnelSteps
	}

	key := cache.BuildKey(req.ProjectID.String(), id.ReportFunnel, map[string]string{
		"start": r.StartDate(),
		"end":   r.EndDate(),
		"steps": strings.Join(steps, ","),
	})
	ttl := cache.TTLForPeriod(now, r.Start, r.End)

	return fetchCached(ctx, s, key, id.ReportFunnel, ttl, func(ctx context.Context) (*Funnel, error) {
		return s.computeFunnel(ctx, req.ProjectID, r, steps)
	})
}

// GetPerformance returns the channel-attribution report.
func (s *Service) GetPerformance(ctx context.Context, req Request) (*Performance, error) {
	if err := s.guard.CheckAccess(ctx, req.ProjectID, req.TenantID, req.PrincipalID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	r, err := ParseDateRange(now, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(req.ProjectID.String(), id.ReportPerformance, map[string]string{
		"start": r.StartDate(),
		"end":   r.EndDate(),
	})
	ttl := cache.TTLForPeriod(now, r.Start, r.End)

	return fetchCached(ctx, s, key, id.ReportPerformance, ttl, func(ctx context.Context) (*Performance, error) {
		return s.computePerformance(ctx, req.ProjectID, r)
	})
}

// GetQuality returns the data-quality report over the fixed trailing
// 24-hour window. Date parameters are not accepted.
func (s *Service) GetQuality(ctx context.Context, req Request) (*Quality, error) {
	if err := s.guard.CheckAccess(ctx, req.ProjectID, req.TenantID, req.PrincipalID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	// The window always ends now, so the entry is as fresh as a
	// today-ending report.
	key := cache.BuildKey(req.ProjectID.String(), id.ReportQuality, nil)

	return fetchCached(ctx, s, key, id.ReportQuality, cache.TTLFresh, func(ctx context.Context) (*Quality, error) {
		return s.computeQuality(ctx, req.ProjectID, now)
	})
}

// AuthorizeAdmin gates destructive report operations (cache invalidation)
// to owners and admins of the owning tenant.
func (s *Service) AuthorizeAdmin(ctx context.Context, req Request) error {
	return s.guard.CheckAccess(ctx, req.ProjectID, req.TenantID, req.PrincipalID,
		id.RoleOwner, id.RoleAdmin)
}

// InvalidateProject drops every cached report for the project. It exists
// for out-of-scope collaborators (privacy deletion); report computation
// never calls it.
func (s *Service) InvalidateProject(ctx context.Context, projectID id.ProjectID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeletePattern(ctx, projectID.String()+":*")
}

// fetchCached wraps a report computation with the cache layer. Cache reads
// that fail or do not decode count as misses; cache writes are best-effort.
func fetchCached[T any](ctx context.Context, s *Service, key string, kind id.ReportKind, ttl time.Duration, compute func(context.Context) (*T, error)) (*T, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				s.metrics.IncrementCacheHit(kind.String())
				return &v, nil
			}
			if s.logger != nil {
				s.logger.WarnContext(ctx, "cached report did not decode, recomputing",
					"key", key, "kind", kind.String())
			}
		}
	}
	s.metrics.IncrementCacheMiss(kind.String())

	start := time.Now()
	v, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCompute(kind.String(), time.Since(start))

	if s.cache != nil {
		if raw, err := json.Marshal(v); err == nil {
			s.cache.Set(ctx, key, raw, ttl)
		}
	}
	return v, nil
}
