package httptransport

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pulse/internal/report"
	dErrors "pulse/pkg/domain-errors"
	id "pulse/pkg/domain"
	"pulse/pkg/requestcontext"
)

// Pinger is the connectivity signal the health endpoint consumes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler delegates to the reporting façade.
type Handler struct {
	reports *report.Service
	store   Pinger
}

func NewHandler(reports *report.Service, store Pinger) *Handler {
	return &Handler{reports: reports, store: store}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "timeseries": "ok"}
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			status["timeseries"] = "unreachable"
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.reports.GetOverview(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleFunnel(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var steps []string
	if raw := r.URL.Query().Get("steps"); raw != "" {
		for _, step := range strings.Split(raw, ",") {
			if step = strings.TrimSpace(step); step != "" {
				steps = append(steps, step)
			}
		}
	}
	out, err := h.reports.GetFunnel(r.Context(), req, steps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handlePerformance(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.reports.GetPerformance(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleQuality(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.reports.GetQuality(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeValidation, "invalid tenant id"))
		return
	}
	out, err := h.reports.GetTenantDashboard(r.Context(), tenantID, requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleInvalidateCache serves out-of-scope collaborators such as privacy
// deletion; it drops every cached report for the project. Only owners and
// admins may call it.
func (h *Handler) handleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.reports.AuthorizeAdmin(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.reports.InvalidateProject(r.Context(), req.ProjectID); err != nil {
		writeError(w, dErrors.Wrap(err, dErrors.CodeInternal, "cache invalidation failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reportRequest(r *http.Request) (report.Request, error) {
	projectID, err := id.ParseProjectID(chi.URLParam(r, "projectID"))
	if err != nil {
		return report.Request{}, dErrors.Wrap(err, dErrors.CodeValidation, "invalid project id")
	}
	q := r.URL.Query()
	return report.Request{
		ProjectID:   projectID,
		TenantID:    requestcontext.TenantID(r.Context()),
		PrincipalID: requestcontext.UserID(r.Context()),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
	}, nil
}
