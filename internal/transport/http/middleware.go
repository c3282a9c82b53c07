package httptransport

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	id "pulse/pkg/domain"
	"pulse/pkg/requestcontext"
)

// Headers set by the upstream auth gateway (session/token verification is
// out of scope here).
const (
	headerTenantID = "X-Pulse-Tenant-ID"
	headerUserID   = "X-Pulse-User-ID"
)

// principal moves the authenticated identity from gateway headers into the
// request context. Requests without a verifiable principal are rejected
// before reaching any handler.
func principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := id.ParseTenantID(r.Header.Get(headerTenantID))
		if err != nil {
			writeStatus(w, http.StatusUnauthorized, "missing or invalid tenant identity")
			return
		}
		userID, err := id.ParseUserID(r.Header.Get(headerUserID))
		if err != nil {
			writeStatus(w, http.StatusUnauthorized, "missing or invalid principal identity")
			return
		}

		ctx := r.Context()
		ctx = requestcontext.WithTenantID(ctx, tenantID)
		ctx = requestcontext.WithUserID(ctx, userID)
		if reqID := chimw.GetReqID(ctx); reqID != "" {
			ctx = requestcontext.WithRequestID(ctx, reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
