package handler

import (
	"errors"
	"net/http"

	"edge-shortener/internal/domain"
	"edge-shortener/internal/metrics"
)

// Resolve handles every non-create request whose path is longer than "/".
// A miss renders the expiry page: an expired code and one that never existed
// cannot be told apart.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Path[1:]

	longURL, err := h.service.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.recorder.LinkResolved(metrics.OutcomeExpired)
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(expiredPage)
			return
		}
		h.writeInternalError(w, r, "get", err)
		return
	}
	h.recorder.LinkResolved(metrics.OutcomeRedirect)

	// The stored value is sent verbatim; http.Redirect would rewrite
	// scheme-less values relative to the request path.
	w.Header().Set("Location", longURL)
	w.WriteHeader(http.StatusFound)
}
