package handler

import (
	"errors"
	"net/http"

	"edge-shortener/internal/metrics"
)

// Create handles POST requests under the API prefix.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.isAllowed(h.clientIP(r)) {
		h.recorder.CreateRejected(metrics.ReasonUnauthorized)
		h.writeError(w, http.StatusForbidden, MsgUnauthorized)
		return
	}

	req, err := parseCreateRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, errURLRequired) {
			h.recorder.CreateRejected(metrics.ReasonMissingURL)
			h.writeError(w, http.StatusBadRequest, MsgURLRequired)
			return
		}
		h.recorder.CreateRejected(metrics.ReasonInvalidJSON)
		h.writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	link, err := h.service.Shorten(r.Context(), req.URL, req.ExpirationDays)
	if err != nil {
		h.writeInternalError(w, r, "put", err)
		return
	}
	h.recorder.LinkCreated()
	h.logger.Info("link created",
		"code", link.Code,
		"ttl_seconds", link.TTLSeconds(),
		"client_ip", h.clientIP(r),
	)

	h.writeJSON(w, http.StatusOK, CreateResponse{
		URL:  h.origin(r) + "/" + link.Code,
		Code: link.Code,
	})
}
