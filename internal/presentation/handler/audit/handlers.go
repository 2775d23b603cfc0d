package audit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/auth"
	"github.com/roach88/nyx/internal/infrastructure/json"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type Handler struct {
	audit domain.AuditRepository
}

func NewHandler(audit domain.AuditRepository) *Handler {
	return &Handler{audit: audit}
}

type listResponse struct {
	Logs []domain.AuditLogEntry `json:"logs"`
}

// ListHandler returns the caller's most recent audit entries.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		json.WriteUnauthorizedError(w, errors.New("unauthorized"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			json.WriteBadRequestError(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := h.audit.ListByUser(r.Context(), userID, limit)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}

	json.Write(w, http.StatusOK, listResponse{Logs: entries})
}
