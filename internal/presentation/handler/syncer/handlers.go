package syncer

import (
	"errors"
	"net/http"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/auth"
	"github.com/roach88/nyx/internal/infrastructure/json"
	"github.com/roach88/nyx/internal/infrastructure/ws"
	"github.com/roach88/nyx/internal/reconcile"
)

type Handler struct {
	reconciler *reconcile.Reconciler
	hub        *ws.Hub
}

func NewHandler(reconciler *reconcile.Reconciler, hub *ws.Hub) *Handler {
	return &Handler{
		reconciler: reconciler,
		hub:        hub,
	}
}

// SyncHandler reconciles a batch of offline edits. Per-change failures
// come back as data in the results list; only a structurally malformed
// request is an HTTP error.
func (h *Handler) SyncHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		json.WriteUnauthorizedError(w, errors.New("unauthorized"))
		return
	}

	var req syncRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	results := h.reconciler.Reconcile(r.Context(), userID, req.LocalChanges)

	for _, outcome := range results {
		if outcome.Status == domain.SyncStatusSynced {
			h.hub.Publish(ws.NewRecordChanged(userID, outcome.Table, outcome.ID, ws.SourceSync))
		}
	}

	json.Write(w, http.StatusOK, syncResponse{
		Status:  "Synchronization Complete",
		Results: results,
	})
}
