package assistant

import (
	"errors"
	"net/http"

	"github.com/roach88/nyx/internal/assistant"
	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/auth"
	"github.com/roach88/nyx/internal/infrastructure/json"
	"github.com/roach88/nyx/internal/infrastructure/logging"
	"github.com/roach88/nyx/internal/infrastructure/ws"
)

const pausedMessage = "System PAUSED. No actions can be applied."

type Handler struct {
	profiles  domain.ProfileRepository
	generator assistant.Generator
	planner   *assistant.Planner
	applier   *assistant.Applier
	hub       *ws.Hub
	logger    logging.Logger
}

func NewHandler(
	profiles domain.ProfileRepository,
	generator assistant.Generator,
	planner *assistant.Planner,
	applier *assistant.Applier,
	hub *ws.Hub,
	logger logging.Logger,
) *Handler {
	return &Handler{
		profiles:  profiles,
		generator: generator,
		planner:   planner,
		applier:   applier,
		hub:       hub,
		logger:    logger,
	}
}

// ThinkHandler runs the full AI path: generator → planner → applier. The
// pause state is read fresh from the store on every request so the gate
// holds across server instances.
func (h *Handler) ThinkHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		json.WriteUnauthorizedError(w, errors.New("unauthorized"))
		return
	}

	var req thinkRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.Prompt == "" {
		json.WriteBadRequestError(w, "prompt is required")
		return
	}

	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		json.WriteBadRequestError(w, "mode must be SUGGEST or APPLY")
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	rawText, err := h.generator.Generate(r.Context(), req.Prompt, req.Context)
	if err != nil {
		// The generator being down is not a pipeline failure: degrade so
		// the attempt still leaves an audit trail.
		h.logger.Warn(logging.Assistant, logging.Suggestion, "generator unavailable", map[logging.ExtraKey]any{
			logging.UserId:       userID,
			logging.ErrorMessage: err.Error(),
		})
		rawText = "suggestion unavailable: " + err.Error()
	}

	action := h.planner.Plan(rawText)

	result, err := h.applier.Apply(r.Context(), userID, profile, mode, req.TargetTable, req.TargetID, rawText, action)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			json.WriteError(w, http.StatusForbidden, errors.New(pausedMessage))
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if result.Executed {
		id := action.Data.ID()
		if id == "" {
			id = action.ID
		}
		h.hub.Publish(ws.NewRecordChanged(userID, action.Table, id, ws.SourceAssistant))
	}

	json.Write(w, http.StatusOK, thinkResponse{
		Result:   result.ResultText,
		Mode:     string(mode),
		Executed: result.Executed,
	})
}
