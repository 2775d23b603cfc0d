package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/logging"
	"github.com/roach88/nyx/internal/infrastructure/metrics"
)

// Applier runs one mutation-pipeline invocation:
//
//	START → PAUSE_CHECK → SNAPSHOT → AUDIT → [APPLY] → DONE
//
// The pause check is the only exit that skips auditing. From the snapshot
// on, every failure is terminal for the invocation; there are no retries
// inside a single pass, and an audit entry that was written stays written
// even when the apply after it fails.
type Applier struct {
	store  domain.Store
	audit  domain.AuditRepository
	logger logging.Logger
	now    func() time.Time
}

type ApplyResult struct {
	Executed   bool
	ResultText string
}

func NewApplier(store domain.Store, audit domain.AuditRepository, logger logging.Logger) *Applier {
	return &Applier{
		store:  store,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

func (a *Applier) Apply(
	ctx context.Context,
	userID string,
	profile domain.UserProfile,
	mode domain.Mode,
	targetTable, targetID string,
	rawText string,
	action domain.Action,
) (ApplyResult, error) {
	result := ApplyResult{ResultText: rawText}

	// Pause gate. Fails before any snapshot or audit write; a paused
	// system leaves no trace of the rejected attempt.
	if profile.Paused() && mode == domain.ModeApply {
		metrics.MutationsTotal.WithLabelValues(string(mode), "forbidden").Inc()
		return result, domain.ErrForbidden
	}

	// Pre-mutation snapshot. A missing record is an empty snapshot, not a
	// failure; only a transport error is terminal here.
	var snapshot domain.Record
	if targetTable != "" && targetID != "" {
		current, err := a.store.Get(ctx, targetTable, targetID)
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			// no prior state to capture
		case err != nil:
			metrics.MutationsTotal.WithLabelValues(string(mode), "snapshot_error").Inc()
			return result, fmt.Errorf("snapshot %s/%s: %w", targetTable, targetID, err)
		default:
			snapshot = current
		}
	}

	reasoning := action.Reasoning
	if reasoning == "" {
		reasoning = rawText
	}

	// Mandatory audit write. Audit durability is a precondition for ever
	// mutating: a broken audit path must not allow untracked writes.
	entry := domain.NewAuditLogEntry(userID, actionLabel(mode, targetTable), reasoning, snapshot, targetTable, targetID)
	if err := a.audit.Record(ctx, entry); err != nil {
		a.logger.Error(logging.Assistant, logging.AuditTrail, "audit write failed", map[logging.ExtraKey]any{
			logging.UserId:       userID,
			logging.ActionLabel:  entry.Action,
			logging.ErrorMessage: err.Error(),
		})
		metrics.MutationsTotal.WithLabelValues(string(mode), "audit_error").Inc()
		return result, fmt.Errorf("%w: %w", domain.ErrAuditWriteFailed, err)
	}

	if mode != domain.ModeApply || !action.Applicable() {
		metrics.MutationsTotal.WithLabelValues(string(mode), "recorded").Inc()
		return result, nil
	}

	// Conditional apply. The server stamps user_id and last_modified;
	// whatever the payload claimed for those fields is discarded.
	data := action.Data.Clone()
	if data.ID() == "" && action.ID != "" {
		data[domain.FieldID] = action.ID
	}
	data[domain.FieldUserID] = userID
	data[domain.FieldLastModified] = a.now().UTC()

	if err := a.store.Upsert(ctx, action.Table, data); err != nil {
		a.logger.Error(logging.Assistant, logging.Pipeline, "apply failed after audit", map[logging.ExtraKey]any{
			logging.UserId:       userID,
			logging.TableName:    action.Table,
			logging.RecordId:     data.ID(),
			logging.ErrorMessage: err.Error(),
		})
		metrics.MutationsTotal.WithLabelValues(string(mode), "apply_error").Inc()
		return result, fmt.Errorf("%w: %w", domain.ErrApplyFailed, err)
	}

	a.logger.Info(logging.Assistant, logging.Pipeline, "mutation applied", map[logging.ExtraKey]any{
		logging.UserId:    userID,
		logging.TableName: action.Table,
		logging.RecordId:  data.ID(),
	})
	metrics.MutationsTotal.WithLabelValues(string(mode), "applied").Inc()

	result.Executed = true
	return result, nil
}

func actionLabel(mode domain.Mode, targetTable string) string {
	if targetTable == "" {
		targetTable = "GENERAL"
	}
	return fmt.Sprintf("%s_%s", mode, targetTable)
}
