package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/logging"
	"github.com/roach88/nyx/internal/infrastructure/metrics"
)

// Reconciler applies a client's offline edit batch against server state
// with last-write-wins.
//
// LWW is a timestamp heuristic, not a causal merge: the losing side's edit
// is discarded whole. It is only sound while one device syncs at a time;
// two concurrent syncs for the same record can both read a stale server
// timestamp and both win, with the later upsert silently overwriting the
// earlier. Accepted for the single-active-device usage model; closing it
// would take a conditional upsert guarded by the previously read
// timestamp.
type Reconciler struct {
	store  domain.Store
	logger logging.Logger
	now    func() time.Time
}

func NewReconciler(store domain.Store, logger logging.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Reconcile processes changes strictly in input order and returns exactly
// one outcome per change, in the same order. A change's failure never
// aborts the batch; there is no cancellation mid-batch either — once
// started, every input gets its outcome.
func (r *Reconciler) Reconcile(ctx context.Context, userID string, changes []domain.Change) []domain.SyncOutcome {
	outcomes := make([]domain.SyncOutcome, 0, len(changes))

	for _, change := range changes {
		outcome := r.reconcileOne(ctx, userID, change)
		metrics.SyncChangesTotal.WithLabelValues(outcome.Status).Inc()
		outcomes = append(outcomes, outcome)
	}

	r.logger.Info(logging.Sync, logging.Reconcile, "batch reconciled", map[logging.ExtraKey]any{
		logging.UserId:    userID,
		logging.BatchSize: len(changes),
	})

	return outcomes
}

// reconcileOne is one change's isolated failure boundary: errors and
// panics become an error outcome, nothing propagates.
func (r *Reconciler) reconcileOne(ctx context.Context, userID string, change domain.Change) (outcome domain.SyncOutcome) {
	outcome = domain.SyncOutcome{
		Table: change.Table,
		ID:    change.Data.ID(),
	}

	defer func() {
		if rec := recover(); rec != nil {
			outcome.Status = domain.SyncStatusError
			outcome.Error = fmt.Sprintf("panic: %v", rec)
		}
	}()

	fail := func(err error) domain.SyncOutcome {
		r.logger.Warn(logging.Sync, logging.Reconcile, "change failed", map[logging.ExtraKey]any{
			logging.UserId:       userID,
			logging.TableName:    change.Table,
			logging.RecordId:     outcome.ID,
			logging.ErrorMessage: err.Error(),
		})
		outcome.Status = domain.SyncStatusError
		outcome.Error = err.Error()
		return outcome
	}

	if change.Table == "" {
		return fail(fmt.Errorf("change has no table"))
	}
	if outcome.ID == "" {
		return fail(fmt.Errorf("change has no record id"))
	}

	serverTS, exists, err := r.store.LastModified(ctx, change.Table, outcome.ID)
	if err != nil {
		return fail(err)
	}

	// Last-write-wins: a strictly later server timestamp rejects the
	// change. An unparseable client timestamp compares as the zero time,
	// so any existing server record wins.
	clientTS, _ := change.Data.LastModified()
	if exists && serverTS.After(clientTS) {
		outcome.Status = domain.SyncStatusConflictIgnored
		return outcome
	}

	winner := change.Data.Clone()
	winner[domain.FieldUserID] = userID
	winner[domain.FieldLastModified] = r.now().UTC()

	if err := r.store.Upsert(ctx, change.Table, winner); err != nil {
		return fail(err)
	}

	outcome.Status = domain.SyncStatusSynced
	return outcome
}
