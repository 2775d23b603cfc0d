package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/roach88/nyx/internal/infrastructure/logging"
	"github.com/roach88/nyx/internal/persistence/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditRecorder struct {
	entries []*domain.AuditLogEntry
	err     error
}

func (a *auditRecorder) Record(_ context.Context, entry *domain.AuditLogEntry) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, entry)
	return nil
}

func (a *auditRecorder) ListByUser(context.Context, string, int) ([]domain.AuditLogEntry, error) {
	return nil, nil
}

func (a *auditRecorder) EnsureIndexes(context.Context) error { return nil }

// failingStore wraps a real store and forces errors on selected calls.
type failingStore struct {
	domain.Store
	upsertErr error
	getErr    error
}

func (s *failingStore) Upsert(ctx context.Context, table string, rec domain.Record) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	return s.Store.Upsert(ctx, table, rec)
}

func (s *failingStore) Get(ctx context.Context, table, id string) (domain.Record, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.Store.Get(ctx, table, id)
}

func newTestApplier(t *testing.T) (*Applier, *store.MemoryStore, *auditRecorder) {
	t.Helper()
	st := store.NewMemoryStore()
	audit := &auditRecorder{}
	return NewApplier(st, audit, logging.NewNopLogger()), st, audit
}

var testAction = domain.Action{
	Table:     "tasks",
	ID:        "t-1",
	Data:      domain.Record{"id": "t-1", "title": "Review notes", "last_modified": "1999-01-01T00:00:00Z"},
	Reasoning: "stale task",
}

func TestApply_PausedBlocksApplyBeforeAudit(t *testing.T) {
	t.Parallel()
	applier, st, audit := newTestApplier(t)

	paused := domain.UserProfile{ID: "u1", ActivePersona: domain.PersonaPaused}
	_, err := applier.Apply(context.Background(), "u1", paused, domain.ModeApply, "tasks", "t-1", "raw", testAction)

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, audit.entries, "pause gate must not leave an audit entry")
	_, err = st.Get(context.Background(), "tasks", "t-1")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestApply_PausedStillAllowsSuggest(t *testing.T) {
	t.Parallel()
	applier, _, audit := newTestApplier(t)

	paused := domain.UserProfile{ID: "u1", ActivePersona: domain.PersonaPaused}
	result, err := applier.Apply(context.Background(), "u1", paused, domain.ModeSuggest, "", "", "raw", testAction)

	require.NoError(t, err)
	assert.False(t, result.Executed)
	assert.Len(t, audit.entries, 1)
}

func TestApply_SuggestAuditsWithoutMutating(t *testing.T) {
	t.Parallel()
	applier, st, audit := newTestApplier(t)

	profile := domain.UserProfile{ID: "u1", ActivePersona: domain.PersonaDefault}
	result, err := applier.Apply(context.Background(), "u1", profile, domain.ModeSuggest, "tasks", "t-1", "raw text", testAction)

	require.NoError(t, err)
	assert.False(t, result.Executed)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "SUGGEST_tasks", audit.entries[0].Action)
	assert.Equal(t, "stale task", audit.entries[0].AIReasoning)

	_, err = st.Get(context.Background(), "tasks", "t-1")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestApply_ExecutesAndStampsServerFields(t *testing.T) {
	t.Parallel()
	applier, st, audit := newTestApplier(t)

	profile := domain.UserProfile{ID: "u1", ActivePersona: domain.PersonaDefault}
	result, err := applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "tasks", "t-1", "raw", testAction)

	require.NoError(t, err)
	assert.True(t, result.Executed)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "APPLY_tasks", audit.entries[0].Action)

	rec, err := st.Get(context.Background(), "tasks", "t-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", rec["user_id"])

	ts, ok := rec.LastModified()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, time.Minute,
		"last_modified must be server-assigned, not the payload's 1999 value")
}

func TestApply_ActionLabelFallsBackToGeneral(t *testing.T) {
	t.Parallel()
	applier, _, audit := newTestApplier(t)

	profile := domain.UserProfile{ID: "u1"}
	_, err := applier.Apply(context.Background(), "u1", profile, domain.ModeSuggest, "", "", "raw", domain.Action{Reasoning: "raw"})

	require.NoError(t, err)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "SUGGEST_GENERAL", audit.entries[0].Action)
}

func TestApply_SnapshotCapturesPriorState(t *testing.T) {
	t.Parallel()
	applier, st, audit := newTestApplier(t)

	prior := domain.Record{"id": "t-1", "title": "Old title", "user_id": "u1"}
	require.NoError(t, st.Upsert(context.Background(), "tasks", prior))

	profile := domain.UserProfile{ID: "u1"}
	_, err := applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "tasks", "t-1", "raw", testAction)
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, "Old title", entry.SnapshotBefore["title"])
	assert.Equal(t, "tasks", entry.SnapshotTableName)
	assert.Equal(t, "t-1", entry.SnapshotTableID)
}

func TestApply_MissingTargetYieldsEmptySnapshot(t *testing.T) {
	t.Parallel()
	applier, _, audit := newTestApplier(t)

	profile := domain.UserProfile{ID: "u1"}
	_, err := applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "tasks", "missing", "raw", testAction)

	require.NoError(t, err)
	require.Len(t, audit.entries, 1)
	assert.Empty(t, audit.entries[0].SnapshotBefore)
}

func TestApply_SnapshotTransportErrorIsTerminal(t *testing.T) {
	t.Parallel()
	st := &failingStore{Store: store.NewMemoryStore(), getErr: errors.New("connection reset")}
	audit := &auditRecorder{}
	applier := NewApplier(st, audit, logging.NewNopLogger())

	profile := domain.UserProfile{ID: "u1"}
	_, err := applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "tasks", "t-1", "raw", testAction)

	require.Error(t, err)
	assert.Empty(t, audit.entries)
}

func TestApply_AuditFailureBlocksMutation(t *testing.T) {
	t.Parallel()
	st := store.NewMemoryStore()
	audit := &auditRecorder{err: errors.New("disk full")}
	applier := NewApplier(st, audit, logging.NewNopLogger())

	profile := domain.UserProfile{ID: "u1"}
	_, err := applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "tasks", "t-1", "raw", testAction)

	require.ErrorIs(t, err, domain.ErrAuditWriteFailed)
	_, err = st.Get(context.Background(), "tasks", "t-1")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound, "a broken audit path must not allow untracked writes")
}

func TestApply_StoreFailureKeepsAuditEntry(t *testing.T) {
	t.Parallel()
	st := &failingStore{Store: store.NewMemoryStore(), upsertErr: errors.New("write rejected")}
	audit := &auditRecorder{}
	applier := NewApplier(st, audit, logging.NewNopLogger())

	profile := domain.UserProfile{ID: "u1"}
	result, err := applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "", "", "raw", testAction)

	require.ErrorIs(t, err, domain.ErrApplyFailed)
	assert.False(t, result.Executed)
	assert.Len(t, audit.entries, 1, "audit entry persists even when the apply after it fails")
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()
	applier, st, _ := newTestApplier(t)

	profile := domain.UserProfile{ID: "u1"}
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	applier.now = func() time.Time { return first }
	_, err := applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "", "", "raw", testAction)
	require.NoError(t, err)

	before, err := st.Get(context.Background(), "tasks", "t-1")
	require.NoError(t, err)

	applier.now = func() time.Time { return second }
	_, err = applier.Apply(context.Background(), "u1", profile, domain.ModeApply, "", "", "raw", testAction)
	require.NoError(t, err)

	after, err := st.Get(context.Background(), "tasks", "t-1")
	require.NoError(t, err)

	assert.Equal(t, first, before["last_modified"])
	assert.Equal(t, second, after["last_modified"])

	delete(before, "last_modified")
	delete(after, "last_modified")
	assert.Equal(t, before, after, "re-applying the same action only advances last_modified")
}
