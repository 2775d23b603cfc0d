package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry records one invocation of the mutation pipeline,
// successful or not. Append-only.
type AuditLogEntry struct {
	ID                string    `bson:"_id" json:"id"`
	UserID            string    `bson:"user_id" json:"userId"`
	Action            string    `bson:"action" json:"action"`
	AIReasoning       string    `bson:"ai_reasoning" json:"aiReasoning"`
	SnapshotBefore    Record    `bson:"snapshot_before,omitempty" json:"snapshotBefore,omitempty"`
	SnapshotTableName string    `bson:"snapshot_table_name,omitempty" json:"snapshotTableName,omitempty"`
	SnapshotTableID   string    `bson:"snapshot_table_id,omitempty" json:"snapshotTableId,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
}

type AuditRepository interface {
	Record(ctx context.Context, entry *AuditLogEntry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]AuditLogEntry, error)
	EnsureIndexes(ctx context.Context) error
}

func NewAuditLogEntry(userID, action, reasoning string, snapshot Record, table, id string) *AuditLogEntry {
	return &AuditLogEntry{
		ID:                uuid.NewString(),
		UserID:            userID,
		Action:            action,
		AIReasoning:       reasoning,
		SnapshotBefore:    snapshot,
		SnapshotTableName: table,
		SnapshotTableID:   id,
		CreatedAt:         time.Now().UTC(),
	}
}
