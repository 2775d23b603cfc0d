package domain

import (
	"context"
	"time"
)

// Well-known record fields. Every table shares these; the rest of a record
// is free-form.
const (
	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldLastModified = "last_modified"
)

// Record is one row of any table. Heterogeneous by design: the dashboard
// stores tasks, notes, playlists and whatever else under the same
// id + last_modified envelope.
type Record map[string]any

func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// LastModified returns the record's timestamp. Accepts both time.Time
// (server-written records) and RFC3339 strings (client-submitted data);
// anything else reports false.
func (r Record) LastModified() (time.Time, bool) {
	switch v := r[FieldLastModified].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Store is the table-oriented persistence the cores run against: point
// read, point upsert, and a timestamp projection, all keyed by record id.
type Store interface {
	// Get returns the record with the given id, or ErrRecordNotFound.
	Get(ctx context.Context, table, id string) (Record, error)

	// Upsert writes the record keyed on its "id" field, replacing any
	// existing row.
	Upsert(ctx context.Context, table string, rec Record) error

	// LastModified projects only the last_modified timestamp of a record.
	// exists is false when no such record is stored.
	LastModified(ctx context.Context, table, id string) (ts time.Time, exists bool, err error)
}
