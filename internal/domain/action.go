package domain

// Mode selects what the mutation pipeline is allowed to do with an action.
type Mode string

const (
	ModeSuggest Mode = "SUGGEST"
	ModeApply   Mode = "APPLY"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSuggest, ModeApply:
		return Mode(s), true
	default:
		return "", false
	}
}

// Action is the canonical edit extracted from a suggestion. Derived per
// request and never persisted as-is; only its audit trail survives.
type Action struct {
	Table     string
	ID        string
	Data      Record
	Reasoning string
}

// Applicable reports whether the action carries enough structure for the
// apply step: both a table and a non-empty data payload.
func (a Action) Applicable() bool {
	return a.Table != "" && len(a.Data) > 0
}

// Change is one unit of a sync batch: a table name and a full client-side
// record carrying id and last_modified.
type Change struct {
	Table string `json:"table"`
	Data  Record `json:"data"`
}

// Sync outcome statuses, one per input change.
const (
	SyncStatusSynced          = "synced"
	SyncStatusConflictIgnored = "conflict_ignored"
	SyncStatusError           = "error"
)

type SyncOutcome struct {
	Table  string `json:"table"`
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
