package ws

// Event is one message pushed to a connected dashboard.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`

	// UserID routes the event to that user's connections. Not serialized.
	UserID string `json:"-"`
}

const (
	RecordChanged = "record_changed"
)

// Sources for a record change.
const (
	SourceAssistant = "assistant"
	SourceSync      = "sync"
)

type RecordChangedPayload struct {
	Table  string `json:"table"`
	ID     string `json:"id"`
	Source string `json:"source"`
}

func NewRecordChanged(userID, table, id, source string) *Event {
	return &Event{
		Type:   RecordChanged,
		UserID: userID,
		Data: RecordChangedPayload{
			Table:  table,
			ID:     id,
			Source: source,
		},
	}
}
