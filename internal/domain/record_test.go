package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_LastModified(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		value  any
		want   time.Time
		wantOK bool
	}{
		{"time value", ts, ts, true},
		{"rfc3339 string", "2024-01-01T00:00:00Z", ts, true},
		{"garbage string", "yesterday-ish", time.Time{}, false},
		{"wrong type", 42, time.Time{}, false},
		{"absent", nil, time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Record{}
			if tc.value != nil {
				rec[FieldLastModified] = tc.value
			}

			got, ok := rec.LastModified()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAction_Applicable(t *testing.T) {
	t.Parallel()

	assert.False(t, Action{}.Applicable())
	assert.False(t, Action{Table: "tasks"}.Applicable())
	assert.False(t, Action{Data: Record{"id": "1"}}.Applicable())
	assert.True(t, Action{Table: "tasks", Data: Record{"id": "1"}}.Applicable())
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Mode{"SUGGEST": ModeSuggest, "APPLY": ModeApply} {
		mode, ok := ParseMode(raw)
		assert.True(t, ok)
		assert.Equal(t, want, mode)
	}

	for _, raw := range []string{"", "apply", "DELETE"} {
		_, ok := ParseMode(raw)
		assert.False(t, ok)
	}
}
