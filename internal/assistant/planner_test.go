package assistant

import (
	"testing"

	"github.com/roach88/nyx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_NoStructure(t *testing.T) {
	t.Parallel()

	raw := "I think you should reorganize your week around deep work."
	action := NewPlanner().Plan(raw)

	assert.Empty(t, action.Table)
	assert.Empty(t, action.Data)
	assert.Equal(t, raw, action.Reasoning)
}

func TestPlan_FencedPayload(t *testing.T) {
	t.Parallel()

	raw := "Here is my suggestion:\n```json\n" +
		`{"payload": {"table": "tasks", "id": "t-1", "data": {"id": "t-1", "title": "Review notes"}, "reasoning": "stale task"}}` +
		"\n```\nLet me know."

	action := NewPlanner().Plan(raw)

	require.Equal(t, "tasks", action.Table)
	assert.Equal(t, "t-1", action.ID)
	assert.Equal(t, "Review notes", action.Data["title"])
	assert.Equal(t, "stale task", action.Reasoning)
}

func TestPlan_PayloadWithoutReasoning_FallsBackToRawText(t *testing.T) {
	t.Parallel()

	raw := `{"payload": {"table": "notes", "data": {"id": "n-9", "body": "hi"}}}`
	action := NewPlanner().Plan(raw)

	require.Equal(t, "notes", action.Table)
	assert.Equal(t, raw, action.Reasoning)
}

func TestPlan_MalformedJSON_Degrades(t *testing.T) {
	t.Parallel()

	raw := `{"payload": {"table": "tasks", "data": {` // truncated
	action := NewPlanner().Plan(raw)

	assert.Equal(t, domain.Action{Reasoning: raw}, action)
}

func TestPlan_BracesInsideStrings(t *testing.T) {
	t.Parallel()

	raw := `prefix {"payload": {"table": "notes", "data": {"id": "n-1", "body": "a } and { inside"}}} suffix`
	action := NewPlanner().Plan(raw)

	require.Equal(t, "notes", action.Table)
	assert.Equal(t, "a } and { inside", action.Data["body"])
}

func TestPlan_SkipsFragmentsWithoutPayload(t *testing.T) {
	t.Parallel()

	raw := `{"note": "just chatting"} then {"payload": {"table": "tasks", "data": {"id": "t-2"}}}`
	action := NewPlanner().Plan(raw)

	assert.Equal(t, "tasks", action.Table)
}

func TestPlan_EmptyText(t *testing.T) {
	t.Parallel()

	action := NewPlanner().Plan("")
	assert.Equal(t, domain.Action{}, action)
}
