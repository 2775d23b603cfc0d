package assistant

import (
	"encoding/json"

	"github.com/roach88/nyx/internal/domain"
)

// Planner extracts a canonical action from raw suggestion text. It is a
// best-effort heuristic, not a strict parser: the generator wraps its
// payload in prose, markdown fences, or nothing at all, and any of those
// must still yield an action the pipeline can audit.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// payloadEnvelope is the structured fragment the generator is prompted to
// emit: an object carrying a "payload" with the edit itself.
type payloadEnvelope struct {
	Payload *payloadBody `json:"payload"`
}

type payloadBody struct {
	Table     string         `json:"table"`
	ID        string         `json:"id"`
	Data      map[string]any `json:"data"`
	Reasoning string         `json:"reasoning"`
}

// Plan never fails. When no parseable payload is found the result is the
// empty action with Reasoning set to the raw text verbatim, so the audit
// trail still records what the generator said.
func (p *Planner) Plan(rawText string) domain.Action {
	action := domain.Action{Reasoning: rawText}

	for _, fragment := range jsonFragments(rawText) {
		var envelope payloadEnvelope
		if err := json.Unmarshal([]byte(fragment), &envelope); err != nil {
			continue
		}
		if envelope.Payload == nil {
			continue
		}

		body := envelope.Payload
		action.Table = body.Table
		action.ID = body.ID
		if len(body.Data) > 0 {
			action.Data = domain.Record(body.Data)
		}
		if body.Reasoning != "" {
			action.Reasoning = body.Reasoning
		}
		return action
	}

	return action
}

// jsonFragments returns every balanced top-level {...} substring of text,
// in order of appearance. Brace tracking skips string literals so prose
// like `{"note": "a } inside"}` survives.
func jsonFragments(text string) []string {
	var fragments []string

	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					fragments = append(fragments, text[start:i+1])
					start = -1
				}
			}
		}
	}

	return fragments
}
