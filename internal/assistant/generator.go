package assistant

import "context"

// Generator produces free-form suggestion text for a prompt. The text may
// embed a structured payload; it may just as well not.
type Generator interface {
	Generate(ctx context.Context, prompt string, extra any) (string, error)
}
