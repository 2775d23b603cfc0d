package assistant

// thinkRequest asks the assistant to reason about the prompt and, in
// APPLY mode, act on the result.
type thinkRequest struct {
	Prompt      string `json:"prompt"`
	Context     any    `json:"context,omitempty"`
	Mode        string `json:"mode"`
	TargetTable string `json:"target_table,omitempty"`
	TargetID    string `json:"target_id,omitempty"`
}

type thinkResponse struct {
	Result   string `json:"result"`
	Mode     string `json:"mode"`
	Executed bool   `json:"executed"`
}
