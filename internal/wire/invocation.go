package wire

// ToolReference identifies the tool an invocation targets. An empty
// version means "whatever version the catalog currently serves".
type ToolReference struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Authorization carries the token the orchestrator obtained for the
// end user, passed through to the tool untouched.
type Authorization struct {
	Token string `json:"token"`
}

// InvocationContext is the per-call context block of an invocation request.
type InvocationContext struct {
	Authorization *Authorization    `json:"authorization,omitempty"`
	Secrets       map[string]string `json:"secrets,omitempty"`
}

// InvocationRequest is the JSON body of POST /worker/tools/invoke.
type InvocationRequest struct {
	Tool         ToolReference          `json:"tool"`
	InvocationID string                 `json:"invocation_id,omitempty"`
	Inputs       map[string]interface{} `json:"inputs"`
	Context      *InvocationContext     `json:"context,omitempty"`
}

// CallError is the structured failure half of an invocation output.
type CallError struct {
	Message                 string `json:"message"`
	DeveloperMessage        string `json:"developer_message,omitempty"`
	CanRetry                bool   `json:"can_retry"`
	AdditionalPromptContent string `json:"additional_prompt_content,omitempty"`
	RetryAfterMs            int    `json:"retry_after_ms,omitempty"`
}

// CallLog is an advisory message attached to an invocation output,
// e.g. a deprecation notice.
type CallLog struct {
	Message string `json:"message"`
	Level   string `json:"level"`
	Subtype string `json:"subtype,omitempty"`
}

// Output is exactly one of a value or an error, plus optional logs.
type Output struct {
	Value interface{} `json:"value,omitempty"`
	Error *CallError  `json:"error,omitempty"`
	Logs  []CallLog   `json:"logs,omitempty"`
}

// InvocationResponse is the JSON body returned for every tool invocation,
// success or failure. Duration is wall-clock milliseconds spent inside the
// tool callable only.
type InvocationResponse struct {
	InvocationID string  `json:"invocation_id"`
	Duration     float64 `json:"duration"`
	FinishedAt   string  `json:"finished_at"`
	Success      bool    `json:"success"`
	Output       Output  `json:"output"`
}
