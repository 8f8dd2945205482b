// Package toolerr defines the error taxonomy for tool registration and
// invocation. Definition errors are raised while building the catalog and
// are fatal to that tool's registration; runtime errors are converted into
// structured invocation envelopes and never cross the dispatch boundary.
package toolerr

import "fmt"

// DefinitionError reports a problem with a tool's descriptor or signature
// found at registration time.
type DefinitionError struct {
	Tool    string
	Message string
	Err     error
}

func (e *DefinitionError) Error() string {
	msg := e.Message
	if e.Tool != "" {
		msg = fmt.Sprintf("definition of tool %q: %s", e.Tool, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// Definitionf builds a DefinitionError for the named tool.
func Definitionf(tool, format string, args ...interface{}) *DefinitionError {
	return &DefinitionError{Tool: tool, Message: fmt.Sprintf(format, args...)}
}

// InputError reports a failure deserializing or coercing a tool call
// argument. Non-retryable.
type InputError struct {
	Message          string
	DeveloperMessage string
}

func (e *InputError) Error() string { return e.Message }

// OutputError reports a failure serializing a tool's return value to its
// declared wire type. This is a bug in the tool, not in the request.
type OutputError struct {
	Message          string
	DeveloperMessage string
}

func (e *OutputError) Error() string { return e.Message }

// ExecutionError is an ordinary tool failure. Non-retryable by default.
type ExecutionError struct {
	Message          string
	DeveloperMessage string
	Err              error
}

func (e *ExecutionError) Error() string { return e.Message }

func (e *ExecutionError) Unwrap() error { return e.Err }

// RetryableError tells the orchestrator the call may succeed if retried,
// optionally after a delay and with corrective context for the model.
type RetryableError struct {
	Message                 string
	DeveloperMessage        string
	AdditionalPromptContent string
	RetryAfterMs            int
}

func (e *RetryableError) Error() string { return e.Message }

// UpstreamError is a failure reported by a third-party service a tool
// called. Retryability follows the status code: 429 and 5xx are worth
// retrying, everything else is not.
type UpstreamError struct {
	Message          string
	DeveloperMessage string
	StatusCode       int
	RetryAfterMs     int
}

func (e *UpstreamError) Error() string { return e.Message }

// CanRetry reports whether the upstream failure is transient.
func (e *UpstreamError) CanRetry() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// RateLimited builds an UpstreamError for a 429 with a retry hint.
func RateLimited(message string, retryAfterMs int) *UpstreamError {
	return &UpstreamError{Message: message, StatusCode: 429, RetryAfterMs: retryAfterMs}
}
