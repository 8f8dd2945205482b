// Package executor validates wire inputs against a materialized tool's
// schema, invokes the callable, and wraps the outcome in an invocation
// envelope. It holds no state, is safe for concurrent use, and is the last
// line of defense: no tool failure, classified or not, escapes it.
package executor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/bobmcallan/toolgate/internal/catalog"
	"github.com/bobmcallan/toolgate/internal/schema"
	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/toolerr"
	"github.com/bobmcallan/toolgate/internal/wire"
)

// Run executes a materialized tool against raw wire inputs. The returned
// envelope always carries the invocation id; Duration covers only the time
// spent inside the callable, not validation or serialization.
func Run(ctx context.Context, mt *catalog.MaterializedTool, inputs map[string]interface{}, tctx *tool.Context) wire.InvocationResponse {
	invocationID := ""
	if tctx != nil {
		invocationID = tctx.InvocationID
	}

	args, err := prepareArgs(ctx, mt, inputs, tctx)
	if err != nil {
		return fail(invocationID, 0, err)
	}

	start := time.Now()
	results, callErr := call(mt.Binding, args)
	duration := float64(time.Since(start)) / float64(time.Millisecond)

	if callErr != nil {
		return fail(invocationID, duration, callErr)
	}

	value, serr := serializeOutput(mt, results)
	if serr != nil {
		return fail(invocationID, duration, serr)
	}

	resp := wire.InvocationResponse{
		InvocationID: invocationID,
		Duration:     duration,
		FinishedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Success:      true,
		Output:       wire.Output{Value: value, Logs: invocationLogs(mt)},
	}
	return resp
}

// prepareArgs validates the raw inputs and coerces them into the
// reflect.Value slice for the call. Validation failures never reach the
// callable.
func prepareArgs(ctx context.Context, mt *catalog.MaterializedTool, inputs map[string]interface{}, tctx *tool.Context) ([]reflect.Value, error) {
	if inputs == nil {
		inputs = map[string]interface{}{}
	}

	result, err := mt.InputValidator.Validate(gojsonschema.NewGoLoader(inputs))
	if err != nil {
		return nil, &toolerr.InputError{
			Message:          "Error in tool input deserialization",
			DeveloperMessage: err.Error(),
		}
	}
	if !result.Valid() {
		detail := ""
		for _, desc := range result.Errors() {
			if detail != "" {
				detail += "; "
			}
			detail += desc.String()
		}
		return nil, &toolerr.InputError{
			Message:          "Error in tool input deserialization",
			DeveloperMessage: detail,
		}
	}

	b := mt.Binding
	args := make([]reflect.Value, 0, len(b.Params)+2)
	if b.TakesContext {
		if ctx == nil {
			ctx = context.Background()
		}
		args = append(args, reflect.ValueOf(ctx))
	}
	if b.TakesToolContext {
		if tctx == nil {
			tctx = &tool.Context{}
		}
		args = append(args, reflect.ValueOf(tctx))
	}
	for _, pb := range b.Params {
		v, err := coerceParam(pb, inputs)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// call invokes the function, converting panics and returned errors into
// the toolerr taxonomy.
func call(b *schema.Binding, args []reflect.Value) (results []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = &toolerr.ExecutionError{
				Message:          "Error in tool execution",
				DeveloperMessage: fmt.Sprintf("panic in tool: %v", r),
			}
		}
	}()

	results = b.Func.Call(args)

	if b.Output.HasError {
		n := len(results)
		if e, _ := results[n-1].Interface().(error); e != nil {
			return nil, classify(e)
		}
		results = results[:n-1]
	}
	return results, nil
}

// classify maps an error returned by a tool onto the taxonomy. Anything
// unrecognized is downgraded to a non-retryable execution error.
func classify(err error) error {
	var retryable *toolerr.RetryableError
	var input *toolerr.InputError
	var output *toolerr.OutputError
	var upstream *toolerr.UpstreamError
	var execution *toolerr.ExecutionError

	switch {
	case errors.As(err, &retryable):
		return retryable
	case errors.As(err, &input):
		return input
	case errors.As(err, &output):
		return output
	case errors.As(err, &upstream):
		return upstream
	case errors.As(err, &execution):
		return execution
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &toolerr.ExecutionError{
			Message:          "Tool execution canceled",
			DeveloperMessage: err.Error(),
			Err:              err,
		}
	default:
		return &toolerr.ExecutionError{
			Message:          "Error in tool execution",
			DeveloperMessage: err.Error(),
			Err:              err,
		}
	}
}

// fail builds a failure envelope from a classified error.
func fail(invocationID string, duration float64, err error) wire.InvocationResponse {
	ce := &wire.CallError{Message: err.Error()}

	var retryable *toolerr.RetryableError
	var input *toolerr.InputError
	var output *toolerr.OutputError
	var upstream *toolerr.UpstreamError
	var execution *toolerr.ExecutionError

	switch {
	case errors.As(err, &retryable):
		ce.DeveloperMessage = retryable.DeveloperMessage
		ce.CanRetry = true
		ce.AdditionalPromptContent = retryable.AdditionalPromptContent
		ce.RetryAfterMs = retryable.RetryAfterMs
	case errors.As(err, &input):
		ce.DeveloperMessage = input.DeveloperMessage
	case errors.As(err, &output):
		ce.DeveloperMessage = output.DeveloperMessage
	case errors.As(err, &upstream):
		ce.DeveloperMessage = upstream.DeveloperMessage
		ce.CanRetry = upstream.CanRetry()
		ce.RetryAfterMs = upstream.RetryAfterMs
	case errors.As(err, &execution):
		ce.DeveloperMessage = execution.DeveloperMessage
	}

	return wire.InvocationResponse{
		InvocationID: invocationID,
		Duration:     duration,
		FinishedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		Success:      false,
		Output:       wire.Output{Error: ce},
	}
}

func invocationLogs(mt *catalog.MaterializedTool) []wire.CallLog {
	if mt.Definition.Deprecated == "" {
		return nil
	}
	return []wire.CallLog{{
		Message: mt.Definition.Deprecated,
		Level:   "warning",
		Subtype: "deprecation",
	}}
}
