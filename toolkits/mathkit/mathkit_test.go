package mathkit

import (
	"context"
	"errors"
	"testing"

	"github.com/bobmcallan/toolgate/internal/catalog"
	"github.com/bobmcallan/toolgate/internal/executor"
	"github.com/bobmcallan/toolgate/internal/toolerr"
)

func TestToolkitRegisters(t *testing.T) {
	cat := catalog.New()
	if err := cat.AddToolkit(Toolkit()); err != nil {
		t.Fatalf("toolkit registration failed: %v", err)
	}
	for _, name := range []string{"Math.Add", "Math.Divide", "Math.Sqrt"} {
		if !cat.Has(name) {
			t.Errorf("expected %s in the catalog", name)
		}
	}
}

func TestAdd(t *testing.T) {
	if got := Add(2, 3); got != 5 {
		t.Errorf("Add(2, 3) = %d, want 5", got)
	}
}

func TestDivide(t *testing.T) {
	got, err := Divide(10, 4)
	if err != nil || got != 2.5 {
		t.Errorf("Divide(10, 4) = %v, %v", got, err)
	}

	_, err = Divide(1, 0)
	var retryable *toolerr.RetryableError
	if !errors.As(err, &retryable) {
		t.Fatalf("expected a retryable error for division by zero, got %v", err)
	}
	if retryable.AdditionalPromptContent == "" {
		t.Error("expected corrective prompt content")
	}
}

func TestSqrt(t *testing.T) {
	got, err := Sqrt(9)
	if err != nil || got != 3 {
		t.Errorf("Sqrt(9) = %v, %v", got, err)
	}
	if _, err := Sqrt(-1); err == nil {
		t.Error("expected an error for a negative input")
	}
}

func TestDivideByZeroEnvelope(t *testing.T) {
	cat := catalog.New()
	if err := cat.AddToolkit(Toolkit()); err != nil {
		t.Fatalf("toolkit registration failed: %v", err)
	}
	mt, _ := cat.Get("Math.Divide", "")

	resp := executor.Run(context.Background(), mt, map[string]interface{}{"dividend": 1, "divisor": 0}, nil)
	if resp.Success {
		t.Fatal("expected a failure envelope")
	}
	if !resp.Output.Error.CanRetry {
		t.Error("division by zero is surfaced as retryable with guidance")
	}
	if resp.Output.Error.AdditionalPromptContent == "" {
		t.Error("expected prompt content in the envelope")
	}
}
