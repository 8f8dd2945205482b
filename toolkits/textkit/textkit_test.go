package textkit

import (
	"context"
	"testing"

	"github.com/bobmcallan/toolgate/internal/catalog"
	"github.com/bobmcallan/toolgate/internal/executor"
)

func TestToolkitRegisters(t *testing.T) {
	cat := catalog.New()
	if err := cat.AddToolkit(Toolkit()); err != nil {
		t.Fatalf("toolkit registration failed: %v", err)
	}
	if !cat.Has("Text.Transform") || !cat.Has("Text.Repeat") {
		t.Error("expected both text tools in the catalog")
	}
}

func TestTransform(t *testing.T) {
	cases := []struct {
		mode CaseMode
		in   string
		want string
	}{
		{CaseUpper, "hello world", "HELLO WORLD"},
		{CaseLower, "Hello World", "hello world"},
		{CaseTitle, "hello wide world", "Hello Wide World"},
	}
	for _, tc := range cases {
		got, err := Transform(context.Background(), tc.in, tc.mode)
		if err != nil || got != tc.want {
			t.Errorf("Transform(%q, %s) = %q, %v; want %q", tc.in, tc.mode, got, err, tc.want)
		}
	}
}

func TestRepeat(t *testing.T) {
	sep := "-"
	if got := Repeat("ab", 3, &sep); got != "ab-ab-ab" {
		t.Errorf("Repeat with separator = %q", got)
	}
	if got := Repeat("ab", 2, nil); got != "abab" {
		t.Errorf("Repeat without separator = %q", got)
	}
	if got := Repeat("ab", 0, nil); got != "" {
		t.Errorf("Repeat zero times = %q", got)
	}
}

func TestTransformDefaultMode(t *testing.T) {
	cat := catalog.New()
	if err := cat.AddToolkit(Toolkit()); err != nil {
		t.Fatalf("toolkit registration failed: %v", err)
	}
	mt, _ := cat.Get("Text.Transform", "")

	// mode omitted: the declared default of lower applies
	resp := executor.Run(context.Background(), mt, map[string]interface{}{"text": "LOUD"}, nil)
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp.Output.Error)
	}
	if resp.Output.Value != "loud" {
		t.Errorf("expected loud, got %v", resp.Output.Value)
	}

	resp = executor.Run(context.Background(), mt, map[string]interface{}{"text": "quiet", "mode": "upper"}, nil)
	if !resp.Success || resp.Output.Value != "QUIET" {
		t.Errorf("expected QUIET, got %v", resp.Output.Value)
	}

	// explicit null selects the default, same as omitting the mode
	resp = executor.Run(context.Background(), mt, map[string]interface{}{"text": "NULL", "mode": nil}, nil)
	if !resp.Success || resp.Output.Value != "null" {
		t.Errorf("expected null to fall back to the default mode, got %v", resp.Output.Value)
	}

	resp = executor.Run(context.Background(), mt, map[string]interface{}{"text": "x", "mode": "sideways"}, nil)
	if resp.Success {
		t.Error("expected rejection of a mode outside the enum")
	}
}
