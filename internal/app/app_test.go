package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/config"
	"github.com/bobmcallan/toolgate/internal/tool"
)

func testLoggers() (*common.Logger, *slog.Logger) {
	return common.NewSilentLogger(), slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validToolkit() tool.Toolkit {
	return tool.Toolkit{
		Name:    "Math",
		Version: "1.0.0",
		Tools: []tool.Descriptor{{
			Func:        func(a, b int) int { return a + b },
			Name:        "Add",
			Description: "Add two integers",
			Params: []tool.Param{
				{Name: "a", Description: "first"},
				{Name: "b", Description: "second"},
			},
		}},
	}
}

func TestNew(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Worker.Secret = "s"
	logger, slogger := testLoggers()

	a, err := New(cfg, logger, slogger, []tool.Toolkit{validToolkit()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Catalog.Len() != 1 {
		t.Errorf("expected 1 tool, got %d", a.Catalog.Len())
	}
	if a.Worker == nil || a.History == nil {
		t.Error("expected worker and history to be built")
	}
	if a.MCPHandler != nil {
		t.Error("MCP handler must be nil when disabled")
	}
}

func TestNewWithMCP(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Worker.Secret = "s"
	cfg.MCP.Enabled = true
	logger, slogger := testLoggers()

	a, err := New(cfg, logger, slogger, []tool.Toolkit{validToolkit()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.MCPHandler == nil {
		t.Error("expected an MCP handler when enabled")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.NewDefaultConfig() // auth on, no secret
	logger, slogger := testLoggers()

	if _, err := New(cfg, logger, slogger, nil); err == nil {
		t.Fatal("expected initialization to fail without a worker secret")
	}
}

func TestNewAbortsOnBadToolkit(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Worker.Secret = "s"
	logger, slogger := testLoggers()

	bad := tool.Toolkit{
		Name:    "Broken",
		Version: "1.0.0",
		Tools:   []tool.Descriptor{{Func: func(a int) int { return a }, Name: "NoDesc"}},
	}
	if _, err := New(cfg, logger, slogger, []tool.Toolkit{bad}); err == nil {
		t.Fatal("expected initialization to fail on an undescribable tool")
	}
}
