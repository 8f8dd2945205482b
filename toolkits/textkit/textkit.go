// Package textkit is a builtin toolkit of text utilities demonstrating
// optional parameters, enums, and context-aware tools.
package textkit

import (
	"context"
	"strings"

	"github.com/bobmcallan/toolgate/internal/tool"
)

// CaseMode selects a text transformation.
type CaseMode string

const (
	CaseUpper CaseMode = "upper"
	CaseLower CaseMode = "lower"
	CaseTitle CaseMode = "title"
)

// EnumValues lists the closed set of case modes.
func (CaseMode) EnumValues() []string {
	return []string{string(CaseUpper), string(CaseLower), string(CaseTitle)}
}

// Toolkit returns the textkit toolkit descriptor.
func Toolkit() tool.Toolkit {
	return tool.Toolkit{
		Name:        "Text",
		Version:     "1.0.0",
		Description: "Text manipulation tools",
		Tools: []tool.Descriptor{
			{
				Func:        Transform,
				Name:        "Transform",
				Description: "Change the casing of a piece of text",
				Params: []tool.Param{
					{Name: "text", Description: "The text to transform"},
					{Name: "mode", Description: "The casing to apply", Default: string(CaseLower)},
				},
				OutputDescription: "The transformed text",
			},
			{
				Func:        Repeat,
				Name:        "Repeat",
				Description: "Repeat a string a number of times, joined by a separator",
				Params: []tool.Param{
					{Name: "text", Description: "The text to repeat"},
					{Name: "count", Description: "How many times to repeat it"},
					{Name: "separator", Description: "Placed between repetitions"},
				},
				OutputDescription: "The repeated text",
			},
		},
	}
}

// Transform applies the selected casing to text.
func Transform(ctx context.Context, text string, mode CaseMode) (string, error) {
	_ = ctx
	switch mode {
	case CaseUpper:
		return strings.ToUpper(text), nil
	case CaseLower:
		return strings.ToLower(text), nil
	case CaseTitle:
		return titleCase(text), nil
	}
	return text, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Repeat joins count copies of text with separator. Separator is
// optional and defaults to the empty string.
func Repeat(text string, count int, separator *string) string {
	sep := ""
	if separator != nil {
		sep = *separator
	}
	parts := make([]string, count)
	for i := range parts {
		parts[i] = text
	}
	return strings.Join(parts, sep)
}
