// Package mathkit is a small builtin toolkit of arithmetic tools, mostly
// useful for smoke-testing a worker end to end.
package mathkit

import (
	"fmt"
	"math"

	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/toolerr"
)

// Toolkit returns the mathkit toolkit descriptor.
func Toolkit() tool.Toolkit {
	return tool.Toolkit{
		Name:        "Math",
		Version:     "1.0.0",
		Description: "Basic arithmetic tools",
		Tools: []tool.Descriptor{
			{
				Func:        Add,
				Name:        "Add",
				Description: "Add two integers",
				Params: []tool.Param{
					{Name: "a", Description: "The first integer"},
					{Name: "b", Description: "The second integer"},
				},
				OutputDescription: "The sum of a and b",
			},
			{
				Func:        Divide,
				Name:        "Divide",
				Description: "Divide one number by another",
				Params: []tool.Param{
					{Name: "dividend", Description: "The number to divide"},
					{Name: "divisor", Description: "The number to divide by"},
				},
				OutputDescription: "The quotient",
			},
			{
				Func:        Sqrt,
				Name:        "Sqrt",
				Description: "Compute the square root of a number",
				Params: []tool.Param{
					{Name: "value", Description: "A non-negative number"},
				},
				OutputDescription: "The square root",
			},
		},
	}
}

// Add returns the sum of two integers.
func Add(a, b int) int {
	return a + b
}

// Divide divides dividend by divisor.
func Divide(dividend, divisor float64) (float64, error) {
	if divisor == 0 {
		return 0, &toolerr.RetryableError{
			Message:                 "division by zero",
			AdditionalPromptContent: "The divisor must be a non-zero number. Pick a different divisor.",
		}
	}
	return dividend / divisor, nil
}

// Sqrt computes the square root of a non-negative number.
func Sqrt(value float64) (float64, error) {
	if value < 0 {
		return 0, fmt.Errorf("cannot take the square root of a negative number")
	}
	return math.Sqrt(value), nil
}
