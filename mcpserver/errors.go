package mcpserver

import (
	"fmt"
)

// ErrorCategory classifies a failed tool call
type ErrorCategory string

const (
	ErrorCategoryValidation ErrorCategory = "validation"
	ErrorCategoryRateLimit  ErrorCategory = "rate_limit"
	ErrorCategoryProcessing ErrorCategory = "processing"
)

// ToolError is returned to the client as an error result
type ToolError struct {
	Category  ErrorCategory
	Tool      string
	RequestID string
	Err       error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("[%s] %s: %v (request: %s)", e.Category, e.Tool, e.Err, e.RequestID)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func newToolError(category ErrorCategory, tool, requestID string, err error) *ToolError {
	return &ToolError{Category: category, Tool: tool, RequestID: requestID, Err: err}
}
