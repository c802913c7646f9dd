package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrorCategory classifies failures for the audit trail and structured logs
type ErrorCategory string

const (
	ErrorCategorySchema     ErrorCategory = "schema"
	ErrorCategoryRecord     ErrorCategory = "record"
	ErrorCategoryUnexpected ErrorCategory = "unexpected"
)

// SchemaError is returned when a dataset lacks required fields. The whole
// dataset is skipped.
type SchemaError struct {
	Source  string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required fields %s not found; fields present: %s",
		e.Source, quoteList(e.Missing), quoteList(e.Found))
}

// Category returns ErrorCategorySchema
func (e *SchemaError) Category() ErrorCategory { return ErrorCategorySchema }

// RecordMalformedError describes a change record that could not be fully
// flattened into a report row. Only that row is affected.
type RecordMalformedError struct {
	Source string
	Index  int      // position of the record within its file
	Fields []string // report columns replaced with the placeholder
}

func (e *RecordMalformedError) Error() string {
	return fmt.Sprintf("%s: change record %d malformed in %s", e.Source, e.Index, strings.Join(e.Fields, ", "))
}

// Category returns ErrorCategoryRecord
func (e *RecordMalformedError) Category() ErrorCategory { return ErrorCategoryRecord }

// UnexpectedFailure wraps any other fault raised while processing one file
type UnexpectedFailure struct {
	Source string
	Err    error
}

func (e *UnexpectedFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *UnexpectedFailure) Unwrap() error {
	return e.Err
}

// Category returns ErrorCategoryUnexpected
func (e *UnexpectedFailure) Category() ErrorCategory { return ErrorCategoryUnexpected }

// NewUnexpectedFailure wraps err unless it is already a file-scoped error
func NewUnexpectedFailure(source string, err error) error {
	var schemaErr *SchemaError
	var unexpected *UnexpectedFailure
	if errors.As(err, &schemaErr) || errors.As(err, &unexpected) {
		return err
	}
	return &UnexpectedFailure{Source: source, Err: err}
}

// CategoryOf returns the category of err, defaulting to unexpected
func CategoryOf(err error) ErrorCategory {
	var categorized interface{ Category() ErrorCategory }
	if errors.As(err, &categorized) {
		return categorized.Category()
	}
	return ErrorCategoryUnexpected
}

// ErrorReporter logs processing failures as structured events
type ErrorReporter struct {
	logger *zap.Logger
}

// NewErrorReporter creates a new error reporter
func NewErrorReporter(logger *zap.Logger) *ErrorReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorReporter{logger: logger}
}

// ReportError logs err with its category and any details the error carries
func (r *ErrorReporter) ReportError(source string, err error) {
	fields := []zap.Field{
		zap.String("source", source),
		zap.String("category", string(CategoryOf(err))),
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.Error(err),
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		fields = append(fields,
			zap.Strings("missing", schemaErr.Missing),
			zap.Strings("found", schemaErr.Found))
	}

	var recordErr *RecordMalformedError
	if errors.As(err, &recordErr) {
		fields = append(fields,
			zap.Int("record", recordErr.Index),
			zap.Strings("fields", recordErr.Fields))
		r.logger.Warn("malformed change record", fields...)
		return
	}

	r.logger.Error("file processing failed", fields...)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
