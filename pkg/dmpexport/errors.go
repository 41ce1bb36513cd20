package dmpexport

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

// ErrMissingKey is returned (wrapped) when the localizer has no phrase
// for a narrative key.
var ErrMissingKey = i18n.ErrMissingKey

// DocumentError represents an error while reading, parsing or writing the
// document package.
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// UnknownTableError is returned for a table whose identifier cell holds a
// table sentinel the exporter does not know.
type UnknownTableError struct {
	Sentinel   string
	TableIndex int
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %d: unknown table sentinel %s", e.TableIndex, e.Sentinel)
}

// ByteSizeError is returned when a byte count cannot be rendered with the
// available size suffixes.
type ByteSizeError struct {
	Value int64
}

func (e *ByteSizeError) Error() string {
	if e.Value < 0 {
		return fmt.Sprintf("byte size %d is negative", e.Value)
	}
	return fmt.Sprintf("byte size %d exceeds the largest size suffix", e.Value)
}

// UnresolvedTokenError reports placeholder tokens still present in a
// produced document.
type UnresolvedTokenError struct {
	Part   string
	Tokens []string
}

func (e *UnresolvedTokenError) Error() string {
	tokens := append([]string(nil), e.Tokens...)
	sort.Strings(tokens)
	return fmt.Sprintf("unresolved tokens in %s: %s", e.Part, strings.Join(tokens, ", "))
}

// RowCloneError is a recoverable failure to synthesize one table row.
// The export continues without that row and reports the error as a
// warning.
type RowCloneError struct {
	Table string
	Item  int
	Cause error
}

func (e *RowCloneError) Error() string {
	return fmt.Sprintf("%s: row for item %d: %v", e.Table, e.Item, e.Cause)
}

func (e *RowCloneError) Unwrap() error {
	return e.Cause
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Errors returns the collected errors.
func (m *MultiError) Errors() []error {
	return append([]error(nil), m.errors...)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// Unwrap lets errors.Is and errors.As look through the collection.
func (m *MultiError) Unwrap() []error {
	return m.errors
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var contextParts []string
	for _, k := range keys {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, e.Context[k]))
	}

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// RecoverError converts a panic recovery value to an error
func RecoverError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return fmt.Errorf("panic recovered: %w", v)
	case string:
		return fmt.Errorf("panic recovered: %s", v)
	default:
		return fmt.Errorf("panic recovered: %v", v)
	}
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}

// IsUnknownTableError checks if an error is an unknown table error
func IsUnknownTableError(err error) bool {
	var ue *UnknownTableError
	return errors.As(err, &ue)
}
