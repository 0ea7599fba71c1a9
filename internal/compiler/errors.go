package compiler

import "fmt"

// ErrKind discriminates the ways a compile can fail.
type ErrKind string

const (
	// ErrMalformedTable: a table row's cell count differs from the column count.
	ErrMalformedTable ErrKind = "malformed_table"
	// ErrImageUnavailable: an image reference is missing, unreadable or remote.
	ErrImageUnavailable ErrKind = "image_unavailable"
	// ErrDepthExceeded: quote/list nesting went past the configured cap.
	ErrDepthExceeded ErrKind = "depth_exceeded"
	// ErrParserContractViolation: the input AST has a shape the node contract
	// forbids, e.g. a Table child that is not a header or row.
	ErrParserContractViolation ErrKind = "parser_contract_violation"
)

// RenderError is the single error type crossing the compile boundary. A
// compile that returns one produced no tree; partial trees are never
// returned.
type RenderError struct {
	Kind   ErrKind
	Path   string // The offending image path for ErrImageUnavailable.
	Detail string
	Err    error // Underlying cause, if any.
}

func (e *RenderError) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Err }
