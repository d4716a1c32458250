// Package goerrors defines the two error kinds shared by the parser and
// the base built-in library: Syntax errors (grammar violations) and
// Logic errors (runtime type/arity/arithmetic mismatches).
//
// Formatting follows the source-context-with-caret convention used
// throughout this repository's CLI diagnostics.
package goerrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/goschem/token"
)

// Kind distinguishes where an error originated.
type Kind int

const (
	// Syntax errors come from the parser: malformed grammar.
	Syntax Kind = iota
	// Logic errors come from built-ins and the number model: type
	// mismatches, arity mismatches, division by zero, out-of-bounds
	// access, failed exact conversions.
	Logic
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Logic:
		return "Logic"
	default:
		return "Unknown"
	}
}

// SchemeError is the single error type produced by this module's core.
// Two SchemeErrors are equal when their Kind, Message and Location all
// match (see Equals) — the test suite relies on exact message strings.
type SchemeError struct {
	Kind     Kind
	Message  string
	Location *token.Position
}

func (e *SchemeError) Error() string {
	return e.Message
}

// Equals compares two errors structurally, the way the test suite
// expects (kind, message, location — not error identity).
func (e *SchemeError) Equals(other *SchemeError) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind || e.Message != other.Message {
		return false
	}
	switch {
	case e.Location == nil && other.Location == nil:
		return true
	case e.Location == nil || other.Location == nil:
		return false
	default:
		return *e.Location == *other.Location
	}
}

// NewSyntax builds a Syntax error at the given (possibly absent) location.
func NewSyntax(loc *token.Position, format string, args ...any) *SchemeError {
	return &SchemeError{Kind: Syntax, Message: fmt.Sprintf(format, args...), Location: loc}
}

// NewLogic builds a Logic error. Logic errors from built-ins never carry
// a location (the evaluator driver, if any, is responsible for attaching
// one from the call-site AST node).
func NewLogic(format string, args ...any) *SchemeError {
	return &SchemeError{Kind: Logic, Message: fmt.Sprintf(format, args...)}
}

// Format renders the error with a source-line and caret, mirroring the
// diagnostic convention used by this repository's CLI. If source is
// empty or the location is absent, Format falls back to a bare header.
func (e *SchemeError) Format(source string, color bool) string {
	var sb strings.Builder

	if e.Location == nil {
		sb.WriteString(fmt.Sprintf("%s error: ", e.Kind))
		sb.WriteString(e.Message)
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%s error at %d:%d\n", e.Kind, e.Location.Line, e.Location.Column))

	if line := sourceLine(source, int(e.Location.Line)); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Location.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+int(e.Location.Column)-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
