// Package diagnostics implements the analyzer's diagnostic buffer (C3):
// an append-only, never-aborting collector of {line, column, message}
// records produced by the lexer, parser, and checker.
package diagnostics

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/cslang/compiscript/internal/token"
)

// Phase identifies which stage of the pipeline raised a diagnostic.
type Phase string

const (
	PhaseLexer   Phase = "lexer"
	PhaseParser  Phase = "parser"
	PhaseChecker Phase = "checker"
)

// Code is a stable identifier for a class of diagnostic.
type Code string

const (
	// Lexer
	LIllegalChar   Code = "L001"
	LUnterminated  Code = "L002"

	// Parser
	PUnexpectedToken Code = "P001"
	PExpectedToken   Code = "P002"
	PBadNumber       Code = "P003"

	// Checker — scope errors
	CRedeclared   Code = "C001"
	CUndeclared   Code = "C002"
	CUnknownFunc  Code = "C003"

	// Checker — assignability errors
	CInitMismatch     Code = "C010"
	CAssignMismatch   Code = "C011"
	CArgMismatch      Code = "C012"
	CReturnMismatch   Code = "C013"
	CArrayElemMismatch Code = "C014"

	// Checker — operator errors
	CNonNumericOperand  Code = "C020"
	CNonBooleanOperand  Code = "C021"
	CUnaryMismatch      Code = "C022"

	// Checker — reference errors
	CUnknownClass     Code = "C030"
	CUnknownMember    Code = "C031"
	CMethodAssignment Code = "C032"
	CNonObjectReceiver Code = "C033"
	CNonArrayIndex    Code = "C034"
	CNonIntegerIndex  Code = "C035"
	CNotCallable      Code = "C036"

	// Checker — context errors
	CBreakOutsideLoop    Code = "C040"
	CContinueOutsideLoop Code = "C041"
	CReturnOutsideFunc   Code = "C042"
	CThisOutsideClass    Code = "C043"
	CMissingReturn       Code = "C044"

	// Checker — arity errors
	CArityMismatch Code = "C050"
	CNoCtorForArgs Code = "C051"

	// Checker — constant errors
	CAssignToConst Code = "C060"
)

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Phase   Phase
	Code    Code
	Line    int
	Column  int
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d [%s] %s", d.Line, d.Column, d.Code, d.Message)
}

// New builds a Diagnostic from a token's position.
func New(phase Phase, code Code, tok token.Token, message string) *Diagnostic {
	return &Diagnostic{Phase: phase, Code: code, Line: tok.Line, Column: tok.Column, Message: message}
}

// Newf builds a Diagnostic with a formatted message.
func Newf(phase Phase, code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return New(phase, code, tok, fmt.Sprintf(format, args...))
}

// Buffer accumulates diagnostics without ever aborting analysis.
type Buffer struct {
	diags []*Diagnostic
}

// Add appends a diagnostic to the buffer.
func (b *Buffer) Add(d *Diagnostic) {
	b.diags = append(b.diags, d)
}

// Addf is a convenience wrapper combining Newf and Add.
func (b *Buffer) Addf(phase Phase, code Code, tok token.Token, format string, args ...interface{}) {
	b.Add(Newf(phase, code, tok, format, args...))
}

// Len reports how many diagnostics have been collected.
func (b *Buffer) Len() int { return len(b.diags) }

// Sorted returns all diagnostics ordered by line, then column.
func (b *Buffer) Sorted() []*Diagnostic {
	out := make([]*Diagnostic, len(b.diags))
	copy(out, b.diags)
	slices.SortFunc(out, func(a, c *Diagnostic) int {
		if a.Line != c.Line {
			return a.Line - c.Line
		}
		return a.Column - c.Column
	})
	return out
}
