// Package pipeline wires the lexer, parser, and checker into one ordered
// sequence of Processor stages sharing a single Context, grounded
// on the teacher's internal/pipeline package (Processor/Pipeline/Context
// trio) but cut down to this analyzer's three fixed stages.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/cslang/compiscript/internal/ast"
	"github.com/cslang/compiscript/internal/checker"
	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/symbols"
	"github.com/cslang/compiscript/internal/types"
)

// Context holds everything that flows between pipeline stages. Each
// Processor reads what it needs and fills in the fields it owns.
type Context struct {
	FilePath   string
	SourceCode string

	Program *ast.Program

	SymbolTable *symbols.Table
	TypeMap     map[ast.Expression]types.Type
	RunID       uuid.UUID

	Diagnostics []*diagnostics.Diagnostic
}

// NewContext initializes a Context for a single source file run.
func NewContext(filePath, source string) *Context {
	return &Context{FilePath: filePath, SourceCode: source}
}

// AddDiagnostics appends diagnostics raised by a stage, preserving ones
// already recorded by earlier stages (the analyzer never aborts on error,
// spec.md §4.5).
func (ctx *Context) AddDiagnostics(ds ...*diagnostics.Diagnostic) {
	ctx.Diagnostics = append(ctx.Diagnostics, ds...)
}

// HasErrors reports whether any stage has recorded a diagnostic so far.
func (ctx *Context) HasErrors() bool { return len(ctx.Diagnostics) > 0 }

// Result is the checker's packaged Analyze() return value, carried
// through the rest of the pipeline once the checker stage runs.
type Result = checker.Result
