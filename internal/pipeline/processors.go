package pipeline

import (
	"github.com/cslang/compiscript/internal/checker"
	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/lexer"
	"github.com/cslang/compiscript/internal/parser"
)

// LexerProcessor is a placeholder stage: the lexer itself is driven
// lazily by the parser (token by token), so there is nothing to do here
// ahead of time. An empty source file is not an error (spec.md's empty
// program boundary case) — it reaches ParserProcessor and yields an
// empty, diagnostic-free *ast.Program like any other input.
type LexerProcessor struct{}

func (LexerProcessor) Process(ctx *Context) *Context {
	return ctx
}

// ParserProcessor runs the lexer+parser over ctx.SourceCode and fills in
// ctx.Program. Syntax diagnostics are merged into ctx.Diagnostics; the
// checker stage still runs afterward even when syntax errors exist, since
// the parser always returns a (possibly partial) *ast.Program.
type ParserProcessor struct{}

func (ParserProcessor) Process(ctx *Context) *Context {
	diags := &diagnostics.Buffer{}
	l := lexer.New(ctx.SourceCode)
	p := parser.New(l, diags)
	ctx.Program = p.ParseProgram()
	ctx.AddDiagnostics(diags.Sorted()...)
	return ctx
}

// CheckerProcessor runs the semantic analyzer over ctx.Program.
type CheckerProcessor struct{}

func (CheckerProcessor) Process(ctx *Context) *Context {
	if ctx.Program == nil {
		return ctx
	}
	an := checker.NewAnalyzer()
	result := an.Analyze(ctx.Program)
	ctx.SymbolTable = result.SymbolTable
	ctx.TypeMap = result.Types
	ctx.RunID = result.RunID
	ctx.AddDiagnostics(result.Diagnostics...)
	return ctx
}
