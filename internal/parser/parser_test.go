package parser

import (
	"testing"

	"github.com/cslang/compiscript/internal/ast"
	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/lexer"
)

func parseProgram(t *testing.T, input string) (*ast.Program, *diagnostics.Buffer) {
	t.Helper()
	diags := &diagnostics.Buffer{}
	p := New(lexer.New(input), diags)
	prog := p.ParseProgram()
	return prog, diags
}

func TestParseVarDeclStatement(t *testing.T) {
	prog, diags := parseProgram(t, `let x: integer = 5;`)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Sorted())
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.VarDeclStatement)
	if !ok {
		t.Fatalf("expected *ast.VarDeclStatement, got %T", prog.Statements[0])
	}
	if stmt.Name.Value != "x" {
		t.Errorf("expected name 'x', got %q", stmt.Name.Value)
	}
	ta, ok := stmt.TypeAnnotation.(*ast.NamedTypeExpr)
	if !ok || ta.Name != "integer" {
		t.Errorf("expected type annotation 'integer', got %+v", stmt.TypeAnnotation)
	}
}

func TestParseAssignVsExpressionStatement(t *testing.T) {
	prog, diags := parseProgram(t, `x = 1; foo();`)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Sorted())
	}
	if _, ok := prog.Statements[0].(*ast.AssignStatement); !ok {
		t.Errorf("expected AssignStatement, got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.ExpressionStatement); !ok {
		t.Errorf("expected ExpressionStatement, got %T", prog.Statements[1])
	}
}

func TestParseMemberAssignStatement(t *testing.T) {
	prog, diags := parseProgram(t, `this.x = 1;`)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Sorted())
	}
	assign, ok := prog.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %T", prog.Statements[0])
	}
	if _, ok := assign.Target.(*ast.MemberExpression); !ok {
		t.Errorf("expected member expression target, got %T", assign.Target)
	}
}

func TestParseClassDeclWithBase(t *testing.T) {
	prog, diags := parseProgram(t, `
class Dog : Animal {
	let name: string;
	constructor(n: string) { this.name = n; }
	function bark(): void { print("woof"); }
}`)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Sorted())
	}
	class, ok := prog.Statements[0].(*ast.ClassDeclStatement)
	if !ok {
		t.Fatalf("expected ClassDeclStatement, got %T", prog.Statements[0])
	}
	if class.Base == nil || class.Base.Value != "Animal" {
		t.Fatalf("expected base class Animal, got %v", class.Base)
	}
	if len(class.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(class.Members))
	}
}

func TestParseTernaryRightAssociative(t *testing.T) {
	prog, diags := parseProgram(t, `x = a ? b : c ? d : e;`)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Sorted())
	}
	assign := prog.Statements[0].(*ast.AssignStatement)
	outer, ok := assign.Value.(*ast.TernaryExpression)
	if !ok {
		t.Fatalf("expected outer ternary, got %T", assign.Value)
	}
	if _, ok := outer.Else.(*ast.TernaryExpression); !ok {
		t.Errorf("expected nested ternary on the else branch, got %T", outer.Else)
	}
}

func TestParseMissingSemicolonReportsDiagnostic(t *testing.T) {
	_, diags := parseProgram(t, `let x = 5 let y = 6;`)
	if diags.Len() == 0 {
		t.Fatal("expected a diagnostic for the missing semicolon")
	}
}

func TestParseArrayLiteralAndIndex(t *testing.T) {
	prog, diags := parseProgram(t, `x = [1, 2, 3][0];`)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Sorted())
	}
	assign := prog.Statements[0].(*ast.AssignStatement)
	idx, ok := assign.Value.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("expected IndexExpression, got %T", assign.Value)
	}
	arr, ok := idx.Array.(*ast.ArrayLiteral)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("expected a 3-element array literal, got %+v", idx.Array)
	}
}

func TestParseForeachStatement(t *testing.T) {
	prog, diags := parseProgram(t, `foreach (item in items) { print(item); }`)
	if diags.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.Sorted())
	}
	fe, ok := prog.Statements[0].(*ast.ForeachStatement)
	if !ok {
		t.Fatalf("expected ForeachStatement, got %T", prog.Statements[0])
	}
	if fe.Var.Value != "item" {
		t.Errorf("expected loop variable 'item', got %q", fe.Var.Value)
	}
}
