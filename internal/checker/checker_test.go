package checker

import (
	"testing"

	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/lexer"
	"github.com/cslang/compiscript/internal/parser"
)

func analyzeSource(t *testing.T, src string) *Result {
	t.Helper()
	diags := &diagnostics.Buffer{}
	p := parser.New(lexer.New(src), diags)
	prog := p.ParseProgram()
	if diags.Len() != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags.Sorted())
	}
	return NewAnalyzer().Analyze(prog)
}

func codesOf(diags []*diagnostics.Diagnostic) []diagnostics.Code {
	out := make([]diagnostics.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestScenarioAssignmentMismatch(t *testing.T) {
	res := analyzeSource(t, `let a: integer = 1; a = "hola";`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CAssignMismatch {
		t.Fatalf("expected exactly one CAssignMismatch, got %v", codesOf(res.Diagnostics))
	}
}

func TestScenarioAssignToConst(t *testing.T) {
	res := analyzeSource(t, `const PI: integer = 3; PI = 4;`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CAssignToConst {
		t.Fatalf("expected exactly one CAssignToConst, got %v", codesOf(res.Diagnostics))
	}
}

func TestScenarioShadowingIsClean(t *testing.T) {
	res := analyzeSource(t, `{ let x: integer = 1; { let x: integer = 2; print(x); } print(x); }`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics for shadowing, got %v", codesOf(res.Diagnostics))
	}
}

func TestScenarioArrayElementMismatch(t *testing.T) {
	res := analyzeSource(t, `let xs: integer[] = [1, 2, 3]; xs[0] = 10; xs[0] = "hola";`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CAssignMismatch {
		t.Fatalf("expected exactly one CAssignMismatch, got %v", codesOf(res.Diagnostics))
	}
}

func TestScenarioSubtypeConstructorAssignability(t *testing.T) {
	res := analyzeSource(t, `
class A {}
class B : A { constructor(n: integer) {} }
let b: A = new B(1);`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics for subtype assignability, got %v", codesOf(res.Diagnostics))
	}
}

func TestScenarioMissingReturnOnAllPaths(t *testing.T) {
	res := analyzeSource(t, `function f(x: integer): integer { }`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CMissingReturn {
		t.Fatalf("expected exactly one CMissingReturn, got %v", codesOf(res.Diagnostics))
	}
}

func TestEmptyProgramHasNoDiagnostics(t *testing.T) {
	res := analyzeSource(t, ``)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics for an empty program, got %v", codesOf(res.Diagnostics))
	}
	if res.SymbolTable.Depth() != 1 {
		t.Fatalf("expected the scope stack restored to depth 1, got %d", res.SymbolTable.Depth())
	}
}

func TestEmptyArrayLiteralAssignableToAnyArrayAnnotation(t *testing.T) {
	res := analyzeSource(t, `let xs: integer[] = [];`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected empty array literal to be assignable, got %v", codesOf(res.Diagnostics))
	}
}

func TestSelfReferentialInitializerIsUndeclared(t *testing.T) {
	res := analyzeSource(t, `let x = x;`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CUndeclared {
		t.Fatalf("expected exactly one CUndeclared, got %v", codesOf(res.Diagnostics))
	}
}

func TestThisOutsideClassIsDiagnosed(t *testing.T) {
	res := analyzeSource(t, `function f(): void { print(this); }`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CThisOutsideClass {
		t.Fatalf("expected exactly one CThisOutsideClass, got %v", codesOf(res.Diagnostics))
	}
}

func TestBreakOutsideLoopIsDiagnosed(t *testing.T) {
	res := analyzeSource(t, `break;`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CBreakOutsideLoop {
		t.Fatalf("expected exactly one CBreakOutsideLoop, got %v", codesOf(res.Diagnostics))
	}
}

func TestNewWithNoConstructorButArgsIsDiagnosed(t *testing.T) {
	res := analyzeSource(t, `class A {} let a: A = new A(1, 2);`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CNoCtorForArgs {
		t.Fatalf("expected exactly one CNoCtorForArgs, got %v", codesOf(res.Diagnostics))
	}
}

func TestNewWithNoArgsAndNoConstructorIsClean(t *testing.T) {
	res := analyzeSource(t, `class A {} let a: A = new A();`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", codesOf(res.Diagnostics))
	}
}

func TestForwardReferencedClassBaseResolves(t *testing.T) {
	res := analyzeSource(t, `
class Dog : Animal { }
class Animal { }
let d: Animal = new Dog();`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected forward-referenced base to resolve cleanly, got %v", codesOf(res.Diagnostics))
	}
}

func TestMutuallyRecursiveFunctions(t *testing.T) {
	res := analyzeSource(t, `
function isEven(n: integer): boolean { return n == 0 ? true : isOdd(n - 1); }
function isOdd(n: integer): boolean { return n == 0 ? false : isEven(n - 1); }`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected mutually recursive functions to resolve cleanly, got %v", codesOf(res.Diagnostics))
	}
}

func TestArityMismatchOnCall(t *testing.T) {
	res := analyzeSource(t, `
function add(a: integer, b: integer): integer { return a + b; }
print(add(1));`)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diagnostics.CArityMismatch {
		t.Fatalf("expected exactly one CArityMismatch, got %v", codesOf(res.Diagnostics))
	}
}

func TestMethodAssignmentIsRejected(t *testing.T) {
	res := analyzeSource(t, `
class A { function bark(): void { } }
let a: A = new A();
a.bark = a.bark;`)
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diagnostics.CMethodAssignment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CMethodAssignment diagnostic, got %v", codesOf(res.Diagnostics))
	}
}

func TestIdempotence(t *testing.T) {
	src := `let a: integer = 1; a = "hola";`
	res1 := analyzeSource(t, src)
	res2 := analyzeSource(t, src)
	if len(res1.Diagnostics) != len(res2.Diagnostics) {
		t.Fatalf("expected repeated analysis to yield the same diagnostic count, got %d and %d",
			len(res1.Diagnostics), len(res2.Diagnostics))
	}
	for i := range res1.Diagnostics {
		if res1.Diagnostics[i].Code != res2.Diagnostics[i].Code || res1.Diagnostics[i].Message != res2.Diagnostics[i].Message {
			t.Fatalf("diagnostic %d differs between runs: %v vs %v", i, res1.Diagnostics[i], res2.Diagnostics[i])
		}
	}
}
