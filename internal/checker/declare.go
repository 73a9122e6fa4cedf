package checker

import (
	"github.com/cslang/compiscript/internal/ast"
	"github.com/cslang/compiscript/internal/config"
	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/symbols"
	"github.com/cslang/compiscript/internal/types"
)

// declareTopLevel is C4: it binds every top-level function and class
// before any body is checked, so a forward-referenced class base or
// mutually recursive functions resolve correctly (spec.md §4.4 "Declare
// the class before visiting members").
func (c *Analyzer) declareTopLevel(stmts []ast.Statement) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.FunctionDeclStatement:
			c.declareFunction(n)
		case *ast.ClassDeclStatement:
			c.declareClass(n)
		}
	}
}

func (c *Analyzer) declareFunction(n *ast.FunctionDeclStatement) {
	params := c.resolveParams(n.Params)
	ret := types.Vd
	if n.ReturnType != nil {
		ret = c.resolveTypeExpr(n.ReturnType)
	}
	fn := &symbols.Function{Name: n.Name.Value, Params: params, ReturnType: ret}
	if !c.table.DefineFunction(fn) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, n.Token,
			"function %q is already declared", n.Name.Value)
	}
}

func (c *Analyzer) declareClass(n *ast.ClassDeclStatement) {
	class := &symbols.Class{Name: n.Name.Value, Members: make(map[string]*symbols.Member)}
	if n.Base != nil {
		class.HasBase = true
		class.BaseName = n.Base.Value
	}
	if !c.table.DefineClass(class) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, n.Token,
			"class %q is already declared", n.Name.Value)
		return
	}
	for _, m := range n.Members {
		c.declareMember(class, m)
	}
}

func (c *Analyzer) declareMember(class *symbols.Class, m ast.Statement) {
	switch mm := m.(type) {
	case *ast.FieldDeclMember:
		c.declareField(class, mm)
	case *ast.MethodDeclMember:
		params := c.resolveParams(mm.Params)
		ret := types.Vd
		if mm.ReturnType != nil {
			ret = c.resolveTypeExpr(mm.ReturnType)
		}
		member := &symbols.Member{Name: mm.Name.Value, IsMethod: true, Params: params, ReturnType: ret}
		if !class.AddMember(member) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, mm.Token,
				"class %q already has a member named %q", class.Name, mm.Name.Value)
		}
	case *ast.ConstructorDeclMember:
		params := c.resolveParams(mm.Params)
		member := &symbols.Member{Name: config.CtorMemberName, IsMethod: true, Params: params, ReturnType: types.Vd}
		if !class.AddMember(member) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, mm.Token,
				"class %q already has a constructor", class.Name)
		}
	}
}

// declareField resolves a field/const-field's type eagerly: annotation
// if present, otherwise the initializer's type, matching the ordinary
// variable-declaration rule in spec.md §4.4. A const field's initializer
// is mandatory by grammar (the parser requires `=`), so there is no
// "missing initializer" case to detect here.
func (c *Analyzer) declareField(class *symbols.Class, mm *ast.FieldDeclMember) {
	var fieldType types.Type
	switch {
	case mm.TypeAnnotation != nil:
		fieldType = c.resolveTypeExpr(mm.TypeAnnotation)
		if mm.Value != nil {
			valType := c.typeOf(mm.Value)
			if !types.IsAssignable(fieldType, valType, c.table) {
				c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CInitMismatch, mm.Token,
					"cannot initialize field %q of type %s with %s", mm.Name.Value, types.Display(fieldType), types.Display(valType))
			}
		}
	case mm.Value != nil:
		fieldType = c.typeOf(mm.Value)
	default:
		fieldType = types.Err
	}

	member := &symbols.Member{Name: mm.Name.Value, IsMethod: false, Type: fieldType}
	if !class.AddMember(member) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, mm.Token,
			"class %q already has a member named %q", class.Name, mm.Name.Value)
	}
}

func (c *Analyzer) resolveParams(params []*ast.Param) []symbols.Param {
	out := make([]symbols.Param, len(params))
	for i, p := range params {
		t := types.Type(types.Err)
		if p.TypeAnnotation != nil {
			t = c.resolveTypeExpr(p.TypeAnnotation)
		}
		out[i] = symbols.Param{Name: p.Name.Value, Type: t}
	}
	return out
}

// resolveTypeExpr turns a type-annotation AST shape into a types.Type.
// Class names are accepted without existence checks (classes may be
// forward- or never-declared at annotation time; existence is enforced
// where the type is actually used, e.g. `new`).
func (c *Analyzer) resolveTypeExpr(t ast.TypeExpr) types.Type {
	switch te := t.(type) {
	case *ast.NamedTypeExpr:
		switch te.Name {
		case "integer":
			return types.Int
		case "float":
			return types.Flt
		case "boolean":
			return types.Bool
		case "string":
			return types.Str
		case "void":
			return types.Vd
		default:
			return types.NewObject(te.Name)
		}
	case *ast.ArrayTypeExpr:
		return types.NewArray(c.resolveTypeExpr(te.Elem))
	default:
		return types.Err
	}
}
