package checker

import (
	"github.com/cslang/compiscript/internal/ast"
	"github.com/cslang/compiscript/internal/config"
	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/symbols"
	"github.com/cslang/compiscript/internal/types"
)

func (c *Analyzer) VisitIdentifier(n *ast.Identifier) {
	v, ok := c.table.ResolveVariable(n.Value)
	if !ok {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUndeclared, n.Token, "undeclared identifier %q", n.Value)
		c.result = types.Err
		return
	}
	c.result = v.Type
}

func (c *Analyzer) VisitIntegerLiteral(n *ast.IntegerLiteral) { c.result = types.Int }
func (c *Analyzer) VisitFloatLiteral(n *ast.FloatLiteral)     { c.result = types.Flt }
func (c *Analyzer) VisitStringLiteral(n *ast.StringLiteral)   { c.result = types.Str }
func (c *Analyzer) VisitBoolLiteral(n *ast.BoolLiteral)       { c.result = types.Bool }
func (c *Analyzer) VisitNullLiteral(n *ast.NullLiteral)       { c.result = types.Nil }

func (c *Analyzer) VisitThisExpression(n *ast.ThisExpression) {
	cls := c.currentClass()
	if cls == "" {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CThisOutsideClass, n.Token, "'this' used outside a class")
		c.result = types.Err
		return
	}
	c.result = types.NewObject(cls)
}

func (c *Analyzer) VisitGroupExpression(n *ast.GroupExpression) {
	c.result = c.typeOf(n.Inner)
}

func (c *Analyzer) VisitArrayLiteral(n *ast.ArrayLiteral) {
	if len(n.Elements) == 0 {
		c.result = types.NewArray(types.Err)
		return
	}
	elem := c.typeOf(n.Elements[0])
	for _, e := range n.Elements[1:] {
		t := c.typeOf(e)
		if !types.IsError(t) && !types.SameType(elem, t) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CArrayElemMismatch, e.GetToken(),
				"array element has type %s, expected %s", types.Display(t), types.Display(elem))
		}
	}
	c.result = types.NewArray(elem)
}

func (c *Analyzer) VisitUnaryExpression(n *ast.UnaryExpression) {
	t := c.typeOf(n.Operand)
	switch n.Op {
	case "-":
		if types.IsError(t) || types.IsNumeric(t) {
			c.result = t
			return
		}
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonNumericOperand, n.Token,
			"unary '-' requires a numeric operand, got %s", types.Display(t))
		c.result = types.Err
	case "+":
		if types.IsError(t) || types.IsNumeric(t) {
			c.result = t
			return
		}
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonNumericOperand, n.Token,
			"unary '+' requires a numeric operand, got %s", types.Display(t))
		c.result = types.Err
	case "!":
		if types.IsError(t) || isBoolean(t) {
			c.result = types.Bool
			return
		}
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUnaryMismatch, n.Token,
			"unary '!' requires a boolean operand, got %s", types.Display(t))
		c.result = types.Err
	default:
		c.result = types.Err
	}
}

func (c *Analyzer) VisitBinaryExpression(n *ast.BinaryExpression) {
	lt := c.typeOf(n.Left)
	rt := c.typeOf(n.Right)

	switch n.Op {
	case "+":
		if isString(lt) || isString(rt) {
			if (isString(lt) || types.IsError(lt)) && (isString(rt) || types.IsError(rt)) {
				c.result = types.Str
				return
			}
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonNumericOperand, n.Token,
				"cannot apply '+' to %s and %s", types.Display(lt), types.Display(rt))
			c.result = types.Err
			return
		}
		fallthrough
	case "-", "*", "/", "%":
		if types.IsError(lt) || types.IsError(rt) {
			c.result = types.Err
			return
		}
		res := types.CommonNumeric(lt, rt)
		if types.IsError(res) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonNumericOperand, n.Token,
				"operator '%s' requires numeric operands, got %s and %s", n.Op, types.Display(lt), types.Display(rt))
		}
		c.result = res
	case "==", "!=":
		if types.IsError(lt) || types.IsError(rt) || types.SameType(lt, rt) || isNull(lt) || isNull(rt) {
			c.result = types.Bool
			return
		}
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			c.result = types.Bool
			return
		}
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonNumericOperand, n.Token,
			"cannot compare %s and %s", types.Display(lt), types.Display(rt))
		c.result = types.Bool
	case "<", "<=", ">", ">=":
		if types.IsError(lt) || types.IsError(rt) {
			c.result = types.Bool
			return
		}
		if !types.IsNumeric(lt) || !types.IsNumeric(rt) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonNumericOperand, n.Token,
				"operator '%s' requires numeric operands, got %s and %s", n.Op, types.Display(lt), types.Display(rt))
		}
		c.result = types.Bool
	default:
		c.result = types.Err
	}
}

func (c *Analyzer) VisitLogicalExpression(n *ast.LogicalExpression) {
	lt := c.typeOf(n.Left)
	rt := c.typeOf(n.Right)
	if (!types.IsError(lt) && !isBoolean(lt)) || (!types.IsError(rt) && !isBoolean(rt)) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonBooleanOperand, n.Token,
			"operator '%s' requires boolean operands, got %s and %s", n.Op, types.Display(lt), types.Display(rt))
	}
	c.result = types.Bool
}

func ternaryResultType(a, b types.Type) types.Type {
	if types.IsError(a) || types.IsError(b) {
		return types.Err
	}
	if types.IsNumeric(a) && types.IsNumeric(b) {
		return types.CommonNumeric(a, b)
	}
	if isString(a) || isString(b) {
		if isString(a) && isString(b) {
			return types.Str
		}
		return types.Err
	}
	if types.SameType(a, b) {
		return a
	}
	return types.Err
}

func (c *Analyzer) VisitTernaryExpression(n *ast.TernaryExpression) {
	c.checkCondition(n.Condition, "ternary")
	thenType := c.typeOf(n.Then)
	elseType := c.typeOf(n.Else)
	res := ternaryResultType(thenType, elseType)
	if types.IsError(res) && !types.IsError(thenType) && !types.IsError(elseType) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CArgMismatch, n.Token,
			"ternary branches have incompatible types %s and %s", types.Display(thenType), types.Display(elseType))
	}
	c.result = res
}

func (c *Analyzer) VisitIndexExpression(n *ast.IndexExpression) {
	arrType := c.typeOf(n.Array)
	idxType := c.typeOf(n.Index)

	if !types.IsError(idxType) && !isInteger(idxType) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonIntegerIndex, n.Index.GetToken(),
			"array index must be integer, got %s", types.Display(idxType))
	}

	if types.IsError(arrType) {
		c.result = types.Err
		return
	}
	arr, ok := arrType.(types.Array)
	if !ok {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonArrayIndex, n.Token,
			"cannot index non-array type %s", types.Display(arrType))
		c.result = types.Err
		return
	}
	c.result = arr.Elem
}

func (c *Analyzer) VisitMemberExpression(n *ast.MemberExpression) {
	objType := c.typeOf(n.Object)
	if types.IsError(objType) {
		c.result = types.Err
		return
	}
	obj, ok := objType.(types.Object)
	if !ok {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonObjectReceiver, n.Token,
			"cannot access member %q on non-object type %s", n.Property, types.Display(objType))
		c.result = types.Err
		return
	}
	class, ok := c.table.ResolveClass(obj.Class)
	if !ok {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUnknownClass, n.Token, "unknown class %q", obj.Class)
		c.result = types.Err
		return
	}
	member, ok := c.table.ResolveMember(class, n.Property)
	if !ok {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUnknownMember, n.Token,
			"class %q has no member %q", obj.Class, n.Property)
		c.result = types.Err
		return
	}
	if member.IsMethod {
		c.result = member.ReturnType
		return
	}
	c.result = member.Type
}

// resolveCallable resolves a call's Callee without running it through the
// generic typeOf dispatch: the type lattice has no function type, so a
// callee identifier or member access is resolved directly against the
// function/class registries instead of being assigned a Type of its own.
func (c *Analyzer) resolveCallable(expr ast.Expression) (params []symbols.Param, ret types.Type, ok bool) {
	switch callee := expr.(type) {
	case *ast.Identifier:
		fn, found := c.table.ResolveFunction(callee.Value)
		if !found {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUnknownFunc, callee.Token,
				"undeclared function %q", callee.Value)
			return nil, types.Err, false
		}
		return fn.Params, fn.ReturnType, true
	case *ast.MemberExpression:
		objType := c.typeOf(callee.Object)
		if types.IsError(objType) {
			return nil, types.Err, false
		}
		obj, isObj := objType.(types.Object)
		if !isObj {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonObjectReceiver, callee.Token,
				"cannot call member %q on non-object type %s", callee.Property, types.Display(objType))
			return nil, types.Err, false
		}
		class, found := c.table.ResolveClass(obj.Class)
		if !found {
			return nil, types.Err, false
		}
		member, found := c.table.ResolveMember(class, callee.Property)
		if !found {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUnknownMember, callee.Token,
				"class %q has no member %q", obj.Class, callee.Property)
			return nil, types.Err, false
		}
		if !member.IsMethod {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNotCallable, callee.Token,
				"field %q is not callable", callee.Property)
			return nil, types.Err, false
		}
		return member.Params, member.ReturnType, true
	default:
		t := c.typeOf(expr)
		if !types.IsError(t) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNotCallable, expr.GetToken(), "expression is not callable")
		}
		return nil, types.Err, false
	}
}

func (c *Analyzer) VisitCallExpression(n *ast.CallExpression) {
	if ident, isIdent := n.Callee.(*ast.Identifier); isIdent && ident.Value == config.PrintFuncName {
		if _, declared := c.table.ResolveFunction(config.PrintFuncName); !declared {
			for _, a := range n.Arguments {
				c.typeOf(a)
			}
			c.result = types.Vd
			return
		}
	}

	params, ret, ok := c.resolveCallable(n.Callee)

	argTypes := make([]types.Type, len(n.Arguments))
	for i, a := range n.Arguments {
		argTypes[i] = c.typeOf(a)
	}

	if !ok {
		c.result = types.Err
		return
	}

	if len(argTypes) != len(params) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CArityMismatch, n.Token,
			"expected %d argument(s), got %d", len(params), len(argTypes))
		c.result = ret
		return
	}
	for i, p := range params {
		if !types.IsError(argTypes[i]) && !types.IsAssignable(p.Type, argTypes[i], c.table) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CArgMismatch, n.Arguments[i].GetToken(),
				"argument %d: cannot use %s as %s", i+1, types.Display(argTypes[i]), types.Display(p.Type))
		}
	}
	c.result = ret
}

// findConstructor walks class and its base chain looking for a declared
// constructor, mirroring symbols.Table.ResolveMember's walk but filtered to
// the constructor sentinel name.
func (c *Analyzer) findConstructor(class *symbols.Class) (*symbols.Member, bool) {
	for cur := class; cur != nil; {
		if m, ok := cur.Ctor(); ok {
			return m, true
		}
		if !cur.HasBase {
			return nil, false
		}
		base, ok := c.table.ResolveClass(cur.BaseName)
		if !ok {
			return nil, false
		}
		cur = base
	}
	return nil, false
}

func (c *Analyzer) VisitNewExpression(n *ast.NewExpression) {
	class, ok := c.table.ResolveClass(n.ClassName.Value)
	if !ok {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUnknownClass, n.Token, "unknown class %q", n.ClassName.Value)
		for _, a := range n.Arguments {
			c.typeOf(a)
		}
		c.result = types.Err
		return
	}

	argTypes := make([]types.Type, len(n.Arguments))
	for i, a := range n.Arguments {
		argTypes[i] = c.typeOf(a)
	}

	ctor, hasCtor := c.findConstructor(class)
	switch {
	case !hasCtor && len(argTypes) > 0:
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNoCtorForArgs, n.Token,
			"class %q has no constructor but %d argument(s) were supplied", class.Name, len(argTypes))
	case hasCtor:
		if len(argTypes) != len(ctor.Params) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CArityMismatch, n.Token,
				"constructor of %q expects %d argument(s), got %d", class.Name, len(ctor.Params), len(argTypes))
			break
		}
		for i, p := range ctor.Params {
			if !types.IsError(argTypes[i]) && !types.IsAssignable(p.Type, argTypes[i], c.table) {
				c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CArgMismatch, n.Arguments[i].GetToken(),
					"constructor argument %d: cannot use %s as %s", i+1, types.Display(argTypes[i]), types.Display(p.Type))
			}
		}
	}

	c.result = types.NewObject(class.Name)
}
