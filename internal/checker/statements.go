package checker

import (
	"github.com/cslang/compiscript/internal/ast"
	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/symbols"
	"github.com/cslang/compiscript/internal/types"
)

func (c *Analyzer) checkCondition(tok ast.Expression, label string) {
	t := c.typeOf(tok)
	if types.IsError(t) || isBoolean(t) {
		return
	}
	c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonBooleanOperand, tok.GetToken(),
		"%s condition must be boolean, got %s", label, types.Display(t))
}

func (c *Analyzer) VisitVarDeclStatement(n *ast.VarDeclStatement) {
	var declared types.Type
	var valType types.Type
	hasValue := n.Value != nil
	if hasValue {
		valType = c.typeOf(n.Value)
	}
	switch {
	case n.TypeAnnotation != nil:
		declared = c.resolveTypeExpr(n.TypeAnnotation)
		if hasValue && !types.IsAssignable(declared, valType, c.table) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CInitMismatch, n.Token,
				"cannot initialize %q of type %s with %s", n.Name.Value, types.Display(declared), types.Display(valType))
		}
	case hasValue:
		declared = valType
	default:
		declared = types.Err
	}

	v := &symbols.Variable{Name: n.Name.Value, Type: declared}
	if !c.table.DefineVariable(v) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, n.Token,
			"%q is already defined in this scope", n.Name.Value)
	}
}

func (c *Analyzer) VisitConstDeclStatement(n *ast.ConstDeclStatement) {
	if n.Value == nil {
		return
	}
	valType := c.typeOf(n.Value)
	var declared types.Type
	if n.TypeAnnotation != nil {
		declared = c.resolveTypeExpr(n.TypeAnnotation)
		if !types.IsAssignable(declared, valType, c.table) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CInitMismatch, n.Token,
				"cannot initialize constant %q of type %s with %s", n.Name.Value, types.Display(declared), types.Display(valType))
		}
	} else {
		declared = valType
	}

	v := &symbols.Variable{Name: n.Name.Value, Type: declared, IsConst: true}
	if !c.table.DefineVariable(v) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, n.Token,
			"%q is already defined in this scope", n.Name.Value)
	}
}

func (c *Analyzer) VisitAssignStatement(n *ast.AssignStatement) {
	rhsType := c.typeOf(n.Value)

	switch target := n.Target.(type) {
	case *ast.Identifier:
		v, ok := c.table.ResolveVariable(target.Value)
		if !ok {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUndeclared, target.Token,
				"undeclared identifier %q", target.Value)
			return
		}
		if v.IsConst {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CAssignToConst, n.Token,
				"cannot assign to constant %q", target.Value)
			return
		}
		if !types.IsAssignable(v.Type, rhsType, c.table) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CAssignMismatch, n.Token,
				"cannot assign %s to %q of type %s", types.Display(rhsType), target.Value, types.Display(v.Type))
		}
	case *ast.MemberExpression:
		objType := c.typeOf(target.Object)
		if types.IsError(objType) {
			return
		}
		obj, ok := objType.(types.Object)
		if !ok {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonObjectReceiver, target.Token,
				"cannot access member %q on non-object type %s", target.Property, types.Display(objType))
			return
		}
		class, ok := c.table.ResolveClass(obj.Class)
		if !ok {
			return
		}
		member, ok := c.table.ResolveMember(class, target.Property)
		if !ok {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUnknownMember, target.Token,
				"class %q has no member %q", obj.Class, target.Property)
			return
		}
		if member.IsMethod {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CMethodAssignment, target.Token,
				"cannot assign to method %q", target.Property)
			return
		}
		if !types.IsAssignable(member.Type, rhsType, c.table) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CAssignMismatch, n.Token,
				"cannot assign %s to field %q of type %s", types.Display(rhsType), target.Property, types.Display(member.Type))
		}
	default:
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CUndeclared, n.Token, "invalid assignment target")
	}
}

func (c *Analyzer) VisitBlockStatement(n *ast.BlockStatement) {
	c.table.PushScope()
	for _, s := range n.Statements {
		s.Accept(c)
	}
	c.table.PopScope()
}

func (c *Analyzer) VisitIfStatement(n *ast.IfStatement) {
	c.checkCondition(n.Condition, "if")
	n.Then.Accept(c)
	if n.Else != nil {
		n.Else.Accept(c)
	}
}

func (c *Analyzer) VisitWhileStatement(n *ast.WhileStatement) {
	c.checkCondition(n.Condition, "while")
	c.loopDepth++
	n.Body.Accept(c)
	c.loopDepth--
}

func (c *Analyzer) VisitDoWhileStatement(n *ast.DoWhileStatement) {
	c.loopDepth++
	n.Body.Accept(c)
	c.loopDepth--
	c.checkCondition(n.Condition, "do-while")
}

func (c *Analyzer) VisitForStatement(n *ast.ForStatement) {
	c.table.PushScope()
	if n.Init != nil {
		n.Init.Accept(c)
	}
	if n.Condition != nil {
		c.checkCondition(n.Condition, "for")
	}
	if n.Update != nil {
		n.Update.Accept(c)
	}
	c.loopDepth++
	n.Body.Accept(c)
	c.loopDepth--
	c.table.PopScope()
}

func (c *Analyzer) VisitForeachStatement(n *ast.ForeachStatement) {
	iterType := c.typeOf(n.Iterable)
	elemType := types.Type(types.Err)
	if !types.IsError(iterType) {
		if arr, ok := iterType.(types.Array); ok {
			elemType = arr.Elem
		} else {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CNonArrayIndex, n.Token,
				"foreach requires an array, got %s", types.Display(iterType))
		}
	}

	c.table.PushScope()
	c.table.DefineVariable(&symbols.Variable{Name: n.Var.Value, Type: elemType})
	c.loopDepth++
	n.Body.Accept(c)
	c.loopDepth--
	c.table.PopScope()
}

func (c *Analyzer) VisitBreakStatement(n *ast.BreakStatement) {
	if c.loopDepth == 0 {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CBreakOutsideLoop, n.Token, "'break' used outside a loop")
	}
}

func (c *Analyzer) VisitContinueStatement(n *ast.ContinueStatement) {
	if c.loopDepth == 0 {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CContinueOutsideLoop, n.Token, "'continue' used outside a loop")
	}
}

func (c *Analyzer) VisitReturnStatement(n *ast.ReturnStatement) {
	fc := c.currentFunc()
	if fc == nil {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CReturnOutsideFunc, n.Token, "'return' used outside a function")
		if n.Value != nil {
			c.typeOf(n.Value)
		}
		return
	}
	fc.sawReturn = true

	if types.SameType(fc.returnType, types.Vd) {
		if n.Value != nil {
			c.typeOf(n.Value)
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CReturnMismatch, n.Token, "void function must not return a value")
		}
		return
	}
	if n.Value == nil {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CReturnMismatch, n.Token,
			"function must return a value of type %s", types.Display(fc.returnType))
		return
	}
	valType := c.typeOf(n.Value)
	if !types.IsAssignable(fc.returnType, valType, c.table) {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CReturnMismatch, n.Token,
			"cannot return %s as %s", types.Display(valType), types.Display(fc.returnType))
	}
}

func (c *Analyzer) VisitExpressionStatement(n *ast.ExpressionStatement) {
	c.typeOf(n.Expression)
}

func (c *Analyzer) VisitSwitchStatement(n *ast.SwitchStatement) {
	c.typeOf(n.Subject)
	for _, cs := range n.Cases {
		c.typeOf(cs.Value)
		cs.Body.Accept(c)
	}
	if n.Default != nil {
		n.Default.Accept(c)
	}
}

func (c *Analyzer) VisitTryCatchStatement(n *ast.TryCatchStatement) {
	n.Try.Accept(c)

	c.table.PushScope()
	c.table.DefineVariable(&symbols.Variable{Name: n.CatchVar.Value, Type: types.Str})
	for _, s := range n.Catch.Statements {
		s.Accept(c)
	}
	c.table.PopScope()
}

func (c *Analyzer) VisitFunctionDeclStatement(n *ast.FunctionDeclStatement) {
	fn, ok := c.table.ResolveFunction(n.Name.Value)
	if !ok {
		return
	}
	c.table.PushScope()
	for _, p := range fn.Params {
		if !c.table.DefineVariable(&symbols.Variable{Name: p.Name, Type: p.Type}) {
			c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CRedeclared, n.Token,
				"parameter %q is already defined", p.Name)
		}
	}
	c.pushFunc(&funcContext{returnType: fn.ReturnType})
	for _, s := range n.Body.Statements {
		s.Accept(c)
	}
	fc := c.popFunc()
	if !types.SameType(fn.ReturnType, types.Vd) && !fc.sawReturn {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CMissingReturn, n.Token,
			"function %q must return on all paths", n.Name.Value)
	}
	c.table.PopScope()
}

func (c *Analyzer) VisitClassDeclStatement(n *ast.ClassDeclStatement) {
	if _, ok := c.table.ResolveClass(n.Name.Value); !ok {
		return
	}
	c.pushClass(n.Name.Value)
	for _, m := range n.Members {
		m.Accept(c)
	}
	c.popClass()
}

func (c *Analyzer) VisitFieldDeclMember(n *ast.FieldDeclMember) {
	// Fully resolved and checked during the declaration pass.
}

func (c *Analyzer) VisitMethodDeclMember(n *ast.MethodDeclMember) {
	class, ok := c.table.ResolveClass(c.currentClass())
	if !ok {
		return
	}
	member, ok := class.Members[n.Name.Value]
	if !ok {
		return
	}
	c.table.PushScope()
	for _, p := range member.Params {
		c.table.DefineVariable(&symbols.Variable{Name: p.Name, Type: p.Type})
	}
	c.pushFunc(&funcContext{returnType: member.ReturnType})
	for _, s := range n.Body.Statements {
		s.Accept(c)
	}
	fc := c.popFunc()
	if !types.SameType(member.ReturnType, types.Vd) && !fc.sawReturn {
		c.diags.Addf(diagnostics.PhaseChecker, diagnostics.CMissingReturn, n.Token,
			"method %q must return on all paths", n.Name.Value)
	}
	c.table.PopScope()
}

func (c *Analyzer) VisitConstructorDeclMember(n *ast.ConstructorDeclMember) {
	class, ok := c.table.ResolveClass(c.currentClass())
	if !ok {
		return
	}
	member, ok := class.Ctor()
	if !ok {
		return
	}
	c.table.PushScope()
	for _, p := range member.Params {
		c.table.DefineVariable(&symbols.Variable{Name: p.Name, Type: p.Type})
	}
	c.pushFunc(&funcContext{returnType: types.Vd})
	for _, s := range n.Body.Statements {
		s.Accept(c)
	}
	c.popFunc()
	c.table.PopScope()
}
