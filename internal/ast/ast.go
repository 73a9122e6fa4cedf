// Package ast defines the Compiscript parse tree: the Node/Statement/
// Expression interface family with double-dispatch Accept(Visitor),
// grounded on the teacher's internal/ast package. The checker depends only
// on these shapes plus each node's originating token.Token.
package ast

import "github.com/cslang/compiscript/internal/token"

// Node is the base interface every parse tree node implements.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that stands alone in a block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value (and therefore a Type).
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// TypeExpr is the small, non-visited family of type-annotation syntax
// (integer, Foo, integer[]) the checker resolves to a types.Type.
type TypeExpr interface {
	TokenLiteral() string
	typeExprNode()
}

// NamedTypeExpr is a bare name: integer, boolean, string, Foo, ...
type NamedTypeExpr struct {
	Token token.Token
	Name  string
}

func (n *NamedTypeExpr) TokenLiteral() string { return n.Token.Lexeme }
func (*NamedTypeExpr) typeExprNode()          {}

// ArrayTypeExpr is Elem[].
type ArrayTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
}

func (a *ArrayTypeExpr) TokenLiteral() string { return a.Token.Lexeme }
func (*ArrayTypeExpr) typeExprNode()          {}

// Param is one (name: Type) entry of a parameter list.
type Param struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation TypeExpr
}

// Program is the root node of every parse tree.
type Program struct {
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// ---- Statements ----

// VarDeclStatement is `let|var name (: T)? (= expr)? ;`.
type VarDeclStatement struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation TypeExpr
	Value          Expression
}

func (s *VarDeclStatement) Accept(v Visitor)     { v.VisitVarDeclStatement(s) }
func (s *VarDeclStatement) statementNode()       {}
func (s *VarDeclStatement) TokenLiteral() string { return s.Token.Lexeme }

// ConstDeclStatement is `const name (: T)? = expr ;`.
type ConstDeclStatement struct {
	Token          token.Token
	Name           *Identifier
	TypeAnnotation TypeExpr
	Value          Expression
}

func (s *ConstDeclStatement) Accept(v Visitor)     { v.VisitConstDeclStatement(s) }
func (s *ConstDeclStatement) statementNode()       {}
func (s *ConstDeclStatement) TokenLiteral() string { return s.Token.Lexeme }

// AssignStatement covers both syntactic shapes: Target is an *Identifier
// for the simple form, or a *MemberExpression for the property form.
type AssignStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (s *AssignStatement) Accept(v Visitor)     { v.VisitAssignStatement(s) }
func (s *AssignStatement) statementNode()       {}
func (s *AssignStatement) TokenLiteral() string { return s.Token.Lexeme }

// BlockStatement is `{ stmt* }`.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStatement) Accept(v Visitor)     { v.VisitBlockStatement(s) }
func (s *BlockStatement) statementNode()       {}
func (s *BlockStatement) TokenLiteral() string { return s.Token.Lexeme }

// IfStatement is `if (cond) then (else else)?`. Else may be nil, a
// *BlockStatement, or another *IfStatement (else-if chaining).
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      *BlockStatement
	Else      Statement
}

func (s *IfStatement) Accept(v Visitor)     { v.VisitIfStatement(s) }
func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Lexeme }

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (s *WhileStatement) Accept(v Visitor)     { v.VisitWhileStatement(s) }
func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Lexeme }

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	Token     token.Token
	Body      *BlockStatement
	Condition Expression
}

func (s *DoWhileStatement) Accept(v Visitor)     { v.VisitDoWhileStatement(s) }
func (s *DoWhileStatement) statementNode()       {}
func (s *DoWhileStatement) TokenLiteral() string { return s.Token.Lexeme }

// ForStatement is the C-style `for (init; cond; update) body`. Init,
// Condition and Update may each be nil.
type ForStatement struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Update    Statement
	Body      *BlockStatement
}

func (s *ForStatement) Accept(v Visitor)     { v.VisitForStatement(s) }
func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string { return s.Token.Lexeme }

// ForeachStatement is `foreach (id in expr) body`.
type ForeachStatement struct {
	Token    token.Token
	Var      *Identifier
	Iterable Expression
	Body     *BlockStatement
}

func (s *ForeachStatement) Accept(v Visitor)     { v.VisitForeachStatement(s) }
func (s *ForeachStatement) statementNode()       {}
func (s *ForeachStatement) TokenLiteral() string { return s.Token.Lexeme }

// BreakStatement is `break;`.
type BreakStatement struct {
	Token token.Token
}

func (s *BreakStatement) Accept(v Visitor)     { v.VisitBreakStatement(s) }
func (s *BreakStatement) statementNode()       {}
func (s *BreakStatement) TokenLiteral() string { return s.Token.Lexeme }

// ContinueStatement is `continue;`.
type ContinueStatement struct {
	Token token.Token
}

func (s *ContinueStatement) Accept(v Visitor)     { v.VisitContinueStatement(s) }
func (s *ContinueStatement) statementNode()       {}
func (s *ContinueStatement) TokenLiteral() string { return s.Token.Lexeme }

// ReturnStatement is `return expr? ;`.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (s *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(s) }
func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Lexeme }

// ExpressionStatement wraps a bare expression used as a statement (e.g.
// a call).
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (s *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(s) }
func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Lexeme }

// FunctionDeclStatement is a top-level (or nested) function declaration.
type FunctionDeclStatement struct {
	Token      token.Token
	Name       *Identifier
	Params     []*Param
	ReturnType TypeExpr // nil means void
	Body       *BlockStatement
}

func (s *FunctionDeclStatement) Accept(v Visitor)     { v.VisitFunctionDeclStatement(s) }
func (s *FunctionDeclStatement) statementNode()       {}
func (s *FunctionDeclStatement) TokenLiteral() string { return s.Token.Lexeme }

// FieldDeclMember is a class field: `name (: T)? (= expr)? ;`.
type FieldDeclMember struct {
	Token          token.Token
	Name           *Identifier
	IsConst        bool
	TypeAnnotation TypeExpr
	Value          Expression
}

func (m *FieldDeclMember) Accept(v Visitor)     { v.VisitFieldDeclMember(m) }
func (m *FieldDeclMember) statementNode()       {}
func (m *FieldDeclMember) TokenLiteral() string { return m.Token.Lexeme }

// MethodDeclMember is a class method.
type MethodDeclMember struct {
	Token      token.Token
	Name       *Identifier
	Params     []*Param
	ReturnType TypeExpr
	Body       *BlockStatement
}

func (m *MethodDeclMember) Accept(v Visitor)     { v.VisitMethodDeclMember(m) }
func (m *MethodDeclMember) statementNode()       {}
func (m *MethodDeclMember) TokenLiteral() string { return m.Token.Lexeme }

// ConstructorDeclMember is the (at most one) class constructor.
type ConstructorDeclMember struct {
	Token  token.Token
	Params []*Param
	Body   *BlockStatement
}

func (m *ConstructorDeclMember) Accept(v Visitor)     { v.VisitConstructorDeclMember(m) }
func (m *ConstructorDeclMember) statementNode()       {}
func (m *ConstructorDeclMember) TokenLiteral() string { return m.Token.Lexeme }

// ClassDeclStatement is `class Name (: Base)? { members }`.
type ClassDeclStatement struct {
	Token   token.Token
	Name    *Identifier
	Base    *Identifier // nil if no base clause
	Members []Statement // *FieldDeclMember | *MethodDeclMember | *ConstructorDeclMember
}

func (s *ClassDeclStatement) Accept(v Visitor)     { v.VisitClassDeclStatement(s) }
func (s *ClassDeclStatement) statementNode()       {}
func (s *ClassDeclStatement) TokenLiteral() string { return s.Token.Lexeme }

// SwitchCase is one `case expr: body` arm.
type SwitchCase struct {
	Value Expression
	Body  *BlockStatement
}

// SwitchStatement is `switch (subject) { case ... default ... }`.
type SwitchStatement struct {
	Token   token.Token
	Subject Expression
	Cases   []*SwitchCase
	Default *BlockStatement
}

func (s *SwitchStatement) Accept(v Visitor)     { v.VisitSwitchStatement(s) }
func (s *SwitchStatement) statementNode()       {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Lexeme }

// TryCatchStatement is `try block catch (id) block`.
type TryCatchStatement struct {
	Token    token.Token
	Try      *BlockStatement
	CatchVar *Identifier
	Catch    *BlockStatement
}

func (s *TryCatchStatement) Accept(v Visitor)     { v.VisitTryCatchStatement(s) }
func (s *TryCatchStatement) statementNode()       {}
func (s *TryCatchStatement) TokenLiteral() string { return s.Token.Lexeme }

// ---- Expressions ----

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (e *Identifier) Accept(v Visitor)      { v.VisitIdentifier(e) }
func (e *Identifier) expressionNode()       {}
func (e *Identifier) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Identifier) GetToken() token.Token { return e.Token }

// IntegerLiteral is an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (e *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(e) }
func (e *IntegerLiteral) expressionNode()       {}
func (e *IntegerLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *IntegerLiteral) GetToken() token.Token { return e.Token }

// FloatLiteral is a floating-point literal (contains a '.').
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (e *FloatLiteral) Accept(v Visitor)      { v.VisitFloatLiteral(e) }
func (e *FloatLiteral) expressionNode()       {}
func (e *FloatLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *FloatLiteral) GetToken() token.Token { return e.Token }

// StringLiteral is a string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(e) }
func (e *StringLiteral) expressionNode()       {}
func (e *StringLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *StringLiteral) GetToken() token.Token { return e.Token }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (e *BoolLiteral) Accept(v Visitor)      { v.VisitBoolLiteral(e) }
func (e *BoolLiteral) expressionNode()       {}
func (e *BoolLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *BoolLiteral) GetToken() token.Token { return e.Token }

// NullLiteral is `null`.
type NullLiteral struct {
	Token token.Token
}

func (e *NullLiteral) Accept(v Visitor)      { v.VisitNullLiteral(e) }
func (e *NullLiteral) expressionNode()       {}
func (e *NullLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *NullLiteral) GetToken() token.Token { return e.Token }

// ArrayLiteral is `[e1, ..., en]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (e *ArrayLiteral) Accept(v Visitor)      { v.VisitArrayLiteral(e) }
func (e *ArrayLiteral) expressionNode()       {}
func (e *ArrayLiteral) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ArrayLiteral) GetToken() token.Token { return e.Token }

// ThisExpression is `this`.
type ThisExpression struct {
	Token token.Token
}

func (e *ThisExpression) Accept(v Visitor)      { v.VisitThisExpression(e) }
func (e *ThisExpression) expressionNode()       {}
func (e *ThisExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ThisExpression) GetToken() token.Token { return e.Token }

// GroupExpression is `(e)`.
type GroupExpression struct {
	Token token.Token
	Inner Expression
}

func (e *GroupExpression) Accept(v Visitor)      { v.VisitGroupExpression(e) }
func (e *GroupExpression) expressionNode()       {}
func (e *GroupExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *GroupExpression) GetToken() token.Token { return e.Token }

// UnaryExpression is `!x`, `-x`, `+x`.
type UnaryExpression struct {
	Token   token.Token
	Op      string
	Operand Expression
}

func (e *UnaryExpression) Accept(v Visitor)      { v.VisitUnaryExpression(e) }
func (e *UnaryExpression) expressionNode()       {}
func (e *UnaryExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *UnaryExpression) GetToken() token.Token { return e.Token }

// BinaryExpression covers arithmetic, relational and equality operators.
type BinaryExpression struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (e *BinaryExpression) Accept(v Visitor)      { v.VisitBinaryExpression(e) }
func (e *BinaryExpression) expressionNode()       {}
func (e *BinaryExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *BinaryExpression) GetToken() token.Token { return e.Token }

// LogicalExpression is `&&` or `||`.
type LogicalExpression struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (e *LogicalExpression) Accept(v Visitor)      { v.VisitLogicalExpression(e) }
func (e *LogicalExpression) expressionNode()       {}
func (e *LogicalExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *LogicalExpression) GetToken() token.Token { return e.Token }

// TernaryExpression is `c ? a : b`.
type TernaryExpression struct {
	Token     token.Token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *TernaryExpression) Accept(v Visitor)      { v.VisitTernaryExpression(e) }
func (e *TernaryExpression) expressionNode()       {}
func (e *TernaryExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *TernaryExpression) GetToken() token.Token { return e.Token }

// CallExpression is `callee(args)`, the first call suffix consuming the
// callee handle threaded through a left-hand-side chain.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (e *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(e) }
func (e *CallExpression) expressionNode()       {}
func (e *CallExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *CallExpression) GetToken() token.Token { return e.Token }

// IndexExpression is `a[i]`.
type IndexExpression struct {
	Token token.Token
	Array Expression
	Index Expression
}

func (e *IndexExpression) Accept(v Visitor)      { v.VisitIndexExpression(e) }
func (e *IndexExpression) expressionNode()       {}
func (e *IndexExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *IndexExpression) GetToken() token.Token { return e.Token }

// MemberExpression is `a.x`.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property string
}

func (e *MemberExpression) Accept(v Visitor)      { v.VisitMemberExpression(e) }
func (e *MemberExpression) expressionNode()       {}
func (e *MemberExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *MemberExpression) GetToken() token.Token { return e.Token }

// NewExpression is `new C(args)`.
type NewExpression struct {
	Token     token.Token
	ClassName *Identifier
	Arguments []Expression
}

func (e *NewExpression) Accept(v Visitor)      { v.VisitNewExpression(e) }
func (e *NewExpression) expressionNode()       {}
func (e *NewExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *NewExpression) GetToken() token.Token { return e.Token }
