// Package parser implements a recursive-descent + Pratt expression parser
// for Compiscript, grounded on the teacher's internal/parser package
// (prefix/infix function tables keyed by token.Type, a precedence table,
// curToken/peekToken lookahead) but cut down to Compiscript's grammar.
// It knows nothing about internal/checker; it only builds ast.Node values.
package parser

import (
	"strconv"

	"github.com/cslang/compiscript/internal/ast"
	"github.com/cslang/compiscript/internal/diagnostics"
	"github.com/cslang/compiscript/internal/lexer"
	"github.com/cslang/compiscript/internal/token"
)

// Precedence levels, lowest to highest.
const (
	LOWEST int = iota
	TERNARY
	LOGICOR
	LOGICAND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
)

var precedences = map[token.Type]int{
	token.QUESTION: TERNARY,
	token.OR:       LOGICOR,
	token.AND:      LOGICAND,
	token.EQ:       EQUALS,
	token.NEQ:      EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
	token.DOT:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds all parsing state over a single Lexer.
type Parser struct {
	l     *lexer.Lexer
	diags *diagnostics.Buffer

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over l, reporting syntax problems into diags.
func New(l *lexer.Lexer, diags *diagnostics.Buffer) *Parser {
	p := &Parser{l: l, diags: diags}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.THIS, p.parseThisExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupExpression)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.PLUS, p.parseUnaryExpression)
	p.registerPrefix(token.NEW, p.parseNewExpression)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	for _, t := range []token.Type{token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.LT, token.GT, token.LTE, token.GTE, token.EQ, token.NEQ} {
		p.registerInfix(t, p.parseBinaryExpression)
	}
	p.registerInfix(token.AND, p.parseLogicalExpression)
	p.registerInfix(token.OR, p.parseLogicalExpression)
	p.registerInfix(token.QUESTION, p.parseTernaryExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	if p.peekToken.Type == token.ILLEGAL {
		p.reportIllegal(p.peekToken)
	}
}

// reportIllegal surfaces a lexer-phase diagnostic for a malformed token;
// parsing continues on it as an ordinary (if unrecognized) token, so a
// single bad character doesn't suppress every diagnostic after it.
func (p *Parser) reportIllegal(tok token.Token) {
	if tok.Literal == "unterminated string" {
		p.diags.Addf(diagnostics.PhaseLexer, diagnostics.LUnterminated, tok, "unterminated string literal")
		return
	}
	p.diags.Addf(diagnostics.PhaseLexer, diagnostics.LIllegalChar, tok, "illegal character %q", tok.Lexeme)
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.diags.Addf(diagnostics.PhaseParser, diagnostics.PExpectedToken, p.peekToken,
		"expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.diags.Addf(diagnostics.PhaseParser, diagnostics.PUnexpectedToken, t,
		"unexpected token %q", t.Lexeme)
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into an *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET, token.VAR:
		return p.parseVarDeclStatement()
	case token.CONST:
		return p.parseConstDeclStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.FOREACH:
		return p.parseForeachStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclStatement()
	case token.CLASS:
		return p.parseClassDeclStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.TRY:
		return p.parseTryCatchStatement()
	case token.SEMICOLON:
		return nil
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

// ---- declarations ----

func (p *Parser) parseVarDeclStatement() ast.Statement {
	stmt := &ast.VarDeclStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.TypeAnnotation = p.parseTypeExpr()
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	} else {
		p.peekError(token.SEMICOLON)
	}
	return stmt
}

func (p *Parser) parseConstDeclStatement() ast.Statement {
	stmt := &ast.ConstDeclStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.TypeAnnotation = p.parseTypeExpr()
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseTypeExpr parses a (possibly array) type annotation: `integer`,
// `Foo`, `integer[]`, `Foo[][]`, ...
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	if !p.curTokenIs(token.IDENT) {
		p.diags.Addf(diagnostics.PhaseParser, diagnostics.PExpectedToken, p.curToken,
			"expected a type name, got %s", p.curToken.Type)
		return nil
	}
	var t ast.TypeExpr = &ast.NamedTypeExpr{Token: p.curToken, Name: p.curToken.Lexeme}
	for p.peekTokenIs(token.LBRACKET) {
		p.nextToken()
		if !p.expectPeek(token.RBRACKET) {
			return t
		}
		t = &ast.ArrayTypeExpr{Token: p.curToken, Elem: t}
	}
	return t
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if !p.expectPeek(token.LPAREN) {
		return params
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseOneParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseOneParam())
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseOneParam() *ast.Param {
	param := &ast.Param{Token: p.curToken, Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		param.TypeAnnotation = p.parseTypeExpr()
	}
	return param
}

func (p *Parser) parseFunctionDeclStatement() ast.Statement {
	stmt := &ast.FunctionDeclStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	stmt.Params = p.parseParamList()
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.ReturnType = p.parseTypeExpr()
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseClassDeclStatement() ast.Statement {
	stmt := &ast.ClassDeclStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Base = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		member := p.parseClassMember()
		if member != nil {
			stmt.Members = append(stmt.Members, member)
		}
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseClassMember() ast.Statement {
	switch p.curToken.Type {
	case token.CONSTRUCTOR:
		m := &ast.ConstructorDeclMember{Token: p.curToken}
		m.Params = p.parseParamList()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		m.Body = p.parseBlockStatement()
		return m
	case token.FUNCTION:
		m := &ast.MethodDeclMember{Token: p.curToken}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		m.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		m.Params = p.parseParamList()
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			m.ReturnType = p.parseTypeExpr()
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		m.Body = p.parseBlockStatement()
		return m
	case token.LET, token.VAR:
		m := &ast.FieldDeclMember{Token: p.curToken}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		m.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			m.TypeAnnotation = p.parseTypeExpr()
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			m.Value = p.parseExpression(LOWEST)
		}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return m
	case token.CONST:
		m := &ast.FieldDeclMember{Token: p.curToken, IsConst: true}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		m.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			m.TypeAnnotation = p.parseTypeExpr()
		}
		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
		p.nextToken()
		m.Value = p.parseExpression(LOWEST)
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return m
	default:
		p.diags.Addf(diagnostics.PhaseParser, diagnostics.PUnexpectedToken, p.curToken,
			"unexpected token %q in class body", p.curToken.Lexeme)
		return nil
	}
}

// ---- statements ----

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Then = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			stmt.Else = p.parseIfStatement()
		} else if p.expectPeek(token.LBRACE) {
			stmt.Else = p.parseBlockStatement()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	stmt := &ast.DoWhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if !p.expectPeek(token.WHILE) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	if !p.curTokenIs(token.SEMICOLON) {
		stmt.Init = p.parseStatement()
		p.nextToken()
	} else {
		p.nextToken()
	}

	if !p.curTokenIs(token.SEMICOLON) {
		stmt.Condition = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	p.nextToken()
	if !p.curTokenIs(token.RPAREN) {
		stmt.Update = p.parseExpressionOrAssignStatement()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseForeachStatement() ast.Statement {
	stmt := &ast.ForeachStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Var = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	stmt.Iterable = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	stmt := &ast.SwitchStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Subject = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.CASE:
			p.nextToken()
			value := p.parseExpression(LOWEST)
			if !p.expectPeek(token.COLON) {
				return stmt
			}
			body := &ast.BlockStatement{Token: p.curToken}
			p.nextToken()
			for !p.curTokenIs(token.CASE) && !p.curTokenIs(token.DEFAULT) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
				s := p.parseStatement()
				if s != nil {
					body.Statements = append(body.Statements, s)
				}
				p.nextToken()
			}
			stmt.Cases = append(stmt.Cases, &ast.SwitchCase{Value: value, Body: body})
			continue
		case token.DEFAULT:
			if !p.expectPeek(token.COLON) {
				return stmt
			}
			body := &ast.BlockStatement{Token: p.curToken}
			p.nextToken()
			for !p.curTokenIs(token.CASE) && !p.curTokenIs(token.DEFAULT) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
				s := p.parseStatement()
				if s != nil {
					body.Statements = append(body.Statements, s)
				}
				p.nextToken()
			}
			stmt.Default = body
			continue
		default:
			p.nextToken()
		}
	}
	return stmt
}

func (p *Parser) parseTryCatchStatement() ast.Statement {
	stmt := &ast.TryCatchStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Try = p.parseBlockStatement()
	if !p.expectPeek(token.CATCH) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.CatchVar = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Catch = p.parseBlockStatement()
	return stmt
}

// parseExpressionOrAssignStatement parses a leading expression and, if
// followed by `=`, reinterprets it as an assignment target (identifier or
// property form); otherwise the expression stands alone as a statement.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)

	if p.peekTokenIs(token.ASSIGN) {
		switch expr.(type) {
		case *ast.Identifier, *ast.MemberExpression:
			p.nextToken()
			p.nextToken()
			value := p.parseExpression(LOWEST)
			stmt := &ast.AssignStatement{Token: tok, Target: expr, Value: value}
			if p.peekTokenIs(token.SEMICOLON) {
				p.nextToken()
			}
			return stmt
		}
	}

	stmt := &ast.ExpressionStatement{Token: tok, Expression: expr}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// ---- expressions ----

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	v, err := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	if err != nil {
		p.diags.Addf(diagnostics.PhaseParser, diagnostics.PBadNumber, p.curToken, "invalid integer literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	v, err := strconv.ParseFloat(p.curToken.Lexeme, 64)
	if err != nil {
		p.diags.Addf(diagnostics.PhaseParser, diagnostics.PBadNumber, p.curToken, "invalid float literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parseGroupExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.GroupExpression{Token: tok, Inner: inner}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.curToken}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return lit
	}
	p.nextToken()
	lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return lit
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	op := p.curToken.Lexeme
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpression{Token: tok, Op: op, Operand: operand}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := p.curToken.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpression{Token: tok, Op: op, Left: left, Right: right}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := p.curToken.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.LogicalExpression{Token: tok, Op: op, Left: left, Right: right}
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	then := p.parseExpression(LOWEST)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	elseExpr := p.parseExpression(LOWEST)
	return &ast.TernaryExpression{Token: tok, Condition: cond, Then: then, Else: elseExpr}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.curToken, Callee: callee}
	expr.Arguments = p.parseExpressionList(token.RPAREN)
	return expr
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseIndexExpression(arr ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpression{Token: tok, Array: arr, Index: idx}
}

func (p *Parser) parseMemberExpression(obj ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.MemberExpression{Token: tok, Object: obj, Property: p.curToken.Lexeme}
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	class := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	expr := &ast.NewExpression{Token: tok, ClassName: class}
	if !p.expectPeek(token.LPAREN) {
		return expr
	}
	expr.Arguments = p.parseExpressionList(token.RPAREN)
	return expr
}
