package lexer

import (
	"testing"

	"github.com/cslang/compiscript/internal/token"
)

func TestNextTokenCoreTokens(t *testing.T) {
	input := `let x: integer = 5;
const name: string = "hi";
if (x < 10) { x = x + 1; } else { x = x - 1; }
class Dog : Animal { constructor() {} }
`
	want := []token.Type{
		token.LET, token.IDENT, token.COLON, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON,
		token.CONST, token.IDENT, token.COLON, token.IDENT, token.ASSIGN, token.STRING, token.SEMICOLON,
		token.IF, token.LPAREN, token.IDENT, token.LT, token.INT, token.RPAREN,
		token.LBRACE, token.IDENT, token.ASSIGN, token.IDENT, token.PLUS, token.INT, token.SEMICOLON, token.RBRACE,
		token.ELSE,
		token.LBRACE, token.IDENT, token.ASSIGN, token.IDENT, token.MINUS, token.INT, token.SEMICOLON, token.RBRACE,
		token.CLASS, token.IDENT, token.COLON, token.IDENT,
		token.LBRACE, token.CONSTRUCTOR, token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.RBRACE,
		token.EOF,
	}

	l := New(input)
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got %q, want %q (lexeme %q)", i, tok.Type, wantType, tok.Lexeme)
		}
	}
}

func TestNextTokenFloatVsInteger(t *testing.T) {
	l := New("1 1.5 1.")
	if tok := l.NextToken(); tok.Type != token.INT || tok.Literal.(int64) != 1 {
		t.Fatalf("expected integer 1, got %+v", tok)
	}
	if tok := l.NextToken(); tok.Type != token.FLOAT || tok.Literal.(float64) != 1.5 {
		t.Fatalf("expected float 1.5, got %+v", tok)
	}
	// "1." with no trailing digit is an integer followed by a DOT.
	if tok := l.NextToken(); tok.Type != token.INT {
		t.Fatalf("expected integer before bare dot, got %+v", tok)
	}
	if tok := l.NextToken(); tok.Type != token.DOT {
		t.Fatalf("expected dot token, got %+v", tok)
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	l := New(`"never closes`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for an unterminated string, got %v", tok.Type)
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	l := New("// comment\nlet")
	tok := l.NextToken()
	if tok.Type != token.LET {
		t.Fatalf("expected LET after a skipped comment, got %v", tok.Type)
	}
	if tok.Line != 2 {
		t.Fatalf("expected LET on line 2, got line %d", tok.Line)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\"d"`)
	tok := l.NextToken()
	want := "a\nb\tc\"d"
	if tok.Literal.(string) != want {
		t.Fatalf("got %q, want %q", tok.Literal, want)
	}
}
