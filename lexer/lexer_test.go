package lexer

import (
	"testing"

	"github.com/cloudcmds/monkey/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	expectedType    token.Type
	expectedLiteral string
}

func checkTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken1(t *testing.T) {
	input := "=+(){},;"
	checkTokens(t, input, []expectedToken{
		{token.ASSIGN, "="},
		{token.PLUS, "+"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.COMMA, ","},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestNextToken2(t *testing.T) {
	input := `let five = 5;
let ten = 10;

let add = fn(x, y) {
  x + y;
};

let result = add(five, ten);
!-/*5;
5 < 10 > 5;

if (5 < 10) {
	return true;
} else {
	return false;
}

10 == 10;
10 != 9;
`
	checkTokens(t, input, []expectedToken{
		{token.LET, "let"},
		{token.IDENT, "five"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"},
		{token.IDENT, "ten"},
		{token.ASSIGN, "="},
		{token.INT, "10"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"},
		{token.IDENT, "add"},
		{token.ASSIGN, "="},
		{token.FUNCTION, "fn"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"},
		{token.IDENT, "result"},
		{token.ASSIGN, "="},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "five"},
		{token.COMMA, ","},
		{token.IDENT, "ten"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.BANG, "!"},
		{token.MINUS, "-"},
		{token.SLASH, "/"},
		{token.ASTERISK, "*"},
		{token.INT, "5"},
		{token.SEMICOLON, ";"},
		{token.INT, "5"},
		{token.LT, "<"},
		{token.INT, "10"},
		{token.GT, ">"},
		{token.INT, "5"},
		{token.SEMICOLON, ";"},
		{token.IF, "if"},
		{token.LPAREN, "("},
		{token.INT, "5"},
		{token.LT, "<"},
		{token.INT, "10"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.TRUE, "true"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.FALSE, "false"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.INT, "10"},
		{token.EQ, "=="},
		{token.INT, "10"},
		{token.SEMICOLON, ";"},
		{token.INT, "10"},
		{token.NOT_EQ, "!="},
		{token.INT, "9"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
}

func TestLetFive(t *testing.T) {
	tokens := Tokenize("let five = 5;")
	require.Len(t, tokens, 6)
	expected := []token.Token{
		{Type: token.LET, Literal: "let"},
		{Type: token.IDENT, Literal: "five"},
		{Type: token.ASSIGN, Literal: "="},
		{Type: token.INT, Literal: "5"},
		{Type: token.SEMICOLON, Literal: ";"},
		{Type: token.EOF, Literal: ""},
	}
	for i, tok := range tokens {
		assert.Equal(t, expected[i].Type, tok.Type, "tokens[%d]", i)
		assert.Equal(t, expected[i].Literal, tok.Literal, "tokens[%d]", i)
	}
}

func TestEqualityOperators(t *testing.T) {
	checkTokens(t, "10 == 10;", []expectedToken{
		{token.INT, "10"},
		{token.EQ, "=="},
		{token.INT, "10"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	})
	// Doubled operators never split, single ones never merge.
	checkTokens(t, "===!==!!", []expectedToken{
		{token.EQ, "=="},
		{token.ASSIGN, "="},
		{token.NOT_EQ, "!="},
		{token.ASSIGN, "="},
		{token.BANG, "!"},
		{token.BANG, "!"},
		{token.EOF, ""},
	})
	checkTokens(t, "= =! =", []expectedToken{
		{token.ASSIGN, "="},
		{token.ASSIGN, "="},
		{token.BANG, "!"},
		{token.ASSIGN, "="},
		{token.EOF, ""},
	})
	checkTokens(t, "x=", []expectedToken{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.EOF, ""},
	})
	checkTokens(t, "!", []expectedToken{
		{token.BANG, "!"},
		{token.EOF, ""},
	})
}

func TestIdentifiersExcludeDigits(t *testing.T) {
	checkTokens(t, "foo1 _bar_baz x2y", []expectedToken{
		{token.IDENT, "foo"},
		{token.INT, "1"},
		{token.IDENT, "_bar_baz"},
		{token.IDENT, "x"},
		{token.INT, "2"},
		{token.IDENT, "y"},
		{token.EOF, ""},
	})
}

func TestIntegers(t *testing.T) {
	checkTokens(t, "0 007 12.5 -3", []expectedToken{
		{token.INT, "0"},
		{token.INT, "007"},
		{token.INT, "12"},
		{token.ILLEGAL, "."},
		{token.INT, "5"},
		{token.MINUS, "-"},
		{token.INT, "3"},
		{token.EOF, ""},
	})
}

func TestIllegal(t *testing.T) {
	checkTokens(t, "let @ = #;世", []expectedToken{
		{token.LET, "let"},
		{token.ILLEGAL, "@"},
		{token.ASSIGN, "="},
		{token.ILLEGAL, "#"},
		{token.SEMICOLON, ";"},
		{token.ILLEGAL, "世"},
		{token.EOF, ""},
	})
	// A NUL byte in the input is a character, not the end of input.
	checkTokens(t, "a\x00b", []expectedToken{
		{token.IDENT, "a"},
		{token.ILLEGAL, "\x00"},
		{token.IDENT, "b"},
		{token.EOF, ""},
	})
}

func TestWhitespace(t *testing.T) {
	checkTokens(t, " \t\r\n let\r\n\tx \n", []expectedToken{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.EOF, ""},
	})
}

func TestEOFIsIdempotent(t *testing.T) {
	for _, input := range []string{"", "   ", "x", "let x = 1;\n"} {
		l := New(input)
		var tok token.Token
		for tok = l.Next(); tok.Type != token.EOF; tok = l.Next() {
		}
		for i := 0; i < 5; i++ {
			tok = l.Next()
			assert.Equal(t, token.EOF, tok.Type, "input %q", input)
			assert.Equal(t, "", tok.Literal, "input %q", input)
		}
		assert.Equal(t, l.position+1, l.readPosition)
	}
}

func TestReadPositionInvariant(t *testing.T) {
	l := New("let a = b;")
	for {
		assert.Equal(t, l.position+1, l.readPosition)
		if tok := l.Next(); tok.Type == token.EOF {
			break
		}
	}
}

func TestPositions(t *testing.T) {
	input := "let x = 5;\n  return x;"
	l := New(input)
	l.SetFilename("main.mk")
	assert.Equal(t, "main.mk", l.Filename())

	let := l.Next()
	assert.Equal(t, 1, let.StartPosition.LineNumber())
	assert.Equal(t, 1, let.StartPosition.ColumnNumber())
	assert.Equal(t, 4, let.EndPosition.ColumnNumber())
	assert.Equal(t, "main.mk", let.StartPosition.File)

	for i := 0; i < 4; i++ {
		l.Next()
	}
	ret := l.Next()
	require.Equal(t, token.RETURN, ret.Type)
	assert.Equal(t, 2, ret.StartPosition.LineNumber())
	assert.Equal(t, 3, ret.StartPosition.ColumnNumber())
	assert.Equal(t, 13, ret.StartPosition.Char)
	assert.Equal(t, "  return x;", l.GetLineText(ret))

	x := l.Next()
	assert.Equal(t, 10, x.StartPosition.ColumnNumber())
	assert.Equal(t, 11, x.EndPosition.ColumnNumber())
}

func TestGetLineText(t *testing.T) {
	input := "let a = 1;\r\nlet b = 2;"
	tokens := Tokenize(input)
	l := New(input)
	assert.Equal(t, "let a = 1;", l.GetLineText(tokens[0]))
	assert.Equal(t, "let b = 2;", l.GetLineText(tokens[5]))
	assert.Equal(t, "", l.GetLineText(token.Token{StartPosition: token.Position{LineStart: 100}}))
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("")
	require.Len(t, tokens, 1)
	assert.Equal(t, token.EOF, tokens[0].Type)

	tokens = Tokenize("return x;")
	require.Len(t, tokens, 4)
	assert.Equal(t, token.RETURN, tokens[0].Type)
	assert.Equal(t, token.EOF, tokens[3].Type)
}

func TestInvalidUTF8(t *testing.T) {
	tokens := Tokenize("a\xffb é")
	require.Len(t, tokens, 5)
	assert.Equal(t, token.IDENT, tokens[0].Type)
	assert.Equal(t, token.ILLEGAL, tokens[1].Type)
	assert.Equal(t, "\xff", tokens[1].Literal)
	assert.Equal(t, 2, tokens[1].EndPosition.Char)
	assert.Equal(t, "b", tokens[2].Literal)
	assert.Equal(t, token.ILLEGAL, tokens[3].Type)
	assert.Equal(t, "é", tokens[3].Literal)
	assert.Equal(t, 4, tokens[3].StartPosition.Char)

	l := New("let x = \xff;")
	assert.Equal(t, "let x = \xff;", l.GetLineText(l.Next()))
}

func TestTokenizeWithFilename(t *testing.T) {
	tokens := Tokenize("let x", WithFilename("main.mk"))
	require.Len(t, tokens, 3)
	for _, tok := range tokens {
		assert.Equal(t, "main.mk", tok.StartPosition.File)
	}
}
