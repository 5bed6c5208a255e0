package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdecook/plox/internal/lexer"
	"github.com/sdecook/plox/internal/token"
)

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := lexer.New("(){}, . - + ; * / == != <= >= < > =").Scan()
	assert.Equal(t, []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.EqualEqual, token.BangEqual,
		token.LessEqual, token.GreaterEqual, token.Less, token.Greater,
		token.Equal, token.EOF,
	}, types(toks))
}

func TestScanNumbersPreserveIntVsDouble(t *testing.T) {
	toks := lexer.New("42 3.14").Scan()
	require.Len(t, toks, 3)
	assert.True(t, toks[0].Literal.IsInt)
	assert.Equal(t, float64(42), toks[0].Literal.Num)
	assert.False(t, toks[1].Literal.IsInt)
	assert.Equal(t, 3.14, toks[1].Literal.Num)
}

func TestScanStringStripsQuotes(t *testing.T) {
	toks := lexer.New(`"hello world"`).Scan()
	require.Len(t, toks, 2)
	assert.Equal(t, "hello world", toks[0].Literal.Str)
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	l := lexer.New(`"unterminated`)
	l.Scan()
	require.Len(t, l.Errors(), 1)
	assert.Contains(t, l.Errors()[0], "Unterminated string")
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := lexer.New("and class fooBar _x9").Scan()
	assert.Equal(t, []token.Type{token.And, token.Class, token.Identifier, token.Identifier, token.EOF}, types(toks))
}

func TestScanLineCountingAcrossComments(t *testing.T) {
	toks := lexer.New("var a = 1; // comment\nvar b = 2;").Scan()
	var bLine int
	for _, tok := range toks {
		if tok.Type == token.Identifier && tok.Lexeme == "b" {
			bLine = tok.Line
		}
	}
	assert.Equal(t, 2, bLine)
}

func TestScanUnexpectedCharacterReportsErrorButContinues(t *testing.T) {
	l := lexer.New("var a = 1; @ var b = 2;")
	toks := l.Scan()
	require.Len(t, l.Errors(), 1)
	assert.Contains(t, l.Errors()[0], "Unexpected character")
	// scanning continues past the bad character
	assert.Contains(t, types(toks), token.Var)
}
