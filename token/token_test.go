package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {

		// Obviously this will pass.
		if LookupIdentifier(key) != val {
			t.Errorf("Lookup of %s failed", key)
		}

		// Once the keywords are uppercase they'll no longer
		// match - so we find them as identifiers.
		if LookupIdentifier(strings.ToUpper(key)) != IDENT {
			t.Errorf("Lookup of %s failed", key)
		}
	}
}

func TestLookupNonKeywords(t *testing.T) {
	for _, word := range []string{"five", "function", "_", "lets", "nil", "Return"} {
		assert.Equal(t, IDENT, LookupIdentifier(word), word)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{ASSIGN, "="},
		{EQ, "=="},
		{NOT_EQ, "!="},
		{IDENT, "Ident"},
		{INT, "Int"},
		{EOF, "EOF"},
		{ILLEGAL, "Illegal"},
		{LBRACE, "{"},
		{RBRACE, "}"},
		{FUNCTION, "fn"},
		{RETURN, "return"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.typ.String())
	}
}

func TestKeywords(t *testing.T) {
	words := Keywords()
	require.Equal(t, []string{"else", "false", "fn", "if", "let", "return", "true"}, words)
	for _, w := range words {
		assert.True(t, Type(w).IsKeyword(), w)
	}
	assert.False(t, IDENT.IsKeyword())
	assert.False(t, ASSIGN.IsKeyword())
}

func TestPosition(t *testing.T) {
	tok := Token{
		Type:    IDENT,
		Literal: "foo",
		StartPosition: Position{
			Line:   2,
			Column: 0,
		},
	}
	// Switches to 1-indexed
	assert.Equal(t, 3, tok.StartPosition.LineNumber())
	assert.Equal(t, 1, tok.StartPosition.ColumnNumber())
	assert.True(t, tok.StartPosition.IsValid())
	assert.False(t, NoPos.IsValid())
}
