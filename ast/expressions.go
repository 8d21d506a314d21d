package ast

import "github.com/cloudcmds/monkey/token"

// Ident is an expression node that refers to a name.
type Ident struct {
	// the identifier token
	Token token.Token

	// Name is the identifier, copied from the token literal
	Name string
}

// NewIdent creates an Ident node from an identifier token.
func NewIdent(tok token.Token) *Ident {
	return &Ident{Token: tok, Name: tok.Literal}
}

func (e *Ident) exprNode() {}

func (e *Ident) TokenLiteral() string { return e.Token.Literal }

func (e *Ident) Pos() token.Position { return e.Token.StartPosition }

func (e *Ident) End() token.Position { return e.Token.EndPosition }

func (e *Ident) String() string { return e.Name }
