package ast

import (
	"bytes"

	"github.com/cloudcmds/monkey/token"
)

// missingValue is written in place of a value expression that was not parsed.
const missingValue = "None"

// Var is a statement that binds a name to a value.
// This is used for "let x = value;" statements.
type Var struct {
	// the "let" token
	Token token.Token

	// Name is the identifier being bound
	Name *Ident

	// Value is the bound expression. It is nil when the value was not parsed.
	Value Expr

	// Terminator is the token that ended the statement: a ";", or EOF when
	// the input ran out first.
	Terminator token.Token
}

func (s *Var) stmtNode() {}

func (s *Var) TokenLiteral() string { return s.Token.Literal }

func (s *Var) Pos() token.Position { return s.Token.StartPosition }

func (s *Var) End() token.Position { return stmtEnd(s.Terminator, s.Value, s.Name) }

func (s *Var) String() string {
	var out bytes.Buffer
	out.WriteString(s.TokenLiteral() + " ")
	if s.Name != nil {
		out.WriteString(s.Name.String())
	}
	out.WriteString(" = ")
	writeValue(&out, s.Value)
	out.WriteString(";")
	return out.String()
}

// Return is a statement that returns a value from the current function.
type Return struct {
	// the "return" token
	Token token.Token

	// Value is the returned expression. It is nil when the value was not parsed.
	Value Expr

	// Terminator is the token that ended the statement: a ";", or EOF.
	Terminator token.Token
}

func (s *Return) stmtNode() {}

func (s *Return) TokenLiteral() string { return s.Token.Literal }

func (s *Return) Pos() token.Position { return s.Token.StartPosition }

func (s *Return) End() token.Position {
	if end := stmtEnd(s.Terminator, s.Value, nil); end.IsValid() {
		return end
	}
	return s.Token.EndPosition
}

func (s *Return) String() string {
	var out bytes.Buffer
	out.WriteString(s.TokenLiteral() + " ")
	writeValue(&out, s.Value)
	out.WriteString(";")
	return out.String()
}

func writeValue(out *bytes.Buffer, value Expr) {
	if value == nil {
		out.WriteString(missingValue)
		return
	}
	out.WriteString(value.String())
}

func stmtEnd(terminator token.Token, value Expr, name *Ident) token.Position {
	switch {
	case terminator.Type != "":
		return terminator.EndPosition
	case value != nil:
		return value.End()
	case name != nil:
		return name.End()
	}
	return token.NoPos
}
