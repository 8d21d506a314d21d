// Package ast defines the abstract syntax tree representation of monkey code.
package ast

import (
	"bytes"

	"github.com/cloudcmds/monkey/token"
)

// Node represents a portion of the syntax tree. Every node retains the token
// that introduced it.
type Node interface {
	// TokenLiteral returns the literal text of the token that introduced
	// the node.
	TokenLiteral() string

	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. The output
	// is deterministic and is used by tests as a fixture.
	String() string
}

// Stmt represents a statement node. Statements bind names or cause effects
// but do not evaluate to a value.
//
// The set of statements is closed: *Var and *Return.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value.
//
// The set of expressions is closed: *Ident.
type Expr interface {
	Node
	exprNode()
}

// Program represents a complete monkey program, which consists of a series
// of statements in source order.
type Program struct {
	Stmts []Stmt // statements in the program
}

// TokenLiteral returns the literal of the first statement, or an empty
// string if the program has no statements.
func (p *Program) TokenLiteral() string {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].TokenLiteral()
	}
	return ""
}

// Pos returns the start of the first statement, or NoPos for an empty program.
func (p *Program) Pos() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.NoPos
}

// End returns the end of the last statement, or NoPos for an empty program.
func (p *Program) End() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[len(p.Stmts)-1].End()
	}
	return token.NoPos
}

// String concatenates the string form of each statement, in order.
func (p *Program) String() string {
	var out bytes.Buffer
	for _, stmt := range p.Stmts {
		out.WriteString(stmt.String())
	}
	return out.String()
}
