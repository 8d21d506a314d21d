package parser

import (
	"github.com/cloudcmds/monkey/ast"
	"github.com/cloudcmds/monkey/token"
)

// Statement parsing methods for the Parser. Only let and return
// statements are recognized; any other token is passed over.

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLet()
	case token.RETURN:
		return p.parseReturn()
	case token.ILLEGAL:
		p.illegalToken()
	case token.SEMICOLON:
	default:
		if p.atStatementStart {
			p.skipped = append(p.skipped, p.curToken)
		}
	}
	return nil
}

func (p *Parser) parseLet() ast.Stmt {
	stmt := &ast.Var{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = ast.NewIdent(p.curToken)
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression()
	stmt.Terminator = p.curToken
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.Return{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression()
	stmt.Terminator = p.curToken
	return stmt
}

// parseExpression is the entry point for value expressions. Expressions are
// not parsed yet: the tokens of the value are passed over until the current
// token is the terminating ";" or EOF, and the returned expression is nil.
// Illegal tokens found on the way are still reported.
func (p *Parser) parseExpression() ast.Expr {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.ILLEGAL) {
			p.illegalToken()
		}
		p.nextToken()
	}
	return nil
}
