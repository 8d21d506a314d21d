// Package parser is used to generate the abstract syntax tree (AST) for a program.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling ParseProgram() or Parse() to produce the AST.
// Syntax problems do not stop parsing. They are collected as diagnostics and
// are available from Errors() and Diagnostics() afterwards.
package parser

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/cloudcmds/monkey/ast"
	"github.com/cloudcmds/monkey/errors"
	"github.com/cloudcmds/monkey/lexer"
	"github.com/cloudcmds/monkey/token"
)

// Parse the provided input as monkey source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	return New(lexer.New(input), options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in token positions and diagnostics.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// Parser object
type Parser struct {
	// l is our lexer
	l *lexer.Lexer

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// parsing errors collected during parsing
	errors []ParserError

	// statement-starting tokens that did not begin a known statement
	skipped []token.Token

	// true when curToken is the first token of a statement
	atStatementStart bool

	// The filename of the input
	filename string
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{l: l, atStatementStart: true}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" {
		l.SetFilename(p.filename)
	} else {
		p.filename = l.Filename()
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]
	return p
}

// nextToken moves to the next token from the lexer, updating both
// curToken and peekToken.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.Next()
}

// ParseProgram parses statements until the end of input and returns the
// resulting program. It always returns a program; check Errors() to see
// whether the input was well formed.
func (p *Parser) ParseProgram() *ast.Program {
	program, _ := p.Parse(context.Background())
	return program
}

// Parse the program that is provided via the lexer. The returned program
// holds every statement that parsed successfully. The error, when not nil,
// combines all diagnostics, or is the context error if ctx was cancelled
// before the input was consumed.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	program := &ast.Program{Stmts: []ast.Stmt{}}
	for !p.curTokenIs(token.EOF) {
		select {
		case <-ctx.Done():
			return program, ctx.Err()
		default:
		}
		if stmt := p.parseStatement(); stmt != nil {
			program.Stmts = append(program.Stmts, stmt)
		}
		p.atStatementStart = p.curTokenIs(token.SEMICOLON)
		p.nextToken()
	}
	return program, p.Err()
}

// Errors returns the messages of all diagnostics recorded so far, in the
// order they were found.
func (p *Parser) Errors() []string {
	messages := make([]string, 0, len(p.errors))
	for _, err := range p.errors {
		messages = append(messages, err.Message())
	}
	return messages
}

// Diagnostics returns all diagnostics recorded so far, with positions.
func (p *Parser) Diagnostics() []ParserError {
	return p.errors
}

// Skipped returns the tokens that started a statement the parser does not
// recognize. Such statements produce no node and no diagnostic.
func (p *Parser) Skipped() []token.Token {
	return p.skipped
}

// Err combines all diagnostics into a single error, or returns nil when
// there are none.
func (p *Parser) Err() error {
	var result *multierror.Error
	for _, err := range p.errors {
		result = multierror.Append(result, err)
	}
	if result != nil {
		result.ErrorFormat = formatErrors
	}
	return result.ErrorOrNil()
}

// addError appends an error to the errors slice.
func (p *Parser) addError(err ParserError) {
	p.errors = append(p.errors, err)
}

// peekError records that the next token is not the expected type.
func (p *Parser) peekError(t token.Type) {
	p.addError(NewParserError(ErrorOpts{
		ErrType:       "parse error",
		Message:       fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type),
		Code:          errors.E1001,
		File:          p.filename,
		StartPosition: p.peekToken.StartPosition,
		EndPosition:   p.peekToken.EndPosition,
		SourceCode:    p.l.GetLineText(p.peekToken),
	}))
}

// illegalToken records the current token as a character the lexer could
// not recognize.
func (p *Parser) illegalToken() {
	p.addError(NewSyntaxError(ErrorOpts{
		Message:       fmt.Sprintf("illegal token %s", p.curToken.Literal),
		File:          p.filename,
		StartPosition: p.curToken.StartPosition,
		EndPosition:   p.curToken.EndPosition,
		SourceCode:    p.l.GetLineText(p.curToken),
	}))
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}
