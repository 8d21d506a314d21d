// Package lexer converts monkey source code into a stream of tokens.
//
// A Lexer is created by calling New() with the source text. Tokens are then
// pulled one at a time by calling Next(). Once the end of the input has been
// reached, every subsequent call to Next() returns an EOF token.
package lexer

import (
	"unicode/utf8"

	"github.com/cloudcmds/monkey/token"
)

// Lexer holds our object-state.
type Lexer struct {
	// The source text as given
	src string

	// The input, decoded as runes. Invalid UTF-8 bytes decode to
	// utf8.RuneError, one rune per byte.
	input []rune

	// byte offset in src of each rune in input, followed by len(src)
	offsets []int

	// position of the character currently being examined
	position int

	// position of the next character to be read (always position+1)
	readPosition int

	// the current character; 0 once the input is exhausted
	ch rune

	// 0-indexed line number of the current character
	line int

	// rune offset where the current line begins
	lineStart int

	// the name of the file being lexed, if any
	filename string
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFilename sets the file name attached to the position of every token.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// New returns a Lexer for the given source code.
func New(input string, options ...Option) *Lexer {
	n := utf8.RuneCountInString(input)
	l := &Lexer{
		src:     input,
		input:   make([]rune, 0, n),
		offsets: make([]int, 0, n+1),
	}
	for i, r := range input {
		l.input = append(l.input, r)
		l.offsets = append(l.offsets, i)
	}
	l.offsets = append(l.offsets, len(input))
	for _, opt := range options {
		opt(l)
	}
	l.readChar()
	return l
}

// SetFilename sets the name of the file being lexed. The filename is
// attached to the position of every subsequent token.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the name of the file being lexed.
func (l *Lexer) Filename() string {
	return l.filename
}

// Next returns the next token from the input.
func (l *Lexer) Next() token.Token {
	l.skipWhitespace()

	start := l.pos()
	if l.atEnd() {
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}
	}

	var tok token.Token
	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(token.EQ, "==", start)
		} else {
			tok = newToken(token.ASSIGN, "=", start)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = newToken(token.NOT_EQ, "!=", start)
		} else {
			tok = newToken(token.BANG, "!", start)
		}
	case ';':
		tok = newToken(token.SEMICOLON, ";", start)
	case '(':
		tok = newToken(token.LPAREN, "(", start)
	case ')':
		tok = newToken(token.RPAREN, ")", start)
	case ',':
		tok = newToken(token.COMMA, ",", start)
	case '+':
		tok = newToken(token.PLUS, "+", start)
	case '-':
		tok = newToken(token.MINUS, "-", start)
	case '*':
		tok = newToken(token.ASTERISK, "*", start)
	case '/':
		tok = newToken(token.SLASH, "/", start)
	case '<':
		tok = newToken(token.LT, "<", start)
	case '>':
		tok = newToken(token.GT, ">", start)
	case '{':
		tok = newToken(token.LBRACE, "{", start)
	case '}':
		tok = newToken(token.RBRACE, "}", start)
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			tok = newToken(token.LookupIdentifier(literal), literal, start)
			tok.EndPosition = l.pos()
			return tok
		}
		if isDigit(l.ch) {
			literal := l.readNumber()
			tok = newToken(token.INT, literal, start)
			tok.EndPosition = l.pos()
			return tok
		}
		tok = newToken(token.ILLEGAL, l.text(l.position, l.position+1), start)
	}
	l.readChar()
	tok.EndPosition = l.pos()
	return tok
}

// GetLineText returns the full line of source text on which the given
// token starts, without the trailing newline.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := start
	for end < len(l.input) && l.input[end] != '\n' {
		end++
	}
	if end > start && l.input[end-1] == '\r' {
		end--
	}
	return l.text(start, end)
}

// Tokenize lexes the entire input and returns every token, ending with
// (and including) the first EOF token.
func Tokenize(input string, options ...Option) []token.Token {
	l := New(input, options...)
	var tokens []token.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// read one forward character. The cursor stops advancing once it moves
// one past the final character of the input.
func (l *Lexer) readChar() {
	if l.readPosition > len(l.input) {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.lineStart = l.readPosition
	}
	if l.readPosition == len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the character after the current one without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.filename,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.ch) {
		l.readChar()
	}
}

// readIdentifier consumes letters and underscores. Digits are not part of
// identifiers in this language.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEnd() && isLetter(l.ch) {
		l.readChar()
	}
	return l.text(start, l.position)
}

func (l *Lexer) readNumber() string {
	start := l.position
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}
	return l.text(start, l.position)
}

// text returns the source bytes spanning the runes [start, end).
func (l *Lexer) text(start, end int) string {
	return l.src[l.offsets[start]:l.offsets[end]]
}

func newToken(tokenType token.Type, literal string, start token.Position) token.Token {
	return token.Token{Type: tokenType, Literal: literal, StartPosition: start}
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
