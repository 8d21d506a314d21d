package parser

import (
	"fmt"
	"strings"

	"github.com/cloudcmds/monkey/errors"
	"github.com/cloudcmds/monkey/token"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although Message is recommended.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Code          errors.ErrorCode
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewParserError returns a new BaseParserError populated with
// the given error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{
		errType:       opts.ErrType,
		message:       opts.Message,
		code:          opts.Code,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Type() string
	Message() string
	Code() errors.ErrorCode
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Location() errors.SourceLocation
	errors.FormattableError
	errors.FriendlyError
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	// Type of the error, e.g. "parse error"
	errType string
	// The error message
	message string
	// Diagnostic code shown in friendly output
	code errors.ErrorCode
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
}

func (e *BaseParserError) Error() string {
	if e.errType == "" {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.errType, e.message)
}

func (e *BaseParserError) FriendlyErrorMessage() string {
	formatter := errors.NewFormatter(false)
	return formatter.Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *BaseParserError) ToFormatted() *errors.FormattedError {
	start := e.startPosition
	end := e.endPosition
	formatted := &errors.FormattedError{
		Code:     e.code,
		Kind:     e.errType,
		Message:  e.message,
		Filename: e.file,
		Line:     start.LineNumber(),
		Column:   start.ColumnNumber(),
	}
	if end.Line == start.Line {
		formatted.EndColumn = end.ColumnNumber()
	}
	formatted.SourceLines = []errors.SourceLineEntry{
		{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
	}
	return formatted
}

// Location returns the file, line and column where the error starts.
func (e *BaseParserError) Location() errors.SourceLocation {
	return errors.SourceLocation{
		Filename: e.file,
		Line:     e.startPosition.LineNumber(),
		Column:   e.startPosition.ColumnNumber(),
		Source:   e.sourceCode,
	}
}

func (e *BaseParserError) Message() string {
	return e.message
}

func (e *BaseParserError) Code() errors.ErrorCode {
	return e.code
}

func (e *BaseParserError) StartPosition() token.Position {
	return e.startPosition
}

func (e *BaseParserError) EndPosition() token.Position {
	return e.endPosition
}

func (e *BaseParserError) File() string {
	return e.file
}

func (e *BaseParserError) SourceCode() string {
	return e.sourceCode
}

func (e *BaseParserError) Type() string {
	return e.errType
}

// NewSyntaxError returns a new SyntaxError populated with the given error data
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	if opts.Code == "" {
		opts.Code = errors.E1002
	}
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

// SyntaxError reports input the lexer could not turn into a valid token.
type SyntaxError struct {
	*BaseParserError
}

// formatErrors renders the combined error returned by Parse. A single
// diagnostic is shown as is; several are listed one per line.
func formatErrors(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(errs), strings.Join(lines, "\n"))
}
