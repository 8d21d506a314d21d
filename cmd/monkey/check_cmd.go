package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudcmds/monkey/ast"
	"github.com/cloudcmds/monkey/errors"
	"github.com/cloudcmds/monkey/lexer"
	"github.com/cloudcmds/monkey/parser"
	"github.com/cloudcmds/monkey/token"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check monkey code for syntax errors",
		Long: `Parse monkey code and report syntax errors. Statements that do not start
with let or return are reported as warnings, as are names bound by more
than one let. The exit status is 1 when errors are found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := getMonkeyCode(cmd, args)
			if err != nil {
				return err
			}
			format, err := getOutputFormat()
			if err != nil {
				return err
			}
			report, err := check(cmd.Context(), src)
			if err != nil {
				return err
			}
			log.Debug().
				Str("file", src.filename).
				Int("statements", report.Statements).
				Int("errors", len(report.errors)).
				Int("warnings", len(report.warnings)).
				Msg("checked input")

			out := cmd.OutOrStdout()
			if format == "json" {
				err = writeJSON(out, report.toJSON())
			} else {
				err = report.print(out, useColor(out))
			}
			if err != nil {
				return err
			}
			if len(report.errors) > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

// checkReport holds the outcome of checking one program.
type checkReport struct {
	File       string
	Statements int
	errors     []*errors.FormattedError
	warnings   []*errors.FormattedError
}

func check(ctx context.Context, src source) (*checkReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	l := lexer.New(src.code)
	p := parser.New(l, parser.WithFilename(src.filename))
	program, err := p.Parse(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}

	report := &checkReport{File: src.filename, Statements: countStatements(program)}
	for _, diag := range p.Diagnostics() {
		report.errors = append(report.errors, formatDiagnostic(diag))
	}
	for _, tok := range p.Skipped() {
		report.warnings = append(report.warnings, skippedWarning(l, src.filename, tok))
	}
	report.warnings = append(report.warnings, lintProgram(l, src.filename, program)...)
	sort.SliceStable(report.warnings, func(i, j int) bool {
		a, b := report.warnings[i], report.warnings[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return report, nil
}

func formatDiagnostic(err errors.FormattableError) *errors.FormattedError {
	return err.ToFormatted()
}

func countStatements(program *ast.Program) int {
	var count int
	for node := range ast.Preorder(program) {
		if _, ok := node.(ast.Stmt); ok {
			count++
		}
	}
	return count
}

// lintProgram reports names that are bound by more than one let statement.
// Each name is reported once, at its first redeclaration.
func lintProgram(l *lexer.Lexer, filename string, program *ast.Program) []*errors.FormattedError {
	var warnings []*errors.FormattedError
	declared := map[string]int{} // name -> line
	reported := map[string]bool{}
	ast.Inspect(program, func(node ast.Node) bool {
		v, ok := node.(*ast.Var)
		if !ok || v.Name == nil {
			return true
		}
		name := v.Name.Name
		pos := v.Name.Pos()
		if prevLine, exists := declared[name]; exists {
			if !reported[name] {
				warnings = append(warnings, &errors.FormattedError{
					Code:      errors.W1002,
					Kind:      errors.KindWarning,
					Message:   fmt.Sprintf("variable '%s' was already declared on line %d", name, prevLine),
					Filename:  filename,
					Line:      pos.LineNumber(),
					Column:    pos.ColumnNumber(),
					EndColumn: v.Name.End().ColumnNumber(),
					SourceLines: []errors.SourceLineEntry{
						{Number: pos.LineNumber(), Text: l.GetLineText(v.Name.Token), IsMain: true},
					},
				})
				reported[name] = true
			}
			return true
		}
		declared[name] = pos.LineNumber()
		return true
	})
	return warnings
}

func skippedWarning(l *lexer.Lexer, filename string, tok token.Token) *errors.FormattedError {
	warning := &errors.FormattedError{
		Code:      errors.W1001,
		Kind:      errors.KindWarning,
		Message:   fmt.Sprintf("statement starting with '%s' was ignored", tok.Literal),
		Filename:  filename,
		Line:      tok.StartPosition.LineNumber(),
		Column:    tok.StartPosition.ColumnNumber(),
		EndColumn: tok.EndPosition.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: tok.StartPosition.LineNumber(), Text: l.GetLineText(tok), IsMain: true},
		},
		Note: "only let and return statements are parsed",
	}
	if tok.Type == token.IDENT {
		warning.Hint = errors.SuggestKeyword(tok.Literal)
	}
	return warning
}

func (r *checkReport) print(w io.Writer, colored bool) error {
	formatter := errors.NewFormatter(colored)
	for _, warning := range r.warnings {
		if _, err := fmt.Fprintln(w, formatter.Format(warning)); err != nil {
			return err
		}
	}
	if len(r.errors) > 0 {
		_, err := fmt.Fprint(w, formatter.FormatMultiple(r.errors))
		return err
	}
	okStyle := color.New(color.FgGreen, color.Bold)
	setColor(colored, okStyle)
	name := r.File
	if name == "" {
		name = "input"
	}
	_, err := fmt.Fprintf(w, "%s %s: %d statements\n", okStyle.Sprint("ok"), name, r.Statements)
	return err
}

// CheckJSON is the JSON form of a check report
type CheckJSON struct {
	File       string           `json:"file,omitempty"`
	Statements int              `json:"statements"`
	Errors     []DiagnosticJSON `json:"errors"`
	Warnings   []DiagnosticJSON `json:"warnings"`
}

// DiagnosticJSON is one error or warning in the JSON check output
type DiagnosticJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Hint    string `json:"hint,omitempty"`
}

func (r *checkReport) toJSON() *CheckJSON {
	return &CheckJSON{
		File:       r.File,
		Statements: r.Statements,
		Errors:     diagnosticsToJSON(r.errors),
		Warnings:   diagnosticsToJSON(r.warnings),
	}
}

func diagnosticsToJSON(formatted []*errors.FormattedError) []DiagnosticJSON {
	result := make([]DiagnosticJSON, 0, len(formatted))
	for _, f := range formatted {
		result = append(result, DiagnosticJSON{
			Code:    f.Code.String(),
			Message: f.Message,
			Line:    f.Line,
			Column:  f.Column,
			Hint:    f.Hint,
		})
	}
	return result
}
