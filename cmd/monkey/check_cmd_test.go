package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommandOK(t *testing.T) {
	stdout, _, err := runCLI(t, "", "check", "-c", "let x = 1; return x;")
	require.NoError(t, err)
	assert.Equal(t, "ok input: 2 statements\n", stdout)
}

func TestCheckCommandWarnings(t *testing.T) {
	stdout, _, err := runCLI(t, "", "check", "-c", "lett x = 1;")
	require.NoError(t, err)
	assert.Contains(t, stdout, "warning[W1001]: statement starting with 'lett' was ignored")
	assert.Contains(t, stdout, " 1 | lett x = 1;")
	assert.Contains(t, stdout, "   | ^^^^\n")
	assert.Contains(t, stdout, "hint: Did you mean 'let'?")
	assert.Contains(t, stdout, "note: only let and return statements are parsed")
	assert.Contains(t, stdout, "ok input: 0 statements")
}

func TestCheckCommandErrors(t *testing.T) {
	stdout, _, err := runCLI(t, "", "check", "-c", "let x 5;")
	var exit *exitError
	require.True(t, errors.As(err, &exit), "error is %v", err)
	assert.Equal(t, 1, exit.code)
	assert.Contains(t, stdout, "parse error[E1001]: expected next token to be =, got Int instead")
	assert.Contains(t, stdout, "--> 1:7")
	assert.NotContains(t, stdout, "ok input")

	stdout, _, err = runCLI(t, "", "check", "-c", "let = 1;\nlet 2;")
	require.Error(t, err)
	assert.Contains(t, stdout, "found 2 errors")
	assert.Contains(t, stdout, "--> 2:5")
}

func TestCheckCommandJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "", "check", "-o", "json", "-c", "foo; let = 1;")
	require.Error(t, err)

	var report CheckJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 0, report.Statements)
	assert.Equal(t, []DiagnosticJSON{{
		Code:    "E1001",
		Message: "expected next token to be Ident, got = instead",
		Line:    1,
		Column:  10,
	}}, report.Errors)
	assert.Equal(t, []DiagnosticJSON{{
		Code:    "W1001",
		Message: "statement starting with 'foo' was ignored",
		Line:    1,
		Column:  1,
	}}, report.Warnings)
}

func TestCheck(t *testing.T) {
	report, err := check(context.Background(), source{code: "10 == 10;\nlet x = @;", filename: "main.mk"})
	require.NoError(t, err)
	assert.Equal(t, "main.mk", report.File)
	assert.Equal(t, 1, report.Statements)

	require.Len(t, report.errors, 1)
	assert.Equal(t, "illegal token @", report.errors[0].Message)
	assert.Equal(t, "syntax error", report.errors[0].Kind)
	assert.Equal(t, "main.mk", report.errors[0].Filename)
	assert.Equal(t, 2, report.errors[0].Line)

	require.Len(t, report.warnings, 1)
	assert.Equal(t, "statement starting with '10' was ignored", report.warnings[0].Message)
	assert.Empty(t, report.warnings[0].Hint)

	var buf bytes.Buffer
	require.NoError(t, report.print(&buf, false))
	assert.Contains(t, buf.String(), "--> main.mk:1:1")
	assert.Contains(t, buf.String(), "--> main.mk:2:9")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = check(ctx, source{code: "let x = 1;"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckRedeclaredVariable(t *testing.T) {
	report, err := check(context.Background(), source{code: "let x = 1;\nfoo;\nlet x = 2;\nlet x = 3;\nlet y = 4;"})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Statements)
	assert.Empty(t, report.errors)

	require.Len(t, report.warnings, 2)
	assert.Equal(t, "W1001", report.warnings[0].Code.String())
	assert.Equal(t, 2, report.warnings[0].Line)

	redeclared := report.warnings[1]
	assert.Equal(t, "W1002", redeclared.Code.String())
	assert.Equal(t, "variable 'x' was already declared on line 1", redeclared.Message)
	assert.Equal(t, 3, redeclared.Line)
	assert.Equal(t, 5, redeclared.Column)
	assert.Equal(t, 6, redeclared.EndColumn)

	stdout, _, err := runCLI(t, "", "check", "-c", "let a = 1; let a = 2;")
	require.NoError(t, err)
	assert.Contains(t, stdout, "warning[W1002]: variable 'a' was already declared on line 1")
	assert.Contains(t, stdout, "ok input: 2 statements")
}
