package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudcmds/monkey/lexer"
	"github.com/cloudcmds/monkey/token"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a monkey program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := getMonkeyCode(cmd, args)
			if err != nil {
				return err
			}
			format, err := getOutputFormat()
			if err != nil {
				return err
			}
			tokens := tokenize(src)
			log.Debug().
				Str("file", src.filename).
				Int("bytes", len(src.code)).
				Int("tokens", len(tokens)).
				Msg("lexed input")

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, tokensToJSON(tokens))
			}
			printTokens(out, tokens, useColor(out))
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

// tokenize lexes the source through the first EOF token, which is included.
func tokenize(src source) []token.Token {
	return lexer.Tokenize(src.code, lexer.WithFilename(src.filename))
}

// TokenJSON is a token in the JSON tokens output
type TokenJSON struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func tokensToJSON(tokens []token.Token) []TokenJSON {
	result := make([]TokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		result = append(result, TokenJSON{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.StartPosition.LineNumber(),
			Column:  tok.StartPosition.ColumnNumber(),
		})
	}
	return result
}

func printTokens(w io.Writer, tokens []token.Token, colored bool) {
	posColor := color.New(color.FgHiBlack)
	typeColor := color.New(color.FgCyan)
	illegalColor := color.New(color.FgRed, color.Bold)
	setColor(colored, posColor, typeColor, illegalColor)
	for _, tok := range tokens {
		pos := fmt.Sprintf("%d:%d", tok.StartPosition.LineNumber(), tok.StartPosition.ColumnNumber())
		kind := fmt.Sprintf("%-8s", tok.Type)
		if tok.Type == token.ILLEGAL {
			kind = illegalColor.Sprint(kind)
		} else {
			kind = typeColor.Sprint(kind)
		}
		fmt.Fprintf(w, "%s %s %q\n", posColor.Sprintf("%-7s", pos), kind, tok.Literal)
	}
}
