package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/gofrs/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cloudcmds/monkey/lexer"
	"github.com/cloudcmds/monkey/parser"
)

const (
	prompt             = ">> "
	defaultHistoryFile = "~/.monkey_history"
)

const replHelp = `Enter let or return statements to see how they parse.
Commands:
  :tokens <code>  print the tokens of <code>
  :help           show this help
  :quit           leave the session (also Ctrl-D)`

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), isTerminalIO())
		},
	}
}

// replSession parses one line of input at a time and prints the result.
type replSession struct {
	out     io.Writer
	colored bool
	logger  zerolog.Logger
	history *history

	errStyle   *color.Color
	mutedStyle *color.Color
}

func runRepl(ctx context.Context, in io.Reader, out io.Writer, interactive bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	if interactive {
		out = &crlfWriter{w: out}
	}
	s := &replSession{
		out:        out,
		colored:    interactive && useColor(os.Stdout),
		logger:     log.With().Str("session", id.String()).Logger(),
		history:    loadHistory(historyPath()),
		errStyle:   color.New(color.FgRed),
		mutedStyle: color.New(color.FgHiBlack),
	}
	setColor(s.colored, s.errStyle, s.mutedStyle)
	s.logger.Info().Bool("interactive", interactive).Str("history", s.history.path).Msg("session started")
	defer s.logger.Info().Msg("session ended")

	if interactive {
		return s.runKeyboard(ctx)
	}
	return s.runLines(ctx, in)
}

// runLines evaluates each line read from in until EOF or :quit.
func (s *replSession) runLines(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := s.eval(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// runKeyboard reads keys from the terminal and edits the current line
// in place until the session is ended.
func (s *replSession) runKeyboard(ctx context.Context) error {
	fmt.Fprintln(s.out, "monkey "+version+" (type :help for commands)")
	editor := newLineEditor(s.history.entries)
	fmt.Fprint(s.out, editor.render())

	return keyboard.Listen(func(key keys.Key) (stop bool, err error) {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		switch editor.handleKey(key) {
		case actionQuit:
			fmt.Fprintln(s.out)
			return true, nil
		case actionSubmit:
			line := editor.take()
			fmt.Fprintln(s.out)
			if quit := s.eval(line); quit {
				return true, nil
			}
			editor.history = s.history.entries
		}
		fmt.Fprint(s.out, editor.render())
		return false, nil
	})
}

// eval handles one line of input. It returns true when the session
// should end.
func (s *replSession) eval(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}
	s.history.add(input)

	if strings.HasPrefix(input, ":") {
		return s.handleCommand(input)
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	s.logger.Debug().
		Int("statements", len(program.Stmts)).
		Int("errors", len(p.Errors())).
		Int("skipped", len(p.Skipped())).
		Msg("parsed line")

	if diagnostics := p.Diagnostics(); len(diagnostics) > 0 {
		for _, diag := range diagnostics {
			fmt.Fprintln(s.out, s.errStyle.Sprint(diag.Error()))
		}
		return false
	}
	for _, stmt := range program.Stmts {
		fmt.Fprintln(s.out, stmt.String())
	}
	for _, tok := range p.Skipped() {
		fmt.Fprintln(s.out, s.mutedStyle.Sprintf("(statement starting with '%s' ignored)", tok.Literal))
	}
	return false
}

func (s *replSession) handleCommand(input string) bool {
	parts := strings.Fields(input)
	switch strings.ToLower(parts[0]) {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(s.out, replHelp)
	case ":tokens", ":t":
		code := strings.TrimSpace(input[len(parts[0]):])
		if code == "" {
			fmt.Fprintln(s.out, s.mutedStyle.Sprint("  Usage: :tokens <code>"))
			return false
		}
		printTokens(s.out, tokenize(source{code: code}), s.colored)
	default:
		fmt.Fprintln(s.out, s.errStyle.Sprintf("unknown command: %s", parts[0]))
	}
	return false
}

// crlfWriter translates line feeds for a terminal in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	s := strings.ReplaceAll(string(p), "\n", "\r\n")
	if _, err := io.WriteString(c.w, s); err != nil {
		return 0, err
	}
	return len(p), nil
}

// history is the list of previously entered lines, persisted to a file.
type history struct {
	path    string
	entries []string
}

func historyPath() string {
	path := viper.GetString("history-file")
	if path == "" {
		path = defaultHistoryFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return ""
	}
	return expanded
}

func loadHistory(path string) *history {
	h := &history{path: path}
	if path == "" {
		return h
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return h
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}
	return h
}

func (h *history) add(line string) {
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	appendToHistory(h.path, line)
}

func appendToHistory(path, line string) {
	if path == "" || line == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("history not saved")
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("history not saved")
	}
}
