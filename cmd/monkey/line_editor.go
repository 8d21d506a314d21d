package main

import (
	"fmt"
	"strings"
	"unicode"

	"atomicgo.dev/keyboard/keys"

	"github.com/cloudcmds/monkey/token"
)

type editorAction int

const (
	actionNone editorAction = iota
	actionSubmit
	actionQuit
)

// lineEditor holds the line being typed at the REPL prompt and applies
// key presses to it.
type lineEditor struct {
	input      []rune
	cursorPos  int
	history    []string
	historyIdx int
}

func newLineEditor(history []string) *lineEditor {
	return &lineEditor{history: history, historyIdx: -1}
}

func (e *lineEditor) String() string {
	return string(e.input)
}

// take returns the current line and resets the editor for the next one.
func (e *lineEditor) take() string {
	line := string(e.input)
	e.input = nil
	e.cursorPos = 0
	e.historyIdx = -1
	return line
}

// render returns the terminal output that redraws the prompt line and
// places the cursor.
func (e *lineEditor) render() string {
	var b strings.Builder
	b.WriteString("\r\033[K")
	b.WriteString(prompt)
	b.WriteString(string(e.input))
	if back := len(e.input) - e.cursorPos; back > 0 {
		fmt.Fprintf(&b, "\033[%dD", back)
	}
	return b.String()
}

func (e *lineEditor) handleKey(key keys.Key) editorAction {
	switch key.Code {
	case keys.Enter:
		return actionSubmit

	case keys.CtrlC:
		// Clear input if not empty, otherwise quit
		if len(e.input) > 0 {
			e.take()
			return actionNone
		}
		return actionQuit

	case keys.CtrlD:
		if len(e.input) == 0 {
			return actionQuit
		}
		e.deleteChar()

	case keys.Escape, keys.CtrlU:
		e.take()

	case keys.Backspace:
		e.backspace()

	case keys.Delete:
		e.deleteChar()

	case keys.Left:
		if e.cursorPos > 0 {
			e.cursorPos--
		}

	case keys.Right:
		if e.cursorPos < len(e.input) {
			e.cursorPos++
		}

	case keys.Home, keys.CtrlA:
		e.cursorPos = 0

	case keys.End, keys.CtrlE:
		e.cursorPos = len(e.input)

	case keys.CtrlW:
		e.deleteWordBackward()

	case keys.Up:
		e.historyUp()

	case keys.Down:
		e.historyDown()

	case keys.Tab:
		e.complete()

	case keys.Space:
		e.insert(' ')

	case keys.RuneKey:
		for _, r := range key.Runes {
			e.insert(r)
		}
	}
	return actionNone
}

func (e *lineEditor) insert(r rune) {
	e.input = append(e.input, 0)
	copy(e.input[e.cursorPos+1:], e.input[e.cursorPos:])
	e.input[e.cursorPos] = r
	e.cursorPos++
	e.historyIdx = -1
}

func (e *lineEditor) backspace() {
	if e.cursorPos == 0 {
		return
	}
	e.input = append(e.input[:e.cursorPos-1], e.input[e.cursorPos:]...)
	e.cursorPos--
}

func (e *lineEditor) deleteChar() {
	if e.cursorPos >= len(e.input) {
		return
	}
	e.input = append(e.input[:e.cursorPos], e.input[e.cursorPos+1:]...)
}

func (e *lineEditor) deleteWordBackward() {
	end := e.cursorPos
	// Skip any spaces/punctuation behind us
	for e.cursorPos > 0 && !isWordChar(e.input[e.cursorPos-1]) {
		e.cursorPos--
	}
	// Move to the start of the word
	for e.cursorPos > 0 && isWordChar(e.input[e.cursorPos-1]) {
		e.cursorPos--
	}
	e.input = append(e.input[:e.cursorPos], e.input[end:]...)
	e.historyIdx = -1
}

// complete finishes the keyword being typed at the cursor when exactly
// one keyword starts with it.
func (e *lineEditor) complete() {
	start := e.cursorPos
	for start > 0 && isWordChar(e.input[start-1]) {
		start--
	}
	prefix := string(e.input[start:e.cursorPos])
	if prefix == "" {
		return
	}
	var match string
	for _, keyword := range token.Keywords() {
		if !strings.HasPrefix(keyword, prefix) {
			continue
		}
		if match != "" {
			return
		}
		match = keyword
	}
	if match == "" {
		return
	}
	for _, r := range match[len(prefix):] {
		e.insert(r)
	}
}

func (e *lineEditor) historyUp() {
	if len(e.history) == 0 {
		return
	}
	if e.historyIdx == -1 {
		e.historyIdx = len(e.history)
	}
	if e.historyIdx > 0 {
		e.historyIdx--
		e.input = []rune(e.history[e.historyIdx])
		e.cursorPos = len(e.input)
	}
}

func (e *lineEditor) historyDown() {
	if e.historyIdx == -1 {
		return
	}
	e.historyIdx++
	if e.historyIdx >= len(e.history) {
		e.input = nil
		e.historyIdx = -1
	} else {
		e.input = []rune(e.history[e.historyIdx])
	}
	e.cursorPos = len(e.input)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
