package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CipherError is the interface implemented by all Cipher errors.
type CipherError interface {
	error
	Pos() Position
	Kind() string // "Syntax" for now; the evaluator does not report errors yet
	// Message returns the bare diagnostic without position info.
	Message() string
	Unwrap() error
}

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg   string
	Cause error // Underlying cause, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// Messages returns the bare message of every error, in order.
func Messages[E CipherError](errs []E) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message())
	}
	return out
}

// --- Error Reporting ---

// Style controls how DisplayErrors decorates its output.
type Style struct {
	Color bool
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// DisplayErrors prints errs to w with the offending source line and a
// caret under the reported column.
func DisplayErrors(w io.Writer, errs []CipherError, style Style) {
	paint := func(s lipgloss.Style, text string) string {
		if !style.Color {
			return text
		}
		return s.Render(text)
	}

	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		if !pos.IsValid() || pos.Source == nil {
			fmt.Fprintln(w, paint(headerStyle, fmt.Sprintf("%s Error: %s", kind, msg)))
			continue
		}

		lines := pos.Source.Lines()
		if pos.Line > len(lines) {
			fmt.Fprintln(w, paint(headerStyle, fmt.Sprintf("%s Error: %s", kind, msg)))
			continue
		}

		header := fmt.Sprintf("%s Error at %s:%d:%d: %s", kind, pos.Source.DisplayPath(), pos.Line, pos.Column, msg)
		fmt.Fprintln(w, paint(headerStyle, header))
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(pos.Source.Line(pos.Line), "\t "))

		marker := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"
		if width := pos.EndPos - pos.StartPos; width > 1 {
			marker += strings.Repeat("~", width-1)
		}
		fmt.Fprintf(w, "  %s\n", paint(markerStyle, marker))
	}
}
