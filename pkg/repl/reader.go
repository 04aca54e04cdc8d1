package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// ErrAborted is returned by a LineReader when the user abandons the
// current line (Ctrl+C). The REPL discards the line and prompts again.
var ErrAborted = errors.New("line aborted")

// LineReader yields one line of input per call. It returns io.EOF once
// input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader picks line editing for an interactive terminal and a plain
// scanner for anything else.
func NewLineReader(in *os.File, out io.Writer, historyPath string) LineReader {
	if isatty.IsTerminal(in.Fd()) && liner.TerminalSupported() {
		return NewLinerReader(historyPath)
	}
	return NewScannerReader(in, out)
}

// scannerReader reads newline-terminated lines and echoes the prompt to out.
type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader reads lines from r, printing each prompt to out.
func NewScannerReader(r io.Reader, out io.Writer) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r), out: out}
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scannerReader) Close() error { return nil }

// linerReader provides line editing and persistent history.
type linerReader struct {
	state       *liner.State
	historyPath string
}

// NewLinerReader takes over the terminal. History is loaded from
// historyPath, if set, and written back on Close.
func NewLinerReader(historyPath string) LineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &linerReader{state: state, historyPath: historyPath}
}

func (l *linerReader) ReadLine(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrAborted
	case err != nil:
		return "", err
	}
	if line != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

func (l *linerReader) Close() error {
	if l.historyPath != "" {
		if f, err := os.Create(l.historyPath); err == nil {
			_, _ = l.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return l.state.Close()
}
