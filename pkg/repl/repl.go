// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cipher/pkg/driver"
	"cipher/pkg/logging"
)

// ExitCommand ends the session when it is the whole (trimmed) line.
const ExitCommand = "exit"

// REPL reads lines, runs each through a fresh lexer and parser, and prints
// the diagnostics or the evaluated value.
type REPL struct {
	session *driver.Session
	in      LineReader
	out     io.Writer
	prompt  string
	logger  *slog.Logger
}

// New creates a REPL over session. The prompt comes from the session config.
func New(session *driver.Session, in LineReader, out io.Writer) *REPL {
	logger, _ := logging.WithSession(session.Logger())
	return &REPL{
		session: session,
		in:      in,
		out:     out,
		prompt:  session.Config().REPL.Prompt,
		logger:  logger,
	}
}

// Run loops until the exit command, end of input, or ctx is cancelled.
// The goodbye line is printed in every case.
func (r *REPL) Run(ctx context.Context) error {
	r.logger.Info("repl session started")
	defer func() {
		fmt.Fprintln(r.out, "Exiting Cipher REPL.")
		r.logger.Info("repl session ended")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := r.in.ReadLine(r.prompt)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrAborted):
			continue
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		if strings.TrimSpace(line) == ExitCommand {
			return nil
		}

		value, errs := r.session.RunString(line)
		if len(errs) > 0 {
			r.logger.Debug("line rejected", "errors", len(errs))
		}
		driver.DisplayResult(r.out, value, errs)
	}
}
