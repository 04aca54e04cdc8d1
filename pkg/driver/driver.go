package driver

import (
	"fmt"
	"io"
	"log/slog"

	"cipher/pkg/config"
	"cipher/pkg/errors"
	"cipher/pkg/evaluator"
	"cipher/pkg/lexer"
	"cipher/pkg/logging"
	"cipher/pkg/object"
	"cipher/pkg/parser"
	"cipher/pkg/source"
)

// Session runs source text through the lexer, parser and evaluator with a
// fixed configuration. Every call builds a fresh lexer and parser; nothing
// carries over between calls.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewSession creates a session. A nil cfg uses the defaults and a nil
// logger discards everything.
func NewSession(cfg *config.Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{cfg: cfg, logger: logger}
}

func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Logger() *slog.Logger   { return s.logger }

// ParserOptions returns the parser options implied by the configuration.
func (s *Session) ParserOptions() []parser.Option {
	opts := []parser.Option{parser.WithLogger(s.logger)}
	if s.cfg.Parser.CallPrecedence {
		opts = append(opts, parser.WithCallPrecedence())
	}
	return opts
}

// Parse parses src. The program is returned even when diagnostics were
// recorded; it then holds only the statements that parsed.
func (s *Session) Parse(src *source.SourceFile) (*parser.Program, []errors.CipherError) {
	p := parser.NewParser(lexer.NewLexerWithSource(src), s.ParserOptions()...)
	program := p.ParseProgram()

	diags := p.Diagnostics()
	s.logger.Debug("parsed", "source", src.DisplayPath(), "statements", len(program.Statements), "errors", len(diags))

	errs := make([]errors.CipherError, 0, len(diags))
	for _, d := range diags {
		errs = append(errs, d)
	}
	return program, errs
}

// Run parses and evaluates src. Nothing is evaluated if parsing recorded
// any diagnostic.
func (s *Session) Run(src *source.SourceFile) (object.Object, []errors.CipherError) {
	program, errs := s.Parse(src)
	if len(errs) > 0 {
		return nil, errs
	}
	return evaluator.Eval(program), nil
}

// RunString runs a single chunk of REPL or -e input.
func (s *Session) RunString(input string) (object.Object, []errors.CipherError) {
	return s.Run(source.NewReplSource(input))
}

// RunFile reads, decodes and runs the file at path. The error result is
// only set when the file could not be read.
func (s *Session) RunFile(path string) (object.Object, []errors.CipherError, error) {
	src, err := source.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	value, errs := s.Run(src)
	return value, errs, nil
}

// ReportErrors prints errs with source context, coloured per the config.
func (s *Session) ReportErrors(w io.Writer, errs []errors.CipherError) {
	errors.DisplayErrors(w, errs, errors.Style{Color: s.cfg.REPL.ColorEnabled()})
}

// DisplayResult prints either the diagnostics, one per line with a leading
// tab, or the inspected value. Returns true if there were no errors.
func DisplayResult(w io.Writer, value object.Object, errs []errors.CipherError) bool {
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(w, "\t%s\n", err.Message())
		}
		return false
	}

	if value == nil {
		fmt.Fprintln(w, "Evaluation resulted in no object.")
		return true
	}
	fmt.Fprintln(w, value.Inspect())
	return true
}
