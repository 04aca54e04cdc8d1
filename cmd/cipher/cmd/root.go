package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cipher/pkg/config"
	"cipher/pkg/driver"
	"cipher/pkg/logging"
)

// Exit codes, following sysexits.h.
const (
	ExitDataErr = 65 // input had syntax errors
	ExitNoInput = 66 // input could not be read
)

var (
	cfgFile        string
	verbose        bool
	callPrecedence bool
)

var rootCmd = &cobra.Command{
	Use:   "cipher",
	Short: "Cipher language toolkit",
	Long: `cipher lexes, parses and evaluates programs in the Cipher language.

Without a subcommand it starts the interactive REPL.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRepl,
}

// Execute runs the command tree. Errors other than exit statuses are
// printed to stderr here.
func Execute() error {
	err := rootCmd.Execute()
	var exit *exitError
	if err != nil && !errors.As(err, &exit) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $CIPHER_CONFIG, ./cipher.toml, ~/.config/cipher/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&callPrecedence, "call-precedence", false, "parse call and index expressions")
}

// exitError carries a status for diagnostics that were already reported.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// newSession loads the configuration, applies the command-line overrides
// and builds a driver session logging to stderr.
func newSession(cmd *cobra.Command) (*driver.Session, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Log.Level = "debug"
	}
	if callPrecedence {
		cfg.Parser.CallPrecedence = true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		off := false
		cfg.REPL.Color = &off
	}

	logger := logging.New(cfg.Log, cmd.ErrOrStderr())
	return driver.NewSession(cfg, logger), nil
}
