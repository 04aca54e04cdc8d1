package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cipher/pkg/driver"
)

var runExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Parse and evaluate a program",
	Long: `Decodes the file (UTF-8, or UTF-16 with a byte order mark), parses it and,
if it parsed cleanly, evaluates it and prints the result.

Exits with status 65 when the program has syntax errors and 66 when the
file cannot be read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	addInputFlags(runCmd, &runExpr)
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	src, err := readInput(cmd, args, runExpr)
	if err != nil {
		return err
	}

	value, errs := session.Run(src)
	if len(errs) > 0 {
		session.ReportErrors(cmd.ErrOrStderr(), errs)
		return &exitError{code: ExitDataErr, msg: fmt.Sprintf("%d syntax error(s)", len(errs))}
	}

	driver.DisplayResult(cmd.OutOrStdout(), value, nil)
	return nil
}
