package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cipher/pkg/parser"
)

var (
	parseExpr   string
	parseFormat string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed program",
	Long: `Parses the input and prints it in canonical, fully parenthesized form
(--format text) or as a YAML syntax tree (--format yaml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	addInputFlags(parseCmd, &parseExpr)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "text", "output format: text or yaml")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFormat != "text" && parseFormat != "yaml" {
		return fmt.Errorf("unknown format %q (want text or yaml)", parseFormat)
	}

	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	src, err := readInput(cmd, args, parseExpr)
	if err != nil {
		return err
	}

	program, errs := session.Parse(src)
	if len(errs) > 0 {
		session.ReportErrors(cmd.ErrOrStderr(), errs)
		return &exitError{code: ExitDataErr, msg: fmt.Sprintf("%d syntax error(s)", len(errs))}
	}

	out := cmd.OutOrStdout()
	if parseFormat == "yaml" {
		data, err := parser.Dump(program)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	for _, stmt := range program.Statements {
		fmt.Fprintln(out, stmt.String())
	}
	return nil
}
