package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"cipher/pkg/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	Long: `Reads one line at a time, parses it and prints either the parser
diagnostics or the evaluated value. Type "exit" or press Ctrl+D to leave.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := newLineReader(cmd.InOrStdin(), out, session.Config().REPL.HistoryPath())
	defer in.Close()

	return repl.New(session, in, out).Run(cmd.Context())
}

func newLineReader(in io.Reader, out io.Writer, historyPath string) repl.LineReader {
	if f, ok := in.(*os.File); ok && out == io.Writer(os.Stdout) {
		return repl.NewLineReader(f, out, historyPath)
	}
	return repl.NewScannerReader(in, out)
}
