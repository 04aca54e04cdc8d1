package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cipher/pkg/source"
)

// addInputFlags registers -e on commands that take a file or an expression.
func addInputFlags(c *cobra.Command, expr *string) {
	c.Flags().StringVarP(expr, "eval", "e", "", "use the given source text instead of a file")
}

// readInput returns the -e text or the single file argument. A read
// failure is reported as an ExitNoInput status.
func readInput(cmd *cobra.Command, args []string, expr string) (*source.SourceFile, error) {
	switch {
	case expr != "" && len(args) > 0:
		return nil, fmt.Errorf("use either a file or -e, not both")
	case expr != "":
		return source.NewEvalSource(expr), nil
	case len(args) == 1:
		src, err := source.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cipher: %v\n", err)
			return nil, &exitError{code: ExitNoInput, msg: err.Error()}
		}
		return src, nil
	default:
		return nil, fmt.Errorf("a file or -e is required")
	}
}
