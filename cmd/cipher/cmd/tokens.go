package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cipher/pkg/lexer"
)

var tokensExpr string

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream",
	Long:  `Lexes the input and prints one token per line: position, kind and literal.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	addInputFlags(tokensCmd, &tokensExpr)
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readInput(cmd, args, tokensExpr)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, tok := range lexer.TokenizeSource(src) {
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
	}
	return w.Flush()
}
