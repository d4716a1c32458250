package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goschem/lexer"
	"github.com/cwbudde/goschem/parser"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Scheme file or expression and print its AST",
	Long: `Parse a Scheme program and print each top-level statement in its
external (code-as-data) representation.

Examples:
  goschem parse script.scm
  goschem parse -e "(define (square x) (* x x))"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	statements, err := p.ParseAll()
	if err != nil {
		if se, ok := err.(interface{ Format(string, bool) string }); ok {
			return fmt.Errorf("%s: %s", filename, se.Format(input, colorOutput))
		}
		return err
	}
	for _, stmt := range statements {
		fmt.Println(stmt)
	}
	return nil
}
