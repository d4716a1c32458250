package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goschem/lexer"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Scheme file or expression",
	Long: `Tokenize a Scheme program and print the resulting tokens.

Examples:
  goschem lex script.scm
  goschem lex -e "(+ 1 2)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return err
		}
		if tok == nil {
			return nil
		}
		if tok.Location != nil {
			fmt.Printf("%4d:%-4d %-12s %s\n", tok.Location.Line, tok.Location.Column, tok.Data.Kind, tok.Data)
		} else {
			fmt.Printf("%-12s %s\n", tok.Data.Kind, tok.Data)
		}
	}
}
