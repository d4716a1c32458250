package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goschem/ast"
	"github.com/cwbudde/goschem/builtin"
	"github.com/cwbudde/goschem/env"
	"github.com/cwbudde/goschem/eval"
	"github.com/cwbudde/goschem/lexer"
	"github.com/cwbudde/goschem/parser"
	"github.com/cwbudde/goschem/value"
)

var runEvalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Scheme file or expression",
	Long: `Parse and evaluate a Scheme program, printing the value of every
top-level expression that doesn't evaluate to Void. Definitions and
imports print nothing.

Examples:
  goschem run script.scm
  goschem run -e "(display (+ 1 2)) (newline)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(runEvalExpr, args)
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

	topLevel := env.NewStandardEnv[float64]()
	for name, proc := range builtin.BaseLibrary[float64](builtin.IO{Out: os.Stdout}) {
		topLevel.Define(name, proc)
	}

	for _, stmt := range statements {
		v, err := eval.Eval[float64](stmt, topLevel)
		if err != nil {
			if se, ok := err.(interface{ Format(string, bool) string }); ok {
				return fmt.Errorf("%s: %s", filename, se.Format(input, colorOutput))
			}
			return err
		}
		if _, isExpr := ast.AsExpression(stmt); isExpr && v.Kind() != value.VoidKind {
			fmt.Println(v)
		}
	}
	return nil
}
