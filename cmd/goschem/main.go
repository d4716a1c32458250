// Command goschem is the CLI front end over this module's lexer,
// parser and evaluator: lex, parse and run subcommands over Scheme
// source text.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/goschem/cmd/goschem/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
