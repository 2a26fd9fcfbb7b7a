package main

import (
	"fmt"
	"os"

	"tapecalc/internal/cli"
)

// main is the entry point for the calc terminal calculator.
func main() {
	if err := cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "calc: %v\n", err)
		os.Exit(1)
	}
}
