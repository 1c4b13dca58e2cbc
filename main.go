package main

import (
	"fmt"
	"os"

	"github.com/temirov/repo-bootstrap/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%s\n"
)

// main executes the repo-bootstrap command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, cli.ErrorMessage(executionError))
		os.Exit(cli.ExitCode(executionError))
	}
}
