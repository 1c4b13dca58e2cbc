// Package cli constructs the repo-bootstrap command-line interface, wiring the
// Cobra root command, configuration loader, and structured logging primitives
// around the bootstrap command. It also maps execution errors to process exit
// codes for the main package.
package cli
