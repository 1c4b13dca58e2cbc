// Package bootstrap prepares a working directory for publication as a Git
// repository.
//
// The Service runs a fixed sequence of steps: it initializes repository
// metadata when absent, verifies the committer email, writes the default
// ignore-list file when missing, stages the configured paths, commits them,
// and prints the follow-up instructions for publishing the repository. The
// sequence stops at the first failing step and never rolls back side effects
// already applied.
package bootstrap
