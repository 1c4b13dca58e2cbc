// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for the initialization, configuration lookup,
// staging, and commit operations the bootstrapper performs, along with remote
// URL formatting used when describing how to publish a repository.
package gitrepo
