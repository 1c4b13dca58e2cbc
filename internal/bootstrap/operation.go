package bootstrap

import (
	"context"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/temirov/repo-bootstrap/internal/gitrepo"
	"github.com/temirov/repo-bootstrap/internal/ui"
)

// Step is a single stage of the bootstrap sequence.
type Step interface {
	Name() string
	Execute(executionContext context.Context, environment *Environment, state *State) error
}

// RepositoryOperations describes the git operations the steps rely on.
type RepositoryOperations interface {
	InitializeRepository(executionContext context.Context, repositoryPath string, branchName string) error
	ReadConfigValue(executionContext context.Context, repositoryPath string, configurationKey string) (string, bool, error)
	StagePaths(executionContext context.Context, repositoryPath string, paths []string) error
	Commit(executionContext context.Context, repositoryPath string, message string) error
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
}

// FileSystem describes the file access the steps rely on.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// InstructionPrinter renders the publication instructions.
type InstructionPrinter interface {
	Print(writer io.Writer, instructions ui.PublicationInstructions) error
}

// Environment exposes shared dependencies for bootstrap steps.
type Environment struct {
	RepositoryManager  RepositoryOperations
	FileSystem         FileSystem
	InstructionPrinter InstructionPrinter
	Output             io.Writer
	Logger             *zap.Logger
}

// Options configures a bootstrap run.
type Options struct {
	RepositoryPath string
	DefaultBranch  string
	IgnoreFileName string
	StagedPaths    []string
	CommitMessage  string
	Remote         gitrepo.RemoteURL
	RawContentHost string
	DataFile       string
}

// Result captures the observable outcome of a bootstrap run, including partial progress.
type Result struct {
	RepositoryInitialized bool
	IgnoreFileWritten     bool
	StagedPaths           []string
	SkippedPaths          []string
	CommitCreated         bool
	Branch                string
}

// State carries the run options and accumulates the result across steps.
type State struct {
	Options Options
	Result  Result
}
