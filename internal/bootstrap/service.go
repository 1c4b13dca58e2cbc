package bootstrap

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"
)

const (
	serviceDependenciesMessageConstant = "bootstrap service requires repository manager, filesystem, and instruction printer"
	bootstrapCompletedMessageConstant  = "Bootstrap completed"
	logFieldStagedPathsConstant        = "staged_paths"
	logFieldRepositoryInitializedField = "repository_initialized"
	logFieldIgnoreFileWrittenField     = "ignore_file_written"
)

// ErrServiceDependenciesMissing indicates the service was constructed without required collaborators.
var ErrServiceDependenciesMissing = errors.New(serviceDependenciesMessageConstant)

// ServiceDependencies enumerates collaborators required by the bootstrap service.
type ServiceDependencies struct {
	Logger             *zap.Logger
	RepositoryManager  RepositoryOperations
	FileSystem         FileSystem
	InstructionPrinter InstructionPrinter
	Output             io.Writer
	Steps              []Step
}

// Service bootstraps a working directory into a committed git repository.
type Service struct {
	environment *Environment
	executor    *Executor
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil || dependencies.FileSystem == nil || dependencies.InstructionPrinter == nil {
		return nil, ErrServiceDependenciesMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	steps := dependencies.Steps
	if len(steps) == 0 {
		steps = DefaultSteps()
	}

	return &Service{
		environment: &Environment{
			RepositoryManager:  dependencies.RepositoryManager,
			FileSystem:         dependencies.FileSystem,
			InstructionPrinter: dependencies.InstructionPrinter,
			Output:             output,
			Logger:             logger,
		},
		executor: NewExecutor(steps),
	}, nil
}

// Run executes the bootstrap sequence. The returned result reflects the steps completed before any failure.
func (service *Service) Run(executionContext context.Context, options Options) (Result, error) {
	state := &State{Options: options}
	if executeError := service.executor.Execute(executionContext, service.environment, state); executeError != nil {
		return state.Result, executeError
	}

	service.environment.Logger.Info(
		bootstrapCompletedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, options.RepositoryPath),
		zap.Bool(logFieldRepositoryInitializedField, state.Result.RepositoryInitialized),
		zap.Bool(logFieldIgnoreFileWrittenField, state.Result.IgnoreFileWritten),
		zap.Strings(logFieldStagedPathsConstant, state.Result.StagedPaths),
		zap.String(logFieldBranchConstant, state.Result.Branch),
	)
	return state.Result, nil
}
