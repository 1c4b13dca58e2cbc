package bootstrap

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repo-bootstrap/internal/execshell"
	"github.com/temirov/repo-bootstrap/internal/filesystem"
	"github.com/temirov/repo-bootstrap/internal/gitrepo"
	"github.com/temirov/repo-bootstrap/internal/ui"
	"github.com/temirov/repo-bootstrap/internal/utils"
	pathutils "github.com/temirov/repo-bootstrap/internal/utils/path"
)

const (
	commandUseConstant                      = "repo-bootstrap"
	commandShortDescriptionConstant         = "Bootstrap the events repository for publication"
	commandLongDescriptionConstant          = "repo-bootstrap initializes a Git repository in the working directory, writes a default ignore-list file, commits the scraper sources and data file, and prints the steps for publishing the repository on GitHub."
	repositoryManagerCreationErrorTemplate  = "unable to construct repository manager: %w"
	shellExecutorCreationErrorTemplate      = "unable to construct git executor: %w"
	serviceCreationErrorTemplate            = "unable to construct bootstrap service: %w"
	workingDirectoryResolutionErrorTemplate = "unable to resolve working directory %s: %w"
	repositoryProtocolErrorTemplate         = "invalid repository protocol: %w"
	bootstrapStartedMessageConstant         = "Bootstrapping repository"
	logFieldConfigurationFileConstant       = "config_file"
)

// CommandFileSystem resolves paths in addition to the file access used by the steps.
type CommandFileSystem interface {
	FileSystem
	Abs(path string) (string, error)
}

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the bootstrap Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     gitrepo.GitExecutor
	FileSystem                   CommandFileSystem
	InstructionPrinter           InstructionPrinter
	HomeExpander                 *pathutils.HomeExpander
	WorkingDirectory             string
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
}

// Build constructs the bootstrap command. It accepts no positional arguments.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.Run,
	}
	return command, nil
}

// Run executes the bootstrap sequence for the configured working directory.
func (builder *CommandBuilder) Run(command *cobra.Command, _ []string) error {
	logger := builder.resolveLogger()
	fileSystem := builder.resolveFileSystem()

	options, optionsError := builder.resolveOptions(fileSystem)
	if optionsError != nil {
		return optionsError
	}

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return fmt.Errorf(repositoryManagerCreationErrorTemplate, managerError)
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:             logger,
		RepositoryManager:  repositoryManager,
		FileSystem:         fileSystem,
		InstructionPrinter: builder.resolveInstructionPrinter(),
		Output:             utils.NewFlushingWriter(command.OutOrStdout()),
	})
	if serviceError != nil {
		return fmt.Errorf(serviceCreationErrorTemplate, serviceError)
	}

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(
		bootstrapStartedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, options.RepositoryPath),
		zap.String(logFieldBranchConstant, options.DefaultBranch),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
	)

	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) resolveOptions(fileSystem CommandFileSystem) (Options, error) {
	configuration := builder.resolveConfiguration()

	expander := builder.HomeExpander
	if expander == nil {
		expander = pathutils.NewHomeExpander()
	}

	repositoryPath := expander.Expand(configuration.WorkingDirectory)
	if !filepath.IsAbs(repositoryPath) && len(builder.WorkingDirectory) > 0 {
		repositoryPath = filepath.Join(builder.WorkingDirectory, repositoryPath)
	}
	absolutePath, absError := fileSystem.Abs(repositoryPath)
	if absError != nil {
		return Options{}, fmt.Errorf(workingDirectoryResolutionErrorTemplate, repositoryPath, absError)
	}

	protocol, protocolError := gitrepo.ParseRemoteProtocol(configuration.Repository.Protocol)
	if protocolError != nil {
		return Options{}, fmt.Errorf(repositoryProtocolErrorTemplate, protocolError)
	}

	return Options{
		RepositoryPath: filepath.Clean(absolutePath),
		DefaultBranch:  configuration.DefaultBranch,
		IgnoreFileName: configuration.IgnoreFile,
		StagedPaths:    configuration.StagedPaths,
		CommitMessage:  configuration.CommitMessage,
		Remote: gitrepo.RemoteURL{
			Protocol:   protocol,
			Host:       configuration.Repository.Host,
			Owner:      configuration.Repository.Owner,
			Repository: configuration.Repository.Name,
		},
		RawContentHost: configuration.Repository.RawHost,
		DataFile:       configuration.Repository.DataFile,
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	var observers []execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, fmt.Errorf(shellExecutorCreationErrorTemplate, creationError)
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveFileSystem() CommandFileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.OSFileSystem{}
}

func (builder *CommandBuilder) resolveInstructionPrinter() InstructionPrinter {
	if builder.InstructionPrinter != nil {
		return builder.InstructionPrinter
	}
	return ui.NewInstructionPrinter()
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
