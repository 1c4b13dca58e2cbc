package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repo-bootstrap/internal/gitrepo"
	"github.com/temirov/repo-bootstrap/internal/ui"
)

const (
	repositoryInitializationStepNameConstant = "repository-init"
	identityVerificationStepNameConstant     = "identity-check"
	ignoreFileStepNameConstant               = "ignore-file"
	stagePathsStepNameConstant               = "stage-paths"
	commitStepNameConstant                   = "commit"
	instructionsStepNameConstant             = "instructions"

	gitMetadataDirectoryNameConstant     = ".git"
	committerEmailConfigurationKey       = "user.email"
	ignoreFilePermissionsConstant        = fs.FileMode(0o644)
	newRepositoryPathConstant            = "new"
	httpsSchemePrefixConstant            = "https://"
	urlPathSeparatorConstant             = "/"
	inspectPathErrorTemplateConstant     = "unable to inspect %s: %w"
	writeIgnoreFileErrorTemplateConstant = "unable to write %s: %w"
	remoteURLErrorTemplateConstant       = "unable to describe remote repository: %w"

	repositoryAlreadyInitializedMessageConstant = "Git repository already initialized"
	repositoryInitializedMessageConstant        = "Initialized Git repository"
	identityVerifiedMessageConstant             = "Committer email configured"
	ignoreFilePresentMessageConstant            = "Ignore-list file already present; leaving it unchanged"
	ignoreFileWrittenMessageConstant            = "Wrote default ignore-list file"
	stagedPathMissingMessageConstant            = "Staged path does not exist; skipping"
	nothingToStageMessageConstant               = "None of the configured paths exist; nothing staged"
	pathsStagedMessageConstant                  = "Staged paths"
	commitCreatedMessageConstant                = "Created commit"
	currentBranchFallbackMessageConstant        = "Unable to resolve current branch; using configured branch"

	logFieldRepositoryPathConstant = "repository_path"
	logFieldBranchConstant         = "branch"
	logFieldPathConstant           = "path"
	logFieldPathsConstant          = "paths"
	logFieldSkippedPathsConstant   = "skipped_paths"
	logFieldEmailConstant          = "email"
)

// DefaultSteps returns the bootstrap sequence in execution order.
func DefaultSteps() []Step {
	return []Step{
		repositoryInitializationStep{},
		identityVerificationStep{},
		ignoreFileStep{},
		stagePathsStep{},
		commitStep{},
		instructionsStep{},
	}
}

type repositoryInitializationStep struct{}

func (repositoryInitializationStep) Name() string {
	return repositoryInitializationStepNameConstant
}

func (repositoryInitializationStep) Execute(executionContext context.Context, environment *Environment, state *State) error {
	repositoryPath := state.Options.RepositoryPath
	metadataPath := filepath.Join(repositoryPath, gitMetadataDirectoryNameConstant)

	exists, inspectError := pathExists(environment.FileSystem, metadataPath)
	if inspectError != nil {
		return inspectError
	}
	if exists {
		environment.Logger.Info(repositoryAlreadyInitializedMessageConstant, zap.String(logFieldRepositoryPathConstant, repositoryPath))
		return nil
	}

	if initializeError := environment.RepositoryManager.InitializeRepository(executionContext, repositoryPath, state.Options.DefaultBranch); initializeError != nil {
		return initializeError
	}

	state.Result.RepositoryInitialized = true
	environment.Logger.Info(
		repositoryInitializedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldBranchConstant, state.Options.DefaultBranch),
	)
	return nil
}

type identityVerificationStep struct{}

func (identityVerificationStep) Name() string {
	return identityVerificationStepNameConstant
}

func (identityVerificationStep) Execute(executionContext context.Context, environment *Environment, state *State) error {
	email, configured, readError := environment.RepositoryManager.ReadConfigValue(executionContext, state.Options.RepositoryPath, committerEmailConfigurationKey)
	if readError != nil {
		return readError
	}
	if !configured {
		return IdentityConfigurationError{ConfigurationKey: committerEmailConfigurationKey}
	}

	environment.Logger.Debug(identityVerifiedMessageConstant, zap.String(logFieldEmailConstant, email))
	return nil
}

type ignoreFileStep struct{}

func (ignoreFileStep) Name() string {
	return ignoreFileStepNameConstant
}

func (ignoreFileStep) Execute(_ context.Context, environment *Environment, state *State) error {
	ignoreFilePath := filepath.Join(state.Options.RepositoryPath, state.Options.IgnoreFileName)

	exists, inspectError := pathExists(environment.FileSystem, ignoreFilePath)
	if inspectError != nil {
		return inspectError
	}
	if exists {
		environment.Logger.Info(ignoreFilePresentMessageConstant, zap.String(logFieldPathConstant, ignoreFilePath))
		return nil
	}

	if writeError := environment.FileSystem.WriteFile(ignoreFilePath, []byte(DefaultIgnoreFileContent), ignoreFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeIgnoreFileErrorTemplateConstant, ignoreFilePath, writeError)
	}

	state.Result.IgnoreFileWritten = true
	environment.Logger.Info(ignoreFileWrittenMessageConstant, zap.String(logFieldPathConstant, ignoreFilePath))
	return nil
}

type stagePathsStep struct{}

func (stagePathsStep) Name() string {
	return stagePathsStepNameConstant
}

func (stagePathsStep) Execute(executionContext context.Context, environment *Environment, state *State) error {
	existingPaths := make([]string, 0, len(state.Options.StagedPaths)+1)
	for _, stagedPath := range withIgnoreFile(state.Options.StagedPaths, state.Options.IgnoreFileName) {
		exists, inspectError := pathExists(environment.FileSystem, filepath.Join(state.Options.RepositoryPath, stagedPath))
		if inspectError != nil {
			return inspectError
		}
		if !exists {
			environment.Logger.Warn(stagedPathMissingMessageConstant, zap.String(logFieldPathConstant, stagedPath))
			state.Result.SkippedPaths = append(state.Result.SkippedPaths, stagedPath)
			continue
		}
		existingPaths = append(existingPaths, stagedPath)
	}

	if len(existingPaths) == 0 {
		environment.Logger.Warn(nothingToStageMessageConstant, zap.Strings(logFieldSkippedPathsConstant, state.Result.SkippedPaths))
		return nil
	}

	if stageError := environment.RepositoryManager.StagePaths(executionContext, state.Options.RepositoryPath, existingPaths); stageError != nil {
		return stageError
	}

	state.Result.StagedPaths = existingPaths
	environment.Logger.Info(pathsStagedMessageConstant, zap.Strings(logFieldPathsConstant, existingPaths))
	return nil
}

type commitStep struct{}

func (commitStep) Name() string {
	return commitStepNameConstant
}

func (commitStep) Execute(executionContext context.Context, environment *Environment, state *State) error {
	if commitError := environment.RepositoryManager.Commit(executionContext, state.Options.RepositoryPath, state.Options.CommitMessage); commitError != nil {
		return commitError
	}

	state.Result.CommitCreated = true
	environment.Logger.Info(commitCreatedMessageConstant, zap.String(logFieldRepositoryPathConstant, state.Options.RepositoryPath))
	return nil
}

type instructionsStep struct{}

func (instructionsStep) Name() string {
	return instructionsStepNameConstant
}

func (instructionsStep) Execute(executionContext context.Context, environment *Environment, state *State) error {
	branch := state.Options.DefaultBranch
	currentBranch, branchError := environment.RepositoryManager.GetCurrentBranch(executionContext, state.Options.RepositoryPath)
	switch {
	case branchError != nil:
		environment.Logger.Warn(currentBranchFallbackMessageConstant, zap.String(logFieldBranchConstant, branch), zap.Error(branchError))
	case len(currentBranch) > 0:
		branch = currentBranch
	}
	state.Result.Branch = branch

	remoteURL, remoteError := gitrepo.FormatRemoteURL(state.Options.Remote)
	if remoteError != nil {
		return fmt.Errorf(remoteURLErrorTemplateConstant, remoteError)
	}

	remote := state.Options.Remote
	instructions := ui.PublicationInstructions{
		NewRepositoryURL: httpsSchemePrefixConstant + remote.Host + urlPathSeparatorConstant + newRepositoryPathConstant,
		Owner:            remote.Owner,
		OwnerPlaceholder: remote.Owner == DefaultRepositoryOwner,
		RepositoryName:   remote.Repository,
		RemoteURL:        remoteURL,
		Branch:           branch,
		PublicDataURL: httpsSchemePrefixConstant + state.Options.RawContentHost + urlPathSeparatorConstant +
			remote.Owner + urlPathSeparatorConstant + remote.Repository + urlPathSeparatorConstant +
			branch + urlPathSeparatorConstant + state.Options.DataFile,
	}

	return environment.InstructionPrinter.Print(environment.Output, instructions)
}

// withIgnoreFile appends the ignore-list file unless the staged paths already name it.
func withIgnoreFile(stagedPaths []string, ignoreFileName string) []string {
	if len(ignoreFileName) == 0 {
		return stagedPaths
	}
	for _, stagedPath := range stagedPaths {
		if filepath.Clean(stagedPath) == filepath.Clean(ignoreFileName) {
			return stagedPaths
		}
	}
	return append(append([]string{}, stagedPaths...), ignoreFileName)
}

func pathExists(fileSystem FileSystem, path string) (bool, error) {
	_, statError := fileSystem.Stat(path)
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf(inspectPathErrorTemplateConstant, path, statError)
}
