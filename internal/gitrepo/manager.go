package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goodguide/repokeeper/internal/execshell"
)

const (
	statusSubcommandConstant             = "status"
	porcelainFlagConstant                = "--porcelain"
	branchSubcommandConstant             = "branch"
	showCurrentFlagConstant              = "--show-current"
	remoteSubcommandConstant             = "remote"
	remoteGetURLSubcommandConstant       = "get-url"
	remoteSetURLSubcommandConstant       = "set-url"
	cloneSubcommandConstant              = "clone"
	pullSubcommandConstant               = "pull"
	ffOnlyFlagConstant                   = "--ff-only"
	revParseSubcommandConstant           = "rev-parse"
	gitDirFlagConstant                   = "--git-dir"
	requiredValueMessageConstant         = "value required"
	executorNotConfiguredMessageConstant = "repository manager executor not configured"
	repositoryPathFieldNameConstant      = "repository path"
	remoteNameFieldNameConstant          = "remote name"
	remoteURLFieldNameConstant           = "remote url"
	cloneURLFieldNameConstant            = "clone url"
	gitOperationErrorTemplateConstant    = "git %s failed for %s: %s"
	gitInputErrorTemplateConstant        = "%s: %s"
)

// GitCommandExecutor is the narrow execshell surface required by RepositoryManager.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitInputError reports missing or blank operation inputs.
type GitInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError GitInputError) Error() string {
	return fmt.Sprintf(gitInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// GitOperationError wraps git command failures with operation context.
type GitOperationError struct {
	Operation      string
	RepositoryPath string
	Cause          error
}

// Error describes the git operation failure.
func (operationError GitOperationError) Error() string {
	return fmt.Sprintf(gitOperationErrorTemplateConstant, operationError.Operation, operationError.RepositoryPath, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError GitOperationError) Unwrap() error {
	return operationError.Cause
}

// RepositoryManager performs git operations against local clones.
type RepositoryManager struct {
	executor GitCommandExecutor
}

// NewRepositoryManager validates dependencies and constructs a RepositoryManager.
func NewRepositoryManager(executor GitCommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsGitRepository reports whether the path contains a git repository.
func (manager *RepositoryManager) IsGitRepository(executionContext context.Context, repositoryPath string) bool {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return false
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, gitDirFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError == nil
}

// CheckCleanWorktree reports whether the repository has no pending changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.runInRepository(executionContext, repositoryPath, statusSubcommandConstant, statusSubcommandConstant, porcelainFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// GetCurrentBranch returns the checked-out branch name.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.runInRepository(executionContext, repositoryPath, branchSubcommandConstant, branchSubcommandConstant, showCurrentFlagConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// GetRemoteURL returns the URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return "", GitInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	executionResult, executionError := manager.runInRepository(executionContext, repositoryPath, remoteSubcommandConstant, remoteSubcommandConstant, remoteGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// SetRemoteURL rewrites the URL configured for the named remote.
func (manager *RepositoryManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return GitInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remoteURL)) == 0 {
		return GitInputError{FieldName: remoteURLFieldNameConstant, Message: requiredValueMessageConstant}
	}
	_, executionError := manager.runInRepository(executionContext, repositoryPath, remoteSubcommandConstant, remoteSubcommandConstant, remoteSetURLSubcommandConstant, remoteName, remoteURL)
	return executionError
}

// CloneRepository clones the remote URL into the destination path.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, cloneURL string, destinationPath string) error {
	if len(strings.TrimSpace(cloneURL)) == 0 {
		return GitInputError{FieldName: cloneURLFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(destinationPath)) == 0 {
		return GitInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{cloneSubcommandConstant, cloneURL, destinationPath},
	})
	if executionError != nil {
		return GitOperationError{Operation: cloneSubcommandConstant, RepositoryPath: destinationPath, Cause: executionError}
	}
	return nil
}

// PullRepository fast-forwards the current branch from its upstream.
func (manager *RepositoryManager) PullRepository(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.runInRepository(executionContext, repositoryPath, pullSubcommandConstant, pullSubcommandConstant, ffOnlyFlagConstant)
	return executionError
}

func (manager *RepositoryManager) runInRepository(executionContext context.Context, repositoryPath string, operation string, arguments ...string) (execshell.ExecutionResult, error) {
	if len(strings.TrimSpace(repositoryPath)) == 0 {
		return execshell.ExecutionResult{}, GitInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return execshell.ExecutionResult{}, GitOperationError{Operation: operation, RepositoryPath: repositoryPath, Cause: executionError}
	}
	return executionResult, nil
}
