package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodguide/repokeeper/internal/execshell"
	"github.com/goodguide/repokeeper/internal/gitrepo"
)

const testRepositoryPathConstant = "/tmp/clones/widget"

type stubGitExecutor struct {
	result          execshell.ExecutionResult
	executionError  error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return executor.result, executor.executionError
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	_, constructionError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(testInstance, constructionError, gitrepo.ErrExecutorNotConfigured)
}

func TestIsGitRepository(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	manager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	require.True(testInstance, manager.IsGitRepository(context.Background(), testRepositoryPathConstant))
	require.Equal(testInstance, []string{"rev-parse", "--git-dir"}, executor.recordedDetails[0].Arguments)
	require.Equal(testInstance, testRepositoryPathConstant, executor.recordedDetails[0].WorkingDirectory)

	require.False(testInstance, manager.IsGitRepository(context.Background(), "  "))

	executor.executionError = errors.New("exit status 128")
	require.False(testInstance, manager.IsGitRepository(context.Background(), testRepositoryPathConstant))
}

func TestCheckCleanWorktree(testInstance *testing.T) {
	executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: "\n"}}
	manager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	clean, checkError := manager.CheckCleanWorktree(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, checkError)
	require.True(testInstance, clean)
	require.Equal(testInstance, []string{"status", "--porcelain"}, executor.recordedDetails[0].Arguments)

	executor.result = execshell.ExecutionResult{StandardOutput: " M internal/service.go\n"}
	clean, checkError = manager.CheckCleanWorktree(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, checkError)
	require.False(testInstance, clean)
}

func TestGetCurrentBranchTrimsOutput(testInstance *testing.T) {
	executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: "main\n"}}
	manager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	branchName, branchError := manager.GetCurrentBranch(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, branchError)
	require.Equal(testInstance, "main", branchName)
	require.Equal(testInstance, []string{"branch", "--show-current"}, executor.recordedDetails[0].Arguments)
}

func TestRemoteURLOperations(testInstance *testing.T) {
	executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: "git@github.com:goodguide/widget.git\n"}}
	manager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	remoteURL, remoteError := manager.GetRemoteURL(context.Background(), testRepositoryPathConstant, "origin")
	require.NoError(testInstance, remoteError)
	require.Equal(testInstance, "git@github.com:goodguide/widget.git", remoteURL)
	require.Equal(testInstance, []string{"remote", "get-url", "origin"}, executor.recordedDetails[0].Arguments)

	_, blankRemoteError := manager.GetRemoteURL(context.Background(), testRepositoryPathConstant, "  ")
	var inputError gitrepo.GitInputError
	require.ErrorAs(testInstance, blankRemoteError, &inputError)

	setError := manager.SetRemoteURL(context.Background(), testRepositoryPathConstant, "origin", "git@github.com:goodguide/gadget.git")
	require.NoError(testInstance, setError)
	require.Equal(testInstance, []string{"remote", "set-url", "origin", "git@github.com:goodguide/gadget.git"}, executor.recordedDetails[len(executor.recordedDetails)-1].Arguments)

	blankURLError := manager.SetRemoteURL(context.Background(), testRepositoryPathConstant, "origin", "")
	require.ErrorAs(testInstance, blankURLError, &inputError)
}

func TestCloneAndPull(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	manager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	cloneError := manager.CloneRepository(context.Background(), "git@github.com:goodguide/widget.git", testRepositoryPathConstant)
	require.NoError(testInstance, cloneError)
	require.Equal(testInstance, []string{"clone", "git@github.com:goodguide/widget.git", testRepositoryPathConstant}, executor.recordedDetails[0].Arguments)
	require.Empty(testInstance, executor.recordedDetails[0].WorkingDirectory)

	pullError := manager.PullRepository(context.Background(), testRepositoryPathConstant)
	require.NoError(testInstance, pullError)
	require.Equal(testInstance, []string{"pull", "--ff-only"}, executor.recordedDetails[1].Arguments)
	require.Equal(testInstance, testRepositoryPathConstant, executor.recordedDetails[1].WorkingDirectory)
}

func TestGitOperationErrorsCarryContext(testInstance *testing.T) {
	rootCause := errors.New("git pull --ff-only exited with code 1")
	executor := &stubGitExecutor{executionError: rootCause}
	manager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	pullError := manager.PullRepository(context.Background(), testRepositoryPathConstant)

	var operationError gitrepo.GitOperationError
	require.ErrorAs(testInstance, pullError, &operationError)
	require.Equal(testInstance, "pull", operationError.Operation)
	require.Equal(testInstance, testRepositoryPathConstant, operationError.RepositoryPath)
	require.ErrorIs(testInstance, pullError, rootCause)
}
