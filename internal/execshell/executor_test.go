package execshell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/execshell"
)

const executorSubtestNameTemplateConstant = "%d_%s"

type stubCommandRunner struct {
	result          execshell.ExecutionResult
	runError        error
	recordedCommand execshell.ShellCommand
}

func (runner *stubCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommand = command
	return runner.result, runner.runError
}

func TestNewShellExecutorValidatesDependencies(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectedError error
	}{
		{
			name:          "missing_logger",
			runner:        &stubCommandRunner{},
			expectedError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:          "missing_runner",
			logger:        zap.NewNop(),
			expectedError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:   "complete_dependencies",
			logger: zap.NewNop(),
			runner: &stubCommandRunner{},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(executorSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			executor, constructionError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectedError != nil {
				require.ErrorIs(subtest, constructionError, testCase.expectedError)
				return
			}
			require.NoError(subtest, constructionError)
			require.NotNil(subtest, executor)
		})
	}
}

func TestShellExecutorRoutesCommandsToTheRunner(testInstance *testing.T) {
	runner := &stubCommandRunner{result: execshell.ExecutionResult{StandardOutput: "ok"}}
	executor, constructionError := execshell.NewShellExecutor(zap.NewNop(), runner)
	require.NoError(testInstance, constructionError)

	gitResult, gitError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"status", "--porcelain"}})
	require.NoError(testInstance, gitError)
	require.Equal(testInstance, "ok", gitResult.StandardOutput)
	require.Equal(testInstance, execshell.CommandGit, runner.recordedCommand.Name)
	require.Equal(testInstance, []string{"status", "--porcelain"}, runner.recordedCommand.Details.Arguments)

	_, githubError := executor.ExecuteGitHubCLI(context.Background(), execshell.CommandDetails{Arguments: []string{"api", "user"}})
	require.NoError(testInstance, githubError)
	require.Equal(testInstance, execshell.CommandGitHub, runner.recordedCommand.Name)
}

func TestShellExecutorReportsNonZeroExits(testInstance *testing.T) {
	runner := &stubCommandRunner{result: execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"}}
	executor, constructionError := execshell.NewShellExecutor(zap.NewNop(), runner)
	require.NoError(testInstance, constructionError)

	_, executionError := executor.ExecuteGit(context.Background(), execshell.CommandDetails{Arguments: []string{"status"}})

	var failedError execshell.CommandFailedError
	require.ErrorAs(testInstance, executionError, &failedError)
	require.Equal(testInstance, 128, failedError.Result.ExitCode)
	require.EqualError(testInstance, executionError, "git status exited with code 128: fatal: not a git repository")
}

func TestShellExecutorReportsStartFailures(testInstance *testing.T) {
	rootCause := errors.New("executable file not found in $PATH")
	runner := &stubCommandRunner{runError: rootCause}
	executor, constructionError := execshell.NewShellExecutor(zap.NewNop(), runner)
	require.NoError(testInstance, constructionError)

	_, executionError := executor.ExecuteGitHubCLI(context.Background(), execshell.CommandDetails{Arguments: []string{"api", "user"}})

	var startFailure execshell.CommandExecutionError
	require.ErrorAs(testInstance, executionError, &startFailure)
	require.ErrorIs(testInstance, executionError, rootCause)
	require.EqualError(testInstance, executionError, "gh api user could not be executed: executable file not found in $PATH")
}
