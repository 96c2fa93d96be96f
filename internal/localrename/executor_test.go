package localrename_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodguide/repokeeper/internal/localrename"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	testOldClonePathConstant = "/home/operator/src/goodguide/widget_tools"
	testNewClonePathConstant = "/home/operator/src/goodguide/widget-tools"
)

type fakeFileSystem struct {
	existingPaths map[string]struct{}
	renameErrors  map[string]error
	renames       [][2]string
}

func newFakeFileSystem(existingPaths ...string) *fakeFileSystem {
	fileSystem := &fakeFileSystem{
		existingPaths: map[string]struct{}{},
		renameErrors:  map[string]error{},
	}
	for _, path := range existingPaths {
		fileSystem.existingPaths[path] = struct{}{}
	}
	return fileSystem
}

func (fileSystem *fakeFileSystem) Stat(path string) (fs.FileInfo, error) {
	if _, exists := fileSystem.existingPaths[path]; exists {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

func (fileSystem *fakeFileSystem) Rename(oldPath string, newPath string) error {
	if renameError, failing := fileSystem.renameErrors[oldPath+"->"+newPath]; failing {
		return renameError
	}
	delete(fileSystem.existingPaths, oldPath)
	fileSystem.existingPaths[newPath] = struct{}{}
	fileSystem.renames = append(fileSystem.renames, [2]string{oldPath, newPath})
	return nil
}

func (fileSystem *fakeFileSystem) Abs(path string) (string, error) {
	return path, nil
}

func (fileSystem *fakeFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return nil
}

func (fileSystem *fakeFileSystem) ReadFile(path string) ([]byte, error) {
	return nil, fs.ErrNotExist
}

func (fileSystem *fakeFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return nil
}

type fakeGitManager struct {
	clean          bool
	cleanError     error
	remoteURL      string
	remoteURLError error
	setRemoteCalls [][2]string
	setRemoteError error
}

func (manager *fakeGitManager) IsGitRepository(executionContext context.Context, repositoryPath string) bool {
	return true
}

func (manager *fakeGitManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	return manager.clean, manager.cleanError
}

func (manager *fakeGitManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	return "main", nil
}

func (manager *fakeGitManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	return manager.remoteURL, manager.remoteURLError
}

func (manager *fakeGitManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.setRemoteCalls = append(manager.setRemoteCalls, [2]string{remoteName, remoteURL})
	return manager.setRemoteError
}

func (manager *fakeGitManager) CloneRepository(executionContext context.Context, cloneURL string, destinationPath string) error {
	return nil
}

func (manager *fakeGitManager) PullRepository(executionContext context.Context, repositoryPath string) error {
	return nil
}

type scriptedPrompter struct {
	results       []shared.ConfirmationResult
	promptError   error
	receivedTexts []string
}

func (prompter *scriptedPrompter) Confirm(prompt string) (shared.ConfirmationResult, error) {
	prompter.receivedTexts = append(prompter.receivedTexts, prompt)
	if prompter.promptError != nil {
		return shared.ConfirmationResult{}, prompter.promptError
	}
	result := prompter.results[0]
	if len(prompter.results) > 1 {
		prompter.results = prompter.results[1:]
	}
	return result, nil
}

func executorFixture(fileSystem *fakeFileSystem, gitManager *fakeGitManager, prompter shared.ConfirmationPrompter) (*localrename.Executor, *bytes.Buffer, *bytes.Buffer) {
	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	executor := localrename.NewExecutor(localrename.Dependencies{
		FileSystem: fileSystem,
		GitManager: gitManager,
		Prompter:   prompter,
		Output:     &outputBuffer,
		Errors:     &errorBuffer,
	})
	return executor, &outputBuffer, &errorBuffer
}

func TestExecuteStepSkipsMissingClones(testInstance *testing.T) {
	executor, outputBuffer, _ := executorFixture(newFakeFileSystem(), &fakeGitManager{clean: true}, nil)

	succeeded := executor.ExecuteStep(context.Background(), testOldClonePathConstant, testNewClonePathConstant, localrename.StepOptions{RequireCleanWorktree: true})

	require.True(testInstance, succeeded)
	require.Equal(testInstance, "SKIP (clone missing): "+testOldClonePathConstant+"\n", outputBuffer.String())
}

func TestExecuteStepDryRunPrintsThePlan(testInstance *testing.T) {
	testCases := []struct {
		name           string
		existingPaths  []string
		clean          bool
		oldPath        string
		newPath        string
		expectedOutput string
	}{
		{
			name:           "missing_clone",
			existingPaths:  nil,
			clean:          true,
			oldPath:        testOldClonePathConstant,
			newPath:        testNewClonePathConstant,
			expectedOutput: "PLAN-SKIP (clone missing): " + testOldClonePathConstant + "\n",
		},
		{
			name:           "dirty_worktree",
			existingPaths:  []string{testOldClonePathConstant},
			clean:          false,
			oldPath:        testOldClonePathConstant,
			newPath:        testNewClonePathConstant,
			expectedOutput: "PLAN-SKIP (dirty worktree): " + testOldClonePathConstant + "\n",
		},
		{
			name:           "target_already_exists",
			existingPaths:  []string{testOldClonePathConstant, testNewClonePathConstant},
			clean:          true,
			oldPath:        testOldClonePathConstant,
			newPath:        testNewClonePathConstant,
			expectedOutput: "PLAN-SKIP (target exists): " + testNewClonePathConstant + "\n",
		},
		{
			name:           "case_only_rename",
			existingPaths:  []string{"/home/operator/src/goodguide/Widget"},
			clean:          true,
			oldPath:        "/home/operator/src/goodguide/Widget",
			newPath:        "/home/operator/src/goodguide/widget",
			expectedOutput: "PLAN-CASE-ONLY: /home/operator/src/goodguide/Widget -> /home/operator/src/goodguide/widget (two-step move required)\n",
		},
		{
			name:           "ready_to_rename",
			existingPaths:  []string{testOldClonePathConstant},
			clean:          true,
			oldPath:        testOldClonePathConstant,
			newPath:        testNewClonePathConstant,
			expectedOutput: "PLAN-OK: " + testOldClonePathConstant + " -> " + testNewClonePathConstant + "\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			executor, outputBuffer, errorBuffer := executorFixture(newFakeFileSystem(testCase.existingPaths...), &fakeGitManager{clean: testCase.clean}, nil)

			succeeded := executor.ExecuteStep(context.Background(), testCase.oldPath, testCase.newPath, localrename.StepOptions{DryRun: true, RequireCleanWorktree: true})

			require.True(subtest, succeeded)
			require.Equal(subtest, testCase.expectedOutput, outputBuffer.String())
			require.Empty(subtest, errorBuffer.String())
		})
	}
}

func TestExecuteStepSkipsDirtyWorktrees(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(testOldClonePathConstant)
	executor, outputBuffer, _ := executorFixture(fileSystem, &fakeGitManager{clean: false}, nil)

	succeeded := executor.ExecuteStep(context.Background(), testOldClonePathConstant, testNewClonePathConstant, localrename.StepOptions{RequireCleanWorktree: true, AssumeYes: true})

	require.True(testInstance, succeeded)
	require.Equal(testInstance, "SKIP (dirty worktree): "+testOldClonePathConstant+"\n", outputBuffer.String())
	require.Empty(testInstance, fileSystem.renames)
}

func TestExecuteStepRefusesExistingTargets(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(testOldClonePathConstant, testNewClonePathConstant)
	executor, _, errorBuffer := executorFixture(fileSystem, &fakeGitManager{clean: true}, nil)

	succeeded := executor.ExecuteStep(context.Background(), testOldClonePathConstant, testNewClonePathConstant, localrename.StepOptions{AssumeYes: true})

	require.False(testInstance, succeeded)
	require.Equal(testInstance, "ERROR: target exists: "+testNewClonePathConstant+"\n", errorBuffer.String())
}

func TestExecuteStepRenamesAndRetargetsTheOriginRemote(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(testOldClonePathConstant)
	gitManager := &fakeGitManager{clean: true, remoteURL: "git@github.com:goodguide/widget_tools.git"}
	executor, outputBuffer, errorBuffer := executorFixture(fileSystem, gitManager, nil)

	succeeded := executor.ExecuteStep(context.Background(), testOldClonePathConstant, testNewClonePathConstant, localrename.StepOptions{RequireCleanWorktree: true, AssumeYes: true})

	require.True(testInstance, succeeded)
	require.Empty(testInstance, errorBuffer.String())
	require.Equal(testInstance, [][2]string{{testOldClonePathConstant, testNewClonePathConstant}}, fileSystem.renames)
	require.Equal(testInstance, [][2]string{{"origin", "git@github.com:goodguide/widget-tools.git"}}, gitManager.setRemoteCalls)
	require.Contains(testInstance, outputBuffer.String(), "Renamed "+testOldClonePathConstant+" -> "+testNewClonePathConstant+"\n")
	require.Contains(testInstance, outputBuffer.String(), "Updated origin remote for "+testNewClonePathConstant+"\n")
}

func TestExecuteStepLeavesMatchingRemotesAlone(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(testOldClonePathConstant)
	gitManager := &fakeGitManager{clean: true, remoteURL: "git@github.com:goodguide/widget-tools.git"}
	executor, _, errorBuffer := executorFixture(fileSystem, gitManager, nil)

	succeeded := executor.ExecuteStep(context.Background(), testOldClonePathConstant, testNewClonePathConstant, localrename.StepOptions{AssumeYes: true})

	require.True(testInstance, succeeded)
	require.Empty(testInstance, errorBuffer.String())
	require.Empty(testInstance, gitManager.setRemoteCalls)
}

func TestExecuteStepFallsBackToTwoStepMoves(testInstance *testing.T) {
	oldPath := "/home/operator/src/goodguide/Widget"
	newPath := "/home/operator/src/goodguide/widget"
	fileSystem := newFakeFileSystem(oldPath)
	fileSystem.renameErrors[oldPath+"->"+newPath] = errors.New("file exists")
	gitManager := &fakeGitManager{clean: true, remoteURL: "git@github.com:goodguide/widget.git"}
	executor, outputBuffer, errorBuffer := executorFixture(fileSystem, gitManager, nil)

	succeeded := executor.ExecuteStep(context.Background(), oldPath, newPath, localrename.StepOptions{AssumeYes: true})

	require.True(testInstance, succeeded)
	require.Empty(testInstance, errorBuffer.String())
	require.Equal(testInstance, [][2]string{
		{oldPath, oldPath + ".rename.0"},
		{oldPath + ".rename.0", newPath},
	}, fileSystem.renames)
	require.Contains(testInstance, outputBuffer.String(), "Renamed "+oldPath+" -> "+newPath+"\n")
}

func TestExecuteStepPromptsBeforeRenaming(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(testOldClonePathConstant)
	prompter := &scriptedPrompter{results: []shared.ConfirmationResult{{Confirmed: false}}}
	executor, outputBuffer, _ := executorFixture(fileSystem, &fakeGitManager{clean: true}, prompter)

	succeeded := executor.ExecuteStep(context.Background(), testOldClonePathConstant, testNewClonePathConstant, localrename.StepOptions{})

	require.True(testInstance, succeeded)
	require.Equal(testInstance, []string{"Rename '" + testOldClonePathConstant + "' -> '" + testNewClonePathConstant + "'? [a/N/y] "}, prompter.receivedTexts)
	require.Equal(testInstance, "SKIP: "+testOldClonePathConstant+"\n", outputBuffer.String())
	require.Empty(testInstance, fileSystem.renames)
}

func TestExecuteStepApplyToAllStopsPrompting(testInstance *testing.T) {
	firstOldPath := "/home/operator/src/goodguide/alpha_one"
	firstNewPath := "/home/operator/src/goodguide/alpha-one"
	secondOldPath := "/home/operator/src/goodguide/beta_two"
	secondNewPath := "/home/operator/src/goodguide/beta-two"
	fileSystem := newFakeFileSystem(firstOldPath, secondOldPath)
	gitManager := &fakeGitManager{clean: true, remoteURL: "git@github.com:goodguide/alpha-one.git"}
	prompter := &scriptedPrompter{results: []shared.ConfirmationResult{{Confirmed: true, ApplyToAll: true}}}
	executor, _, _ := executorFixture(fileSystem, gitManager, prompter)

	require.True(testInstance, executor.ExecuteStep(context.Background(), firstOldPath, firstNewPath, localrename.StepOptions{}))
	require.True(testInstance, executor.ExecuteStep(context.Background(), secondOldPath, secondNewPath, localrename.StepOptions{}))

	require.Len(testInstance, prompter.receivedTexts, 1)
	require.Len(testInstance, fileSystem.renames, 2)
}

func TestExecuteStepReportsPromptFailures(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(testOldClonePathConstant)
	prompter := &scriptedPrompter{promptError: errors.New("stdin closed")}
	executor, _, errorBuffer := executorFixture(fileSystem, &fakeGitManager{clean: true}, prompter)

	succeeded := executor.ExecuteStep(context.Background(), testOldClonePathConstant, testNewClonePathConstant, localrename.StepOptions{})

	require.False(testInstance, succeeded)
	require.Equal(testInstance, "ERROR: confirmation failed for "+testOldClonePathConstant+"\n", errorBuffer.String())
}
