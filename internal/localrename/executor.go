package localrename

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goodguide/repokeeper/internal/gitrepo"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	planSkipMissingMessage           = "PLAN-SKIP (clone missing): %s\n"
	planSkipDirtyMessage             = "PLAN-SKIP (dirty worktree): %s\n"
	planSkipExistsMessage            = "PLAN-SKIP (target exists): %s\n"
	planCaseOnlyMessage              = "PLAN-CASE-ONLY: %s -> %s (two-step move required)\n"
	planReadyMessage                 = "PLAN-OK: %s -> %s\n"
	promptTemplate                   = "Rename '%s' -> '%s'? [a/N/y] "
	skipMessage                      = "SKIP: %s\n"
	skipMissingMessage               = "SKIP (clone missing): %s\n"
	skipDirtyMessage                 = "SKIP (dirty worktree): %s\n"
	errorTargetExistsMessage         = "ERROR: target exists: %s\n"
	successMessage                   = "Renamed %s -> %s\n"
	remoteUpdatedMessage             = "Updated origin remote for %s\n"
	remoteUpdateFailedMessage        = "ERROR: origin remote update failed for %s\n"
	failureMessage                   = "ERROR: rename failed for %s -> %s\n"
	promptFailureMessage             = "ERROR: confirmation failed for %s\n"
	intermediateRenameTemplate       = "%s.rename.%d"
	intermediateAttemptLimitConstant = 5
)

// StepOptions configures the execution of a single rename step.
type StepOptions struct {
	DryRun               bool
	RequireCleanWorktree bool
	AssumeYes            bool
}

// Dependencies supplies collaborators required to evaluate rename steps.
type Dependencies struct {
	FileSystem shared.FileSystem
	GitManager shared.GitRepositoryManager
	Prompter   shared.ConfirmationPrompter
	Output     io.Writer
	Errors     io.Writer
}

// Executor applies rename steps to the local clone tree.
type Executor struct {
	dependencies Dependencies
	assumeYes    bool
}

// NewExecutor constructs an Executor from the provided dependencies.
func NewExecutor(dependencies Dependencies) *Executor {
	return &Executor{dependencies: dependencies}
}

// ExecuteStep applies one rename step. The returned flag reports whether the
// step succeeded or was safely skipped; hard failures return false after an
// error line is printed.
func (executor *Executor) ExecuteStep(executionContext context.Context, oldAbsolutePath string, newAbsolutePath string, options StepOptions) bool {
	if _, statError := executor.dependencies.FileSystem.Stat(oldAbsolutePath); statError != nil {
		if options.DryRun {
			executor.printfOutput(planSkipMissingMessage, oldAbsolutePath)
		} else {
			executor.printfOutput(skipMissingMessage, oldAbsolutePath)
		}
		return true
	}

	if options.DryRun {
		executor.printPlan(executionContext, oldAbsolutePath, newAbsolutePath, options.RequireCleanWorktree)
		return true
	}

	if options.RequireCleanWorktree && !executor.isClean(executionContext, oldAbsolutePath) {
		executor.printfOutput(skipDirtyMessage, oldAbsolutePath)
		return true
	}

	caseOnlyRename := isCaseOnlyRename(oldAbsolutePath, newAbsolutePath)
	if executor.targetExists(newAbsolutePath) && !caseOnlyRename {
		executor.printfError(errorTargetExistsMessage, newAbsolutePath)
		return false
	}

	if !options.AssumeYes && !executor.assumeYes && executor.dependencies.Prompter != nil {
		prompt := fmt.Sprintf(promptTemplate, oldAbsolutePath, newAbsolutePath)
		confirmationResult, promptError := executor.dependencies.Prompter.Confirm(prompt)
		if promptError != nil {
			executor.printfError(promptFailureMessage, oldAbsolutePath)
			return false
		}
		if confirmationResult.ApplyToAll {
			executor.assumeYes = true
		}
		if !confirmationResult.Confirmed {
			executor.printfOutput(skipMessage, oldAbsolutePath)
			return true
		}
	}

	if !executor.performRename(oldAbsolutePath, newAbsolutePath) {
		executor.printfError(failureMessage, oldAbsolutePath, newAbsolutePath)
		return false
	}
	executor.printfOutput(successMessage, oldAbsolutePath, newAbsolutePath)

	if !executor.updateOriginRemote(executionContext, newAbsolutePath) {
		executor.printfError(remoteUpdateFailedMessage, newAbsolutePath)
		return false
	}
	executor.printfOutput(remoteUpdatedMessage, newAbsolutePath)

	return true
}

func (executor *Executor) printPlan(executionContext context.Context, oldAbsolutePath string, newAbsolutePath string, requireClean bool) {
	caseOnlyRename := isCaseOnlyRename(oldAbsolutePath, newAbsolutePath)

	switch {
	case requireClean && !executor.isClean(executionContext, oldAbsolutePath):
		executor.printfOutput(planSkipDirtyMessage, oldAbsolutePath)
	case executor.targetExists(newAbsolutePath) && !caseOnlyRename:
		executor.printfOutput(planSkipExistsMessage, newAbsolutePath)
	case caseOnlyRename:
		executor.printfOutput(planCaseOnlyMessage, oldAbsolutePath, newAbsolutePath)
	default:
		executor.printfOutput(planReadyMessage, oldAbsolutePath, newAbsolutePath)
	}
}

func (executor *Executor) isClean(executionContext context.Context, repositoryPath string) bool {
	if executor.dependencies.GitManager == nil {
		return false
	}
	clean, cleanError := executor.dependencies.GitManager.CheckCleanWorktree(executionContext, repositoryPath)
	if cleanError != nil {
		return false
	}
	return clean
}

func (executor *Executor) targetExists(path string) bool {
	_, statError := executor.dependencies.FileSystem.Stat(path)
	return statError == nil
}

// performRename moves the directory, falling back to a two-step move through
// an intermediate name when the direct rename fails (case-only renames on
// case-insensitive filesystems need this).
func (executor *Executor) performRename(oldAbsolutePath string, newAbsolutePath string) bool {
	renameError := executor.dependencies.FileSystem.Rename(oldAbsolutePath, newAbsolutePath)
	if renameError == nil {
		return true
	}

	for attempt := 0; attempt < intermediateAttemptLimitConstant; attempt++ {
		intermediatePath := fmt.Sprintf(intermediateRenameTemplate, oldAbsolutePath, attempt)
		if renameError = executor.dependencies.FileSystem.Rename(oldAbsolutePath, intermediatePath); renameError != nil {
			continue
		}
		if renameError = executor.dependencies.FileSystem.Rename(intermediatePath, newAbsolutePath); renameError == nil {
			return true
		}
	}

	return false
}

func (executor *Executor) updateOriginRemote(executionContext context.Context, repositoryPath string) bool {
	if executor.dependencies.GitManager == nil {
		return false
	}

	currentRemoteURL, remoteError := executor.dependencies.GitManager.GetRemoteURL(executionContext, repositoryPath, shared.OriginRemoteNameConstant)
	if remoteError != nil {
		return false
	}

	parsedRemote, parseError := gitrepo.ParseRemoteURL(currentRemoteURL)
	if parseError != nil {
		return false
	}

	updatedRemoteURL, formatError := gitrepo.FormatRemoteURL(parsedRemote.WithRepository(filepath.Base(repositoryPath)))
	if formatError != nil {
		return false
	}

	if updatedRemoteURL == currentRemoteURL {
		return true
	}

	return executor.dependencies.GitManager.SetRemoteURL(executionContext, repositoryPath, shared.OriginRemoteNameConstant, updatedRemoteURL) == nil
}

func (executor *Executor) printfOutput(format string, arguments ...any) {
	if executor.dependencies.Output == nil {
		return
	}
	fmt.Fprintf(executor.dependencies.Output, format, arguments...)
}

func (executor *Executor) printfError(format string, arguments ...any) {
	if executor.dependencies.Errors == nil {
		return
	}
	fmt.Fprintf(executor.dependencies.Errors, format, arguments...)
}

func isCaseOnlyRename(oldPath string, newPath string) bool {
	return strings.EqualFold(oldPath, newPath) && oldPath != newPath
}
