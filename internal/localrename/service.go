package localrename

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/renameplan"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	planLoaderMissingMessageConstant    = "rename service plan loader not configured"
	fileSystemMissingMessageConstant    = "rename service file system not configured"
	gitManagerMissingMessageConstant    = "rename service git manager not configured"
	planLoadErrorTemplateConstant       = "unable to load rename plan: %w"
	rootResolutionErrorTemplateConstant = "unable to resolve root directory %s: %w"
	renameFailuresErrorTemplateConstant = "rename completed with %d failures"
	renameStartedMessageConstant        = "applying rename plan"
	renameCompletedMessageConstant      = "rename plan applied"
	logFieldOrganizationConstant        = "organization"
	logFieldStepCountConstant           = "step_count"
	logFieldFailureCountConstant        = "failure_count"
)

// PlanLoader reads rename plans from disk.
type PlanLoader interface {
	Load(planPath string) (renameplan.Plan, error)
}

// PlanFileLoader implements PlanLoader over the renameplan codec.
type PlanFileLoader struct{}

// Load reads and parses the plan file at the provided path.
func (PlanFileLoader) Load(planPath string) (renameplan.Plan, error) {
	return renameplan.Load(planPath)
}

// Dependency sentinels reported by NewService.
var (
	ErrPlanLoaderNotConfigured = errors.New(planLoaderMissingMessageConstant)
	ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)
	ErrGitManagerNotConfigured = errors.New(gitManagerMissingMessageConstant)
)

// CommandOptions captures the configurable parameters for one rename run.
type CommandOptions struct {
	PlanPath             string
	RootDirectory        string
	DryRun               bool
	AssumeYes            bool
	RequireCleanWorktree bool
}

// ServiceDependencies supplies collaborators required by the rename service.
type ServiceDependencies struct {
	Logger     *zap.Logger
	PlanLoader PlanLoader
	FileSystem shared.FileSystem
	GitManager shared.GitRepositoryManager
	Prompter   shared.ConfirmationPrompter
	Output     io.Writer
	Errors     io.Writer
}

// Service applies rename plans to the local clone tree step by step.
type Service struct {
	logger     *zap.Logger
	planLoader PlanLoader
	executor   *Executor
	fileSystem shared.FileSystem
}

// NewService validates dependencies and constructs the rename service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.PlanLoader == nil {
		return nil, ErrPlanLoaderNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	executor := NewExecutor(Dependencies{
		FileSystem: dependencies.FileSystem,
		GitManager: dependencies.GitManager,
		Prompter:   dependencies.Prompter,
		Output:     dependencies.Output,
		Errors:     dependencies.Errors,
	})

	return &Service{
		logger:     logger,
		planLoader: dependencies.PlanLoader,
		executor:   executor,
		fileSystem: dependencies.FileSystem,
	}, nil
}

// Run loads the plan and applies every step in order. Plan order matters:
// collision pairs rely on the first step vacating the name the second step
// moves into.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	plan, loadError := service.planLoader.Load(options.PlanPath)
	if loadError != nil {
		return fmt.Errorf(planLoadErrorTemplateConstant, loadError)
	}

	rootDirectory, rootError := service.fileSystem.Abs(options.RootDirectory)
	if rootError != nil {
		return fmt.Errorf(rootResolutionErrorTemplateConstant, options.RootDirectory, rootError)
	}

	service.logger.Info(
		renameStartedMessageConstant,
		zap.String(logFieldOrganizationConstant, plan.Organization),
		zap.Int(logFieldStepCountConstant, len(plan.Renames)),
	)

	stepOptions := StepOptions{
		DryRun:               options.DryRun,
		RequireCleanWorktree: options.RequireCleanWorktree,
		AssumeYes:            options.AssumeYes,
	}

	failureCount := 0
	for _, renameStep := range plan.Renames {
		oldAbsolutePath := filepath.Join(rootDirectory, renameStep.From)
		newAbsolutePath := filepath.Join(rootDirectory, renameStep.To)
		if !service.executor.ExecuteStep(executionContext, oldAbsolutePath, newAbsolutePath, stepOptions) {
			failureCount++
		}
	}

	service.logger.Info(
		renameCompletedMessageConstant,
		zap.Int(logFieldStepCountConstant, len(plan.Renames)),
		zap.Int(logFieldFailureCountConstant, failureCount),
	)

	if failureCount > 0 {
		return fmt.Errorf(renameFailuresErrorTemplateConstant, failureCount)
	}

	return nil
}
