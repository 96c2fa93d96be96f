package clones

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/gitrepo"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	githubHostConstant                   = "github.com"
	snapshotLoaderMissingMessageConstant = "sync service snapshot loader not configured"
	gitManagerMissingMessageConstant     = "sync service git manager not configured"
	fileSystemMissingMessageConstant     = "sync service file system not configured"
	snapshotLoadErrorTemplateConstant    = "unable to load snapshot: %w"
	rootResolutionErrorTemplateConstant  = "unable to resolve root directory %s: %w"
	syncFailuresErrorTemplateConstant    = "sync completed with %d failures"
	cloneFailedMessageConstant           = "clone failed"
	pullFailedMessageConstant            = "pull failed"
	notGitRepositoryMessageConstant      = "path exists but is not a git repository"
	repositoryClonedMessageConstant      = "repository cloned"
	repositoryPulledMessageConstant      = "repository pulled"
	syncCompletedMessageConstant         = "sync completed"
	logFieldRepositoryConstant           = "repository"
	logFieldPathConstant                 = "path"
	logFieldErrorConstant                = "error"
	logFieldClonedCountConstant          = "cloned_count"
	logFieldPulledCountConstant          = "pulled_count"
	logFieldFailureCountConstant         = "failure_count"
)

// Dependency sentinels reported by NewService.
var (
	ErrSnapshotLoaderNotConfigured = errors.New(snapshotLoaderMissingMessageConstant)
	ErrGitManagerNotConfigured     = errors.New(gitManagerMissingMessageConstant)
	ErrFileSystemNotConfigured     = errors.New(fileSystemMissingMessageConstant)
)

// CommandOptions captures the configurable parameters for one sync run.
type CommandOptions struct {
	Organization  string
	SnapshotPath  string
	RootDirectory string
}

// ServiceDependencies supplies collaborators required by the sync service.
type ServiceDependencies struct {
	Logger         *zap.Logger
	SnapshotLoader SnapshotLoader
	GitManager     shared.GitRepositoryManager
	FileSystem     shared.FileSystem
}

// Service orchestrates one sync run over the local clone tree.
type Service struct {
	logger         *zap.Logger
	snapshotLoader SnapshotLoader
	gitManager     shared.GitRepositoryManager
	fileSystem     shared.FileSystem
}

// NewService validates dependencies and constructs the sync service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.SnapshotLoader == nil {
		return nil, ErrSnapshotLoaderNotConfigured
	}
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:         logger,
		snapshotLoader: dependencies.SnapshotLoader,
		gitManager:     dependencies.GitManager,
		fileSystem:     dependencies.FileSystem,
	}, nil
}

// Run clones missing repositories under the root directory and fast-forwards
// the existing clones. Individual repository failures are logged and counted
// rather than aborting the sweep; a non-zero failure count surfaces as the
// run's error.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	repositories, loadError := service.snapshotLoader.Load(options.SnapshotPath)
	if loadError != nil {
		return fmt.Errorf(snapshotLoadErrorTemplateConstant, loadError)
	}

	rootDirectory, rootError := service.fileSystem.Abs(options.RootDirectory)
	if rootError != nil {
		return fmt.Errorf(rootResolutionErrorTemplateConstant, options.RootDirectory, rootError)
	}

	clonedCount := 0
	pulledCount := 0
	failureCount := 0

	for _, repository := range repositories {
		repositoryPath := filepath.Join(rootDirectory, repository.Name)

		if _, statError := service.fileSystem.Stat(repositoryPath); statError != nil {
			if cloneError := service.cloneRepository(executionContext, options.Organization, repository.Name, repositoryPath); cloneError != nil {
				service.logger.Warn(
					cloneFailedMessageConstant,
					zap.String(logFieldRepositoryConstant, repository.Name),
					zap.String(logFieldErrorConstant, cloneError.Error()),
				)
				failureCount++
				continue
			}
			service.logger.Info(repositoryClonedMessageConstant, zap.String(logFieldRepositoryConstant, repository.Name), zap.String(logFieldPathConstant, repositoryPath))
			clonedCount++
			continue
		}

		if !service.gitManager.IsGitRepository(executionContext, repositoryPath) {
			service.logger.Warn(
				notGitRepositoryMessageConstant,
				zap.String(logFieldRepositoryConstant, repository.Name),
				zap.String(logFieldPathConstant, repositoryPath),
			)
			failureCount++
			continue
		}

		if pullError := service.gitManager.PullRepository(executionContext, repositoryPath); pullError != nil {
			service.logger.Warn(
				pullFailedMessageConstant,
				zap.String(logFieldRepositoryConstant, repository.Name),
				zap.String(logFieldErrorConstant, pullError.Error()),
			)
			failureCount++
			continue
		}
		service.logger.Debug(repositoryPulledMessageConstant, zap.String(logFieldRepositoryConstant, repository.Name))
		pulledCount++
	}

	service.logger.Info(
		syncCompletedMessageConstant,
		zap.Int(logFieldClonedCountConstant, clonedCount),
		zap.Int(logFieldPulledCountConstant, pulledCount),
		zap.Int(logFieldFailureCountConstant, failureCount),
	)

	if failureCount > 0 {
		return fmt.Errorf(syncFailuresErrorTemplateConstant, failureCount)
	}

	return nil
}

func (service *Service) cloneRepository(executionContext context.Context, organization string, repositoryName string, repositoryPath string) error {
	cloneURL, formatError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocolSSH,
		Host:       githubHostConstant,
		Owner:      organization,
		Repository: repositoryName,
	})
	if formatError != nil {
		return formatError
	}
	return service.gitManager.CloneRepository(executionContext, cloneURL, repositoryPath)
}
