package snapshot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/githubcli"
	"github.com/goodguide/repokeeper/internal/records"
)

const (
	metadataClientMissingMessageConstant  = "fetch service metadata client not configured"
	snapshotWriterMissingMessageConstant  = "fetch service snapshot writer not configured"
	listingErrorTemplateConstant          = "unable to list repositories for %s: %w"
	snapshotSaveErrorTemplateConstant     = "unable to save snapshot: %w"
	parentLookupFailedMessageConstant     = "fork parent lookup failed"
	lastCommitLookupFailedMessageConstant = "last commit lookup failed"
	rootFilesLookupFailedMessageConstant  = "root file listing failed"
	repositoryFetchedMessageConstant      = "repository metadata fetched"
	fetchCompletedMessageConstant         = "snapshot fetch completed"
	logFieldRepositoryConstant            = "repository"
	logFieldOrganizationConstant          = "organization"
	logFieldRepositoryCountConstant       = "repository_count"
	logFieldSnapshotPathConstant          = "snapshot_path"
	logFieldErrorConstant                 = "error"
)

// Dependency sentinels reported by NewService.
var (
	ErrMetadataClientNotConfigured = errors.New(metadataClientMissingMessageConstant)
	ErrSnapshotWriterNotConfigured = errors.New(snapshotWriterMissingMessageConstant)
)

// CommandOptions captures the configurable parameters for one fetch run.
type CommandOptions struct {
	Organization string
	SnapshotPath string
}

// ServiceDependencies supplies collaborators required by the fetch service.
type ServiceDependencies struct {
	Logger         *zap.Logger
	MetadataClient RepositoryMetadataClient
	SnapshotWriter SnapshotWriter
}

// Service orchestrates one fetch run: listing, enrichment, snapshot write.
type Service struct {
	logger         *zap.Logger
	metadataClient RepositoryMetadataClient
	snapshotWriter SnapshotWriter
}

// NewService validates dependencies and constructs the fetch service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.MetadataClient == nil {
		return nil, ErrMetadataClientNotConfigured
	}
	if dependencies.SnapshotWriter == nil {
		return nil, ErrSnapshotWriterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger:         logger,
		metadataClient: dependencies.MetadataClient,
		snapshotWriter: dependencies.SnapshotWriter,
	}, nil
}

// Run lists every repository of the organization, enriches each entry, and
// saves the snapshot cache. Enrichment failures for individual repositories
// (empty repositories have no commits, for example) are logged and tolerated;
// the listing itself failing is fatal.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	listings, listingError := service.metadataClient.ListOrganizationRepositories(executionContext, options.Organization)
	if listingError != nil {
		return fmt.Errorf(listingErrorTemplateConstant, options.Organization, listingError)
	}

	repositories := make([]records.Repository, 0, len(listings))
	for _, listing := range listings {
		repositories = append(repositories, service.buildRepositoryRecord(executionContext, options.Organization, listing))
	}

	if saveError := service.snapshotWriter.Save(options.SnapshotPath, repositories); saveError != nil {
		return fmt.Errorf(snapshotSaveErrorTemplateConstant, saveError)
	}

	service.logger.Info(
		fetchCompletedMessageConstant,
		zap.String(logFieldOrganizationConstant, options.Organization),
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
		zap.String(logFieldSnapshotPathConstant, options.SnapshotPath),
	)

	return nil
}

func (service *Service) buildRepositoryRecord(executionContext context.Context, organization string, listing githubcli.RepositoryListing) records.Repository {
	repository := records.Repository{
		Name:        listing.Name,
		Description: listing.Description,
		Private:     listing.Private,
		Fork:        listing.Fork,
	}

	if listing.Fork {
		parentFullName, parentError := service.metadataClient.GetRepositoryParent(executionContext, organization, listing.Name)
		if parentError != nil {
			service.logger.Warn(
				parentLookupFailedMessageConstant,
				zap.String(logFieldRepositoryConstant, listing.Name),
				zap.String(logFieldErrorConstant, parentError.Error()),
			)
		} else {
			repository.ParentFullName = parentFullName
		}
	}

	commitDetails, commitError := service.metadataClient.GetLastCommit(executionContext, organization, listing.Name)
	if commitError != nil {
		service.logger.Warn(
			lastCommitLookupFailedMessageConstant,
			zap.String(logFieldRepositoryConstant, listing.Name),
			zap.String(logFieldErrorConstant, commitError.Error()),
		)
	} else {
		repository.LastCommit = records.CommitInfo{
			AuthorName:  commitDetails.AuthorName,
			CommittedAt: commitDetails.CommittedAt,
			URL:         commitDetails.URL,
		}
	}

	rootFiles, rootFilesError := service.metadataClient.ListRootFiles(executionContext, organization, listing.Name)
	if rootFilesError != nil {
		service.logger.Warn(
			rootFilesLookupFailedMessageConstant,
			zap.String(logFieldRepositoryConstant, listing.Name),
			zap.String(logFieldErrorConstant, rootFilesError.Error()),
		)
	} else {
		repository.RootFiles = rootFiles
	}

	service.logger.Debug(repositoryFetchedMessageConstant, zap.String(logFieldRepositoryConstant, listing.Name))

	return repository
}
