package snapshot

import (
	"context"

	"github.com/goodguide/repokeeper/internal/githubcli"
	"github.com/goodguide/repokeeper/internal/records"
)

// RepositoryMetadataClient resolves organization repository metadata via the GitHub CLI.
type RepositoryMetadataClient interface {
	ListOrganizationRepositories(executionContext context.Context, organization string) ([]githubcli.RepositoryListing, error)
	GetRepositoryParent(executionContext context.Context, organization string, repositoryName string) (string, error)
	GetLastCommit(executionContext context.Context, organization string, repositoryName string) (githubcli.CommitDetails, error)
	ListRootFiles(executionContext context.Context, organization string, repositoryName string) ([]string, error)
}

// SnapshotWriter persists repository snapshots to disk.
type SnapshotWriter interface {
	Save(snapshotPath string, repositories []records.Repository) error
}
