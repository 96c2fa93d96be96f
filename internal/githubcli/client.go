package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goodguide/repokeeper/internal/execshell"
)

const (
	apiSubcommandConstant                   = "api"
	paginateFlagConstant                    = "--paginate"
	acceptHeaderFlagConstant                = "-H"
	acceptHeaderValueConstant               = "Accept: application/vnd.github+json"
	organizationReposEndpointTemplate       = "orgs/%s/repos"
	repositoryEndpointTemplate              = "repos/%s/%s"
	lastCommitEndpointTemplate              = "repos/%s/%s/commits?per_page=1"
	rootContentsEndpointTemplate            = "repos/%s/%s/contents"
	organizationFieldNameConstant           = "organization"
	repositoryFieldNameConstant             = "repository"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	operationErrorTemplateConstant          = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"

	listRepositoriesOperationName = OperationName("ListOrganizationRepositories")
	repositoryParentOperationName = OperationName("GetRepositoryParent")
	lastCommitOperationName       = OperationName("GetLastCommit")
	rootFilesOperationName        = OperationName("ListRootFiles")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryListing is one entry of an organization repository listing.
type RepositoryListing struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	Fork        bool   `json:"fork"`
}

// CommitDetails captures the newest commit of a repository's default branch.
type CommitDetails struct {
	AuthorName  string
	CommittedAt time.Time
	URL         string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ListOrganizationRepositories pages through every repository of the
// organization. Pagination runs to completion here so downstream consumers
// only ever see a fully materialized listing.
func (client *Client) ListOrganizationRepositories(executionContext context.Context, organization string) ([]RepositoryListing, error) {
	trimmedOrganization := strings.TrimSpace(organization)
	if len(trimmedOrganization) == 0 {
		return nil, InvalidInputError{FieldName: organizationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			paginateFlagConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
			fmt.Sprintf(organizationReposEndpointTemplate, trimmedOrganization),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: listRepositoriesOperationName, Cause: executionError}
	}

	listings, decodeError := decodePaginatedListings(executionResult.StandardOutput)
	if decodeError != nil {
		return nil, ResponseDecodingError{Operation: listRepositoriesOperationName, Cause: decodeError}
	}
	return listings, nil
}

// decodePaginatedListings reads the concatenated JSON arrays gh api emits
// when --paginate crosses page boundaries.
func decodePaginatedListings(standardOutput string) ([]RepositoryListing, error) {
	decoder := json.NewDecoder(strings.NewReader(standardOutput))
	var listings []RepositoryListing
	for {
		var page []RepositoryListing
		decodeError := decoder.Decode(&page)
		if errors.Is(decodeError, io.EOF) {
			break
		}
		if decodeError != nil {
			return nil, decodeError
		}
		listings = append(listings, page...)
	}
	return listings, nil
}

// GetRepositoryParent resolves the public full name of a fork's parent
// repository, or an empty string when the repository is not a fork.
func (client *Client) GetRepositoryParent(executionContext context.Context, organization string, repositoryName string) (string, error) {
	executionResult, operationError := client.fetchRepositoryEndpoint(executionContext, repositoryParentOperationName, organization, repositoryName, repositoryEndpointTemplate)
	if operationError != nil {
		return "", operationError
	}

	var repositoryPayload struct {
		Parent *struct {
			FullName string `json:"full_name"`
		} `json:"parent"`
	}
	if decodeError := json.Unmarshal([]byte(executionResult.StandardOutput), &repositoryPayload); decodeError != nil {
		return "", ResponseDecodingError{Operation: repositoryParentOperationName, Cause: decodeError}
	}

	if repositoryPayload.Parent == nil {
		return "", nil
	}
	return repositoryPayload.Parent.FullName, nil
}

// GetLastCommit fetches the newest commit on the repository's default branch.
func (client *Client) GetLastCommit(executionContext context.Context, organization string, repositoryName string) (CommitDetails, error) {
	executionResult, operationError := client.fetchRepositoryEndpoint(executionContext, lastCommitOperationName, organization, repositoryName, lastCommitEndpointTemplate)
	if operationError != nil {
		return CommitDetails{}, operationError
	}

	var commitPayload []struct {
		HTMLURL string `json:"html_url"`
		Commit  struct {
			Author struct {
				Name string    `json:"name"`
				Date time.Time `json:"date"`
			} `json:"author"`
		} `json:"commit"`
	}
	if decodeError := json.Unmarshal([]byte(executionResult.StandardOutput), &commitPayload); decodeError != nil {
		return CommitDetails{}, ResponseDecodingError{Operation: lastCommitOperationName, Cause: decodeError}
	}

	if len(commitPayload) == 0 {
		return CommitDetails{}, nil
	}
	return CommitDetails{
		AuthorName:  commitPayload[0].Commit.Author.Name,
		CommittedAt: commitPayload[0].Commit.Author.Date,
		URL:         commitPayload[0].HTMLURL,
	}, nil
}

// ListRootFiles lists filenames present at the root of the default branch.
func (client *Client) ListRootFiles(executionContext context.Context, organization string, repositoryName string) ([]string, error) {
	executionResult, operationError := client.fetchRepositoryEndpoint(executionContext, rootFilesOperationName, organization, repositoryName, rootContentsEndpointTemplate)
	if operationError != nil {
		return nil, operationError
	}

	var contentEntries []struct {
		Name string `json:"name"`
	}
	if decodeError := json.Unmarshal([]byte(executionResult.StandardOutput), &contentEntries); decodeError != nil {
		return nil, ResponseDecodingError{Operation: rootFilesOperationName, Cause: decodeError}
	}

	rootFileNames := make([]string, 0, len(contentEntries))
	for _, contentEntry := range contentEntries {
		rootFileNames = append(rootFileNames, contentEntry.Name)
	}
	return rootFileNames, nil
}

func (client *Client) fetchRepositoryEndpoint(executionContext context.Context, operation OperationName, organization string, repositoryName string, endpointTemplate string) (execshell.ExecutionResult, error) {
	trimmedOrganization := strings.TrimSpace(organization)
	if len(trimmedOrganization) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: organizationFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedRepositoryName := strings.TrimSpace(repositoryName)
	if len(trimmedRepositoryName) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
			fmt.Sprintf(endpointTemplate, trimmedOrganization, trimmedRepositoryName),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return execshell.ExecutionResult{}, OperationError{Operation: operation, Cause: executionError}
	}
	return executionResult, nil
}
