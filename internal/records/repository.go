package records

import (
	"strings"
	"time"
)

// CommitInfo captures the identity and timing of a repository's newest commit.
type CommitInfo struct {
	AuthorName  string    `json:"author_name"`
	CommittedAt time.Time `json:"committed_at"`
	URL         string    `json:"url"`
}

// Repository is a read-only snapshot of one remote repository. Instances are
// constructed once from the snapshot cache and never mutated afterwards;
// derived state such as proposed names lives in the rule engine's accumulator.
type Repository struct {
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Private        bool       `json:"private"`
	Fork           bool       `json:"fork"`
	ParentFullName string     `json:"parent_full_name,omitempty"`
	LastCommit     CommitInfo `json:"last_commit"`
	RootFiles      []string   `json:"root_files,omitempty"`
}

// HasDescription reports whether the repository carries a non-blank description.
func (repository Repository) HasDescription() bool {
	return len(strings.TrimSpace(repository.Description)) > 0
}

// HasLastCommit reports whether last-commit information was captured for the repository.
func (repository Repository) HasLastCommit() bool {
	return !repository.LastCommit.CommittedAt.IsZero()
}

// HasRootFileSuffix reports whether any root file of the default branch carries the provided suffix.
func (repository Repository) HasRootFileSuffix(suffix string) bool {
	if len(suffix) == 0 {
		return false
	}
	for _, rootFileName := range repository.RootFiles {
		if strings.HasSuffix(rootFileName, suffix) {
			return true
		}
	}
	return false
}
