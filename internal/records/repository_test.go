package records_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goodguide/repokeeper/internal/records"
)

func TestRepositoryPredicates(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		repository             records.Repository
		suffix                 string
		expectedDescription    bool
		expectedLastCommit     bool
		expectedRootFileSuffix bool
	}{
		{
			name: "fully_populated_repository",
			repository: records.Repository{
				Name:        "widget",
				Description: "Widget service",
				LastCommit:  records.CommitInfo{CommittedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)},
				RootFiles:   []string{"README.md", "widget.gemspec"},
			},
			suffix:                 ".gemspec",
			expectedDescription:    true,
			expectedLastCommit:     true,
			expectedRootFileSuffix: true,
		},
		{
			name:       "blank_description_does_not_count",
			repository: records.Repository{Name: "widget", Description: "   "},
			suffix:     ".gemspec",
		},
		{
			name:       "empty_suffix_never_matches",
			repository: records.Repository{Name: "widget", RootFiles: []string{"widget.gemspec"}},
			suffix:     "",
		},
		{
			name:       "suffix_mismatch",
			repository: records.Repository{Name: "widget", RootFiles: []string{"Makefile", "go.mod"}},
			suffix:     ".gemspec",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedDescription, testCase.repository.HasDescription())
			require.Equal(subtest, testCase.expectedLastCommit, testCase.repository.HasLastCommit())
			require.Equal(subtest, testCase.expectedRootFileSuffix, testCase.repository.HasRootFileSuffix(testCase.suffix))
		})
	}
}
