package rules_test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodguide/repokeeper/internal/records"
	"github.com/goodguide/repokeeper/internal/rules"
)

func TestEvaluatorAppliesRulesInOrder(testInstance *testing.T) {
	underscoreRule, underscoreRuleError := rules.NewRenameRule(regexp.MustCompile(`_`), `-`, true)
	require.NoError(testInstance, underscoreRuleError)

	repositories := []records.Repository{
		{Name: "Widget_Tools"},
		{Name: "reports"},
	}

	evaluationResult := rules.NewEvaluator().Evaluate(repositories, []rules.Rule{underscoreRule, rules.NewDowncaseRule()})

	require.Len(testInstance, evaluationResult.Evaluations, 2)
	require.Equal(testInstance, "widget-tools", evaluationResult.Evaluations[0].Outcome.ProposedName)
	require.Equal(testInstance, "reports", evaluationResult.Evaluations[1].Outcome.ProposedName)
	require.Empty(testInstance, evaluationResult.Warnings)
}

func TestEvaluatorReportsNamingConflicts(testInstance *testing.T) {
	testCases := []struct {
		name             string
		repositoryNames  []string
		expectedWarnings []string
	}{
		{
			name:            "two_repositories_converging_on_one_name",
			repositoryNames: []string{"widget_tools", "widget-tools"},
			expectedWarnings: []string{
				"naming conflict: 2 repositories propose the name widget-tools: widget_tools, widget-tools",
			},
		},
		{
			name:            "conflict_groups_are_sorted_by_proposed_name",
			repositoryNames: []string{"b_x", "b-x", "a_x", "a-x"},
			expectedWarnings: []string{
				"naming conflict: 2 repositories propose the name a-x: a_x, a-x",
				"naming conflict: 2 repositories propose the name b-x: b_x, b-x",
			},
		},
		{
			name:             "distinct_proposed_names_raise_nothing",
			repositoryNames:  []string{"widget", "gadget"},
			expectedWarnings: nil,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(subtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			underscoreRule, underscoreRuleError := rules.NewRenameRule(regexp.MustCompile(`_`), `-`, true)
			require.NoError(subtest, underscoreRuleError)

			repositories := make([]records.Repository, 0, len(testCase.repositoryNames))
			for _, repositoryName := range testCase.repositoryNames {
				repositories = append(repositories, records.Repository{Name: repositoryName})
			}

			evaluationResult := rules.NewEvaluator().Evaluate(repositories, []rules.Rule{underscoreRule})

			require.Equal(subtest, testCase.expectedWarnings, evaluationResult.Warnings)
		})
	}
}
