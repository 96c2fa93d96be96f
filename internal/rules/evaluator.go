package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goodguide/repokeeper/internal/records"
)

const (
	namingConflictWarningTemplateConstant = "naming conflict: %d repositories propose the name %s: %s"
	conflictingNamesJoinSeparatorConstant = ", "
)

// Evaluation pairs one repository with the outcome its rule pass produced.
type Evaluation struct {
	Repository records.Repository
	Outcome    Outcome
}

// EvaluationResult carries every evaluation plus the findings of the
// validation pass that follows the rule sweep.
type EvaluationResult struct {
	Evaluations []Evaluation
	Warnings    []string
}

// Evaluator applies an ordered rule list to repository snapshots.
type Evaluator struct{}

// NewEvaluator constructs an Evaluator.
func NewEvaluator() Evaluator {
	return Evaluator{}
}

// Evaluate visits every repository with every rule in order, then validates
// the final proposed names. Each repository is evaluated exactly once against
// its original snapshot; re-running over already mutated outcomes is not
// supported because the rules assume original naming conventions.
func (evaluator Evaluator) Evaluate(repositories []records.Repository, orderedRules []Rule) EvaluationResult {
	evaluations := make([]Evaluation, 0, len(repositories))
	for _, repository := range repositories {
		outcome := NewOutcome(repository)
		for _, policyRule := range orderedRules {
			policyRule.Visit(repository, &outcome)
		}
		evaluations = append(evaluations, Evaluation{Repository: repository, Outcome: outcome})
	}

	return EvaluationResult{
		Evaluations: evaluations,
		Warnings:    validateProposedNames(evaluations),
	}
}

// validateProposedNames groups evaluations by final proposed name and reports
// every group claimed by more than one repository.
func validateProposedNames(evaluations []Evaluation) []string {
	originalNamesByProposedName := make(map[string][]string)
	for _, evaluation := range evaluations {
		proposedName := evaluation.Outcome.ProposedName
		originalNamesByProposedName[proposedName] = append(originalNamesByProposedName[proposedName], evaluation.Repository.Name)
	}

	conflictingProposedNames := make([]string, 0, len(originalNamesByProposedName))
	for proposedName, originalNames := range originalNamesByProposedName {
		if len(originalNames) > 1 {
			conflictingProposedNames = append(conflictingProposedNames, proposedName)
		}
	}
	sort.Strings(conflictingProposedNames)

	var warnings []string
	for _, proposedName := range conflictingProposedNames {
		originalNames := originalNamesByProposedName[proposedName]
		warnings = append(warnings, fmt.Sprintf(
			namingConflictWarningTemplateConstant,
			len(originalNames),
			proposedName,
			strings.Join(originalNames, conflictingNamesJoinSeparatorConstant),
		))
	}
	return warnings
}
