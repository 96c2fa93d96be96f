package renameplan

import (
	"fmt"
	"strings"

	"github.com/goodguide/repokeeper/internal/rules"
)

const (
	unsupportedChainErrorTemplateConstant = "rename chain longer than two is not supported: %s"
	chainMemberJoinSeparatorConstant      = " -> "
)

// UnsupportedChainError reports a proposed-rename chain of length three or
// more, which the two-step resolution cannot express safely.
type UnsupportedChainError struct {
	ChainMembers []string
}

// Error describes the unsupported chain.
func (chainError UnsupportedChainError) Error() string {
	return fmt.Sprintf(unsupportedChainErrorTemplateConstant, strings.Join(chainError.ChainMembers, chainMemberJoinSeparatorConstant))
}

// Resolver computes collision-safe rename plans from evaluation results.
type Resolver struct{}

// NewResolver constructs a Resolver.
func NewResolver() Resolver {
	return Resolver{}
}

// Resolve builds the rename plan for the provided evaluations. When record A
// proposes name y while record B is itself renamed away from y, the hosting
// platform's single-hop redirect makes the direct order unsafe, so both
// records are replaced by the explicit pair (x -> y) then (y -> x): B borrows
// A's vacated original name as its intermediate target.
func (resolver Resolver) Resolve(organization string, evaluations []rules.Evaluation) (Plan, error) {
	orderedRenames, proposedNamesByOriginal := collectProposedRenames(evaluations)

	plan := Plan{Organization: organization}
	emittedTargets := make(map[string]struct{})
	replacedOriginals := make(map[string]struct{})

	appendStep := func(step RenameStep) {
		for _, existingStep := range plan.Renames {
			if existingStep == step {
				return
			}
		}
		plan.Renames = append(plan.Renames, step)
		emittedTargets[step.To] = struct{}{}
	}

	for _, candidateStep := range orderedRenames {
		conflictingTarget, conflictDetected := proposedNamesByOriginal[candidateStep.To]
		if !conflictDetected {
			continue
		}

		if conflictingTarget != candidateStep.From {
			if _, chainContinues := proposedNamesByOriginal[conflictingTarget]; chainContinues {
				return Plan{}, UnsupportedChainError{ChainMembers: []string{candidateStep.From, candidateStep.To, conflictingTarget, proposedNamesByOriginal[conflictingTarget]}}
			}
		}

		if _, alreadyReplaced := replacedOriginals[candidateStep.From]; alreadyReplaced {
			continue
		}

		appendStep(RenameStep{From: candidateStep.From, To: candidateStep.To})
		appendStep(RenameStep{From: candidateStep.To, To: candidateStep.From})
		replacedOriginals[candidateStep.From] = struct{}{}
		replacedOriginals[candidateStep.To] = struct{}{}
	}

	for _, candidateStep := range orderedRenames {
		if _, alreadyReplaced := replacedOriginals[candidateStep.From]; alreadyReplaced {
			continue
		}
		if _, targetAlreadyMapped := emittedTargets[candidateStep.To]; targetAlreadyMapped {
			continue
		}
		appendStep(candidateStep)
	}

	return plan, nil
}

// collectProposedRenames restricts the evaluations to records whose proposed
// name differs from the original, preserving evaluation order.
func collectProposedRenames(evaluations []rules.Evaluation) ([]RenameStep, map[string]string) {
	orderedRenames := make([]RenameStep, 0, len(evaluations))
	proposedNamesByOriginal := make(map[string]string, len(evaluations))

	for _, evaluation := range evaluations {
		if !evaluation.Outcome.Renamed(evaluation.Repository) {
			continue
		}
		orderedRenames = append(orderedRenames, RenameStep{
			From: evaluation.Repository.Name,
			To:   evaluation.Outcome.ProposedName,
		})
		proposedNamesByOriginal[evaluation.Repository.Name] = evaluation.Outcome.ProposedName
	}

	return orderedRenames, proposedNamesByOriginal
}
