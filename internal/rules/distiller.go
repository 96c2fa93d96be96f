package rules

import (
	"fmt"
	"sort"
)

const (
	renameNoticeDisplayTextConstant         = "Rename as indicated"
	investigateFurtherDisplayTextConstant   = "Investigate further"
	archiveDisplayTextConstant              = "Archive"
	deleteOrArchiveDisplayTextConstant      = "Delete or Archive"
	forkInvestigationDisplayTextConstant    = "Fork; Investigate further and delete if not in use"
	unhandledTagErrorTemplateConstant       = "unhandled recommendation tag %q"
	keepPriorityRankConstant                = 0
	moreEvaluationPriorityRankConstant      = 1
	safeToArchivePriorityRankConstant       = 2
	neutralPriorityRankConstant             = 3
	forkEvaluationPriorityRankConstant      = 4
	terminalDispositionPriorityRankConstant = 5
)

// tagPriorityRank orders tags for distillation; lower ranks win display.
// The keep tag outranks everything so its presence always suppresses the
// distilled line. Free-text and unrecognized tags sit at the neutral rank,
// and the unrecognized ones are rejected during translation instead.
func tagPriorityRank(recommendationTag Tag) int {
	switch recommendationTag.Kind {
	case TagKindKeep:
		return keepPriorityRankConstant
	case TagKindMoreEvaluationRequired:
		return moreEvaluationPriorityRankConstant
	case TagKindSafeToArchive:
		return safeToArchivePriorityRankConstant
	case TagKindEvaluateForkForDeletion:
		return forkEvaluationPriorityRankConstant
	case TagKindDelete, TagKindArchive:
		return terminalDispositionPriorityRankConstant
	default:
		return neutralPriorityRankConstant
	}
}

// Distiller reduces a repository's accumulated recommendation tags to the
// single most relevant display line.
type Distiller struct{}

// NewDistiller constructs a Distiller.
func NewDistiller() Distiller {
	return Distiller{}
}

// Distill returns the recommendation lines to display for one evaluation: the
// rename notice when a rename is proposed, then at most one distilled tag
// line. An unrecognized symbolic tag is a configuration error and aborts.
func (distiller Distiller) Distill(evaluation Evaluation) ([]string, error) {
	var displayLines []string
	if evaluation.Outcome.Renamed(evaluation.Repository) {
		displayLines = append(displayLines, renameNoticeDisplayTextConstant)
	}

	winningTag, tagAvailable := distiller.selectWinningTag(evaluation.Outcome.Recommendations)
	if !tagAvailable {
		return displayLines, nil
	}

	displayText, translationError := translateTag(winningTag)
	if translationError != nil {
		return nil, translationError
	}
	if len(displayText) > 0 {
		displayLines = append(displayLines, displayText)
	}

	return displayLines, nil
}

// selectWinningTag deduplicates the accumulated tags, stably sorts them by
// priority rank, and keeps the first.
func (distiller Distiller) selectWinningTag(recommendationTags []Tag) (Tag, bool) {
	deduplicatedTags := deduplicateTags(recommendationTags)
	if len(deduplicatedTags) == 0 {
		return Tag{}, false
	}

	sort.SliceStable(deduplicatedTags, func(firstIndex int, secondIndex int) bool {
		return tagPriorityRank(deduplicatedTags[firstIndex]) < tagPriorityRank(deduplicatedTags[secondIndex])
	})

	return deduplicatedTags[0], true
}

func deduplicateTags(recommendationTags []Tag) []Tag {
	seenTags := make(map[Tag]struct{}, len(recommendationTags))
	deduplicated := make([]Tag, 0, len(recommendationTags))
	for _, recommendationTag := range recommendationTags {
		if _, alreadySeen := seenTags[recommendationTag]; alreadySeen {
			continue
		}
		seenTags[recommendationTag] = struct{}{}
		deduplicated = append(deduplicated, recommendationTag)
	}
	return deduplicated
}

// translateTag maps a tag to its display text. The keep tag is suppressed
// entirely and translates to an empty line.
func translateTag(recommendationTag Tag) (string, error) {
	switch recommendationTag.Kind {
	case TagKindKeep:
		return "", nil
	case TagKindMoreEvaluationRequired:
		return investigateFurtherDisplayTextConstant, nil
	case TagKindSafeToArchive, TagKindArchive:
		return archiveDisplayTextConstant, nil
	case TagKindDelete:
		return deleteOrArchiveDisplayTextConstant, nil
	case TagKindEvaluateForkForDeletion:
		return forkInvestigationDisplayTextConstant, nil
	case TagKindCustom:
		return recommendationTag.Text, nil
	default:
		return "", fmt.Errorf(unhandledTagErrorTemplateConstant, recommendationTag.String())
	}
}
