package rules

import "strings"

// TagKind identifies a symbolic recommendation vocabulary entry.
type TagKind string

// Recommendation vocabulary shared with the report writers.
const (
	TagKindKeep                      TagKind = "keep"
	TagKindMoreEvaluationRequired    TagKind = "more_evaluation_required"
	TagKindSafeToArchive             TagKind = "safe_to_archive"
	TagKindArchive                   TagKind = "archive"
	TagKindDelete                    TagKind = "delete"
	TagKindEvaluateForkForDeletion   TagKind = "evaluate_fork_for_deletion"
	TagKindCustom                    TagKind = "custom"
	unrecognizedTagKindLabelConstant         = "unrecognized"
)

// Tag labels a suggested disposition for a repository. Symbolic tags carry a
// kind only; free-text recommendations use TagKindCustom plus verbatim text.
type Tag struct {
	Kind TagKind
	Text string
}

// Symbolic tags attachable by rules.
var (
	TagKeep                    = Tag{Kind: TagKindKeep}
	TagMoreEvaluationRequired  = Tag{Kind: TagKindMoreEvaluationRequired}
	TagSafeToArchive           = Tag{Kind: TagKindSafeToArchive}
	TagArchive                 = Tag{Kind: TagKindArchive}
	TagDelete                  = Tag{Kind: TagKindDelete}
	TagEvaluateForkForDeletion = Tag{Kind: TagKindEvaluateForkForDeletion}
)

// CustomTag wraps free-form recommendation text in a Tag.
func CustomTag(recommendationText string) Tag {
	return Tag{Kind: TagKindCustom, Text: recommendationText}
}

// String renders the tag for logs and error messages.
func (tag Tag) String() string {
	if tag.Kind == TagKindCustom {
		return tag.Text
	}
	if len(strings.TrimSpace(string(tag.Kind))) == 0 {
		return unrecognizedTagKindLabelConstant
	}
	return string(tag.Kind)
}
