package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goodguide/repokeeper/internal/records"
)

const (
	lastUpdatedObservationTemplateConstant = "last updated %s ago by %s"
	forkObservationTemplateConstant        = "fork of %s"
	forkUnknownParentLabelConstant         = "an unknown parent"
	legacyNamePrefixConstant               = "legacy-"
	legacyDescriptionMarkerConstant        = "legacy"
	legacyInUseMarkerConstant              = "in use"
	namespaceSeparatorConstant             = "-"
	gemManifestSuffixConstant              = ".gemspec"
)

var (
	// ErrPatternMatchRuleNeedsPattern indicates a pattern-match rule configured without any pattern.
	ErrPatternMatchRuleNeedsPattern = errors.New("pattern match rule requires a name or description pattern")
	// ErrPatternMatchRuleNeedsEffect indicates a pattern-match rule configured without any effect.
	ErrPatternMatchRuleNeedsEffect = errors.New("pattern match rule requires an observation or recommendation")
	// ErrRenameRuleNeedsPattern indicates a rename rule configured without a pattern.
	ErrRenameRuleNeedsPattern = errors.New("rename rule requires a pattern")
	// ErrNamespaceRuleNeedsPattern indicates a namespace rule configured without a pattern.
	ErrNamespaceRuleNeedsPattern = errors.New("namespace rule requires a pattern")
	// ErrNamespaceRuleNeedsNamespace indicates a namespace rule configured without a namespace.
	ErrNamespaceRuleNeedsNamespace = errors.New("namespace rule requires a namespace")
)

// LastUpdatedRule records when and by whom the repository last changed.
type LastUpdatedRule struct {
	clock Clock
}

// NewLastUpdatedRule constructs a LastUpdatedRule using the provided clock.
func NewLastUpdatedRule(clock Clock) *LastUpdatedRule {
	if clock == nil {
		clock = SystemClock{}
	}
	return &LastUpdatedRule{clock: clock}
}

// Matches reports whether last-commit information is available.
func (rule *LastUpdatedRule) Matches(repository records.Repository, outcome Outcome) bool {
	return repository.HasLastCommit()
}

// Visit appends the last-updated observation.
func (rule *LastUpdatedRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	commitAge := rule.clock.Now().Sub(repository.LastCommit.CommittedAt)
	outcome.AddObservation(fmt.Sprintf(lastUpdatedObservationTemplateConstant, humanizeAge(commitAge), repository.LastCommit.AuthorName))
	return true
}

// DescribeRule surfaces the repository description as an observation.
type DescribeRule struct{}

// NewDescribeRule constructs a DescribeRule.
func NewDescribeRule() *DescribeRule {
	return &DescribeRule{}
}

// Matches reports whether a description is present.
func (rule *DescribeRule) Matches(repository records.Repository, outcome Outcome) bool {
	return repository.HasDescription()
}

// Visit appends the description text.
func (rule *DescribeRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	outcome.AddObservation(strings.TrimSpace(repository.Description))
	return true
}

// ReallyOldRule recommends archiving repositories whose last push is older than the configured age.
type ReallyOldRule struct {
	maximumAge time.Duration
	clock      Clock
}

// NewReallyOldRule constructs a ReallyOldRule with the provided age threshold.
func NewReallyOldRule(maximumAge time.Duration, clock Clock) *ReallyOldRule {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ReallyOldRule{maximumAge: maximumAge, clock: clock}
}

// Matches reports whether the last commit predates the threshold.
func (rule *ReallyOldRule) Matches(repository records.Repository, outcome Outcome) bool {
	if !repository.HasLastCommit() {
		return false
	}
	return repository.LastCommit.CommittedAt.Before(rule.clock.Now().Add(-rule.maximumAge))
}

// Visit recommends archiving.
func (rule *ReallyOldRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	outcome.AddRecommendation(TagArchive)
	return true
}

// LegacyRule recommends archiving repositories flagged as legacy by name or description.
type LegacyRule struct{}

// NewLegacyRule constructs a LegacyRule.
func NewLegacyRule() *LegacyRule {
	return &LegacyRule{}
}

// Matches reports whether the proposed name carries the legacy prefix or the
// description mentions legacy without claiming the repository is in use.
func (rule *LegacyRule) Matches(repository records.Repository, outcome Outcome) bool {
	if strings.HasPrefix(outcome.ProposedName, legacyNamePrefixConstant) {
		return true
	}
	loweredDescription := strings.ToLower(repository.Description)
	return strings.Contains(loweredDescription, legacyDescriptionMarkerConstant) && !strings.Contains(loweredDescription, legacyInUseMarkerConstant)
}

// Visit recommends archiving.
func (rule *LegacyRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	outcome.AddRecommendation(TagArchive)
	return true
}

// ForkRule flags forked repositories for deletion review.
type ForkRule struct{}

// NewForkRule constructs a ForkRule.
func NewForkRule() *ForkRule {
	return &ForkRule{}
}

// Matches reports whether the repository is a fork.
func (rule *ForkRule) Matches(repository records.Repository, outcome Outcome) bool {
	return repository.Fork
}

// Visit names the parent and recommends fork evaluation.
func (rule *ForkRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	parentLabel := strings.TrimSpace(repository.ParentFullName)
	if len(parentLabel) == 0 {
		parentLabel = forkUnknownParentLabelConstant
	}
	outcome.AddObservation(fmt.Sprintf(forkObservationTemplateConstant, parentLabel))
	outcome.AddRecommendation(TagEvaluateForkForDeletion)
	return true
}

// PatternMatchOptions configures a PatternMatchRule.
type PatternMatchOptions struct {
	NamePattern        *regexp.Regexp
	DescriptionPattern *regexp.Regexp
	Observation        string
	Recommendation     *Tag
}

// PatternMatchRule attaches a configured observation or recommendation when
// the repository name or description matches the configured patterns.
type PatternMatchRule struct {
	options PatternMatchOptions
}

// NewPatternMatchRule validates the options and constructs a PatternMatchRule.
func NewPatternMatchRule(options PatternMatchOptions) (*PatternMatchRule, error) {
	if options.NamePattern == nil && options.DescriptionPattern == nil {
		return nil, ErrPatternMatchRuleNeedsPattern
	}
	if len(strings.TrimSpace(options.Observation)) == 0 && options.Recommendation == nil {
		return nil, ErrPatternMatchRuleNeedsEffect
	}
	return &PatternMatchRule{options: options}, nil
}

// Matches reports whether the name or description matches the configured patterns.
func (rule *PatternMatchRule) Matches(repository records.Repository, outcome Outcome) bool {
	if rule.options.NamePattern != nil && rule.options.NamePattern.MatchString(repository.Name) {
		return true
	}
	if rule.options.DescriptionPattern != nil && repository.HasDescription() && rule.options.DescriptionPattern.MatchString(repository.Description) {
		return true
	}
	return false
}

// Visit attaches the configured observation and recommendation.
func (rule *PatternMatchRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	if len(strings.TrimSpace(rule.options.Observation)) > 0 {
		outcome.AddObservation(rule.options.Observation)
	}
	if rule.options.Recommendation != nil {
		outcome.AddRecommendation(*rule.options.Recommendation)
	}
	return true
}

// NamespaceRule prefixes matching proposed names with a category namespace.
type NamespaceRule struct {
	namePattern *regexp.Regexp
	namespace   string
}

// NewNamespaceRule validates inputs and constructs a NamespaceRule.
func NewNamespaceRule(namePattern *regexp.Regexp, namespace string) (*NamespaceRule, error) {
	if namePattern == nil {
		return nil, ErrNamespaceRuleNeedsPattern
	}
	trimmedNamespace := strings.TrimSpace(namespace)
	if len(trimmedNamespace) == 0 {
		return nil, ErrNamespaceRuleNeedsNamespace
	}
	return &NamespaceRule{namePattern: namePattern, namespace: trimmedNamespace}, nil
}

// Matches reports whether the current proposed name matches the pattern.
func (rule *NamespaceRule) Matches(repository records.Repository, outcome Outcome) bool {
	return rule.namePattern.MatchString(outcome.ProposedName)
}

// Visit prefixes the proposed name with the namespace.
func (rule *NamespaceRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	outcome.ProposedName = rule.namespace + namespaceSeparatorConstant + outcome.ProposedName
	return true
}

// RenameRule rewrites the proposed name by regular-expression substitution.
// Capture groups are available to the replacement template as ${1}, ${2}, and
// so on. Only the first match is replaced unless the rule is global.
type RenameRule struct {
	namePattern *regexp.Regexp
	replacement string
	global      bool
}

// NewRenameRule validates inputs and constructs a RenameRule.
func NewRenameRule(namePattern *regexp.Regexp, replacement string, global bool) (*RenameRule, error) {
	if namePattern == nil {
		return nil, ErrRenameRuleNeedsPattern
	}
	return &RenameRule{namePattern: namePattern, replacement: replacement, global: global}, nil
}

// Matches reports whether the current proposed name matches the pattern.
func (rule *RenameRule) Matches(repository records.Repository, outcome Outcome) bool {
	return rule.namePattern.MatchString(outcome.ProposedName)
}

// Visit applies the substitution to the proposed name.
func (rule *RenameRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	outcome.ProposedName = rule.substitute(outcome.ProposedName)
	return true
}

func (rule *RenameRule) substitute(proposedName string) string {
	if rule.global {
		return rule.namePattern.ReplaceAllString(proposedName, rule.replacement)
	}

	matchIndexes := rule.namePattern.FindStringSubmatchIndex(proposedName)
	if matchIndexes == nil {
		return proposedName
	}
	expandedReplacement := rule.namePattern.ExpandString(nil, rule.replacement, proposedName, matchIndexes)
	return proposedName[:matchIndexes[0]] + string(expandedReplacement) + proposedName[matchIndexes[1]:]
}

// GemRepoRenameRule applies a rename substitution only to repositories whose
// root files include a gem packaging manifest.
type GemRepoRenameRule struct {
	renameRule *RenameRule
}

// NewGemRepoRenameRule validates inputs and constructs a GemRepoRenameRule.
func NewGemRepoRenameRule(namePattern *regexp.Regexp, replacement string, global bool) (*GemRepoRenameRule, error) {
	renameRule, renameRuleError := NewRenameRule(namePattern, replacement, global)
	if renameRuleError != nil {
		return nil, renameRuleError
	}
	return &GemRepoRenameRule{renameRule: renameRule}, nil
}

// Matches reports whether the repository packages a gem and the pattern matches.
func (rule *GemRepoRenameRule) Matches(repository records.Repository, outcome Outcome) bool {
	if !repository.HasRootFileSuffix(gemManifestSuffixConstant) {
		return false
	}
	return rule.renameRule.Matches(repository, outcome)
}

// Visit applies the substitution to the proposed name.
func (rule *GemRepoRenameRule) Visit(repository records.Repository, outcome *Outcome) bool {
	if !rule.Matches(repository, *outcome) {
		return false
	}
	return rule.renameRule.Visit(repository, outcome)
}

// DowncaseRule lower-cases the proposed name.
type DowncaseRule struct{}

// NewDowncaseRule constructs a DowncaseRule.
func NewDowncaseRule() *DowncaseRule {
	return &DowncaseRule{}
}

// Matches always reports true.
func (rule *DowncaseRule) Matches(repository records.Repository, outcome Outcome) bool {
	return true
}

// Visit lower-cases the proposed name.
func (rule *DowncaseRule) Visit(repository records.Repository, outcome *Outcome) bool {
	outcome.ProposedName = strings.ToLower(outcome.ProposedName)
	return true
}
