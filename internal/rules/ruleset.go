package rules

import (
	"regexp"
	"time"
)

const (
	defaultNamespaceConstant        = "goodguide"
	reallyOldThresholdYearsConstant = 2
	hoursPerYearConstant            = daysPerYearConstant * hoursPerDayConstant
	underscoreNamePatternConstant   = `_`
	underscoreReplacementConstant   = `-`
	platformNamePatternConstant     = `^platform$`
	platformReplacementConstant     = `purview-www`
	gemSuffixNamePatternConstant    = `^(?:goodguide-)?(.+?)(?:-gem)?$`
	gemSuffixReplacementConstant    = `${1}-gem`
	namespaceTargetPatternConstant  = `-gem$`
)

var (
	underscoreNamePattern  = regexp.MustCompile(underscoreNamePatternConstant)
	platformNamePattern    = regexp.MustCompile(platformNamePatternConstant)
	gemSuffixNamePattern   = regexp.MustCompile(gemSuffixNamePatternConstant)
	namespaceTargetPattern = regexp.MustCompile(namespaceTargetPatternConstant)
)

// DefaultRuleSet assembles the hand-authored policy list applied by the audit
// command. The order is deliberate: underscore normalization runs before the
// gem suffix rewrite, the gem suffix rewrite runs before namespace prefixing,
// and Downcase runs last so every earlier rule sees original casing.
func DefaultRuleSet(clock Clock) ([]Rule, error) {
	if clock == nil {
		clock = SystemClock{}
	}

	underscoreRule, underscoreRuleError := NewRenameRule(underscoreNamePattern, underscoreReplacementConstant, true)
	if underscoreRuleError != nil {
		return nil, underscoreRuleError
	}

	platformRule, platformRuleError := NewRenameRule(platformNamePattern, platformReplacementConstant, false)
	if platformRuleError != nil {
		return nil, platformRuleError
	}

	gemSuffixRule, gemSuffixRuleError := NewGemRepoRenameRule(gemSuffixNamePattern, gemSuffixReplacementConstant, false)
	if gemSuffixRuleError != nil {
		return nil, gemSuffixRuleError
	}

	namespaceRule, namespaceRuleError := NewNamespaceRule(namespaceTargetPattern, defaultNamespaceConstant)
	if namespaceRuleError != nil {
		return nil, namespaceRuleError
	}

	orderedRules := []Rule{
		NewLastUpdatedRule(clock),
		NewDescribeRule(),
		NewForkRule(),
		NewReallyOldRule(time.Duration(reallyOldThresholdYearsConstant*hoursPerYearConstant)*time.Hour, clock),
		NewLegacyRule(),
		underscoreRule,
		platformRule,
		gemSuffixRule,
		namespaceRule,
		NewDowncaseRule(),
	}

	return orderedRules, nil
}
