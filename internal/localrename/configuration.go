package localrename

import "strings"

const (
	configurationKeySeparatorConstant = "."
	configurationPlanPathKey          = "plan_path"
	configurationRootDirectoryKey     = "root"
	configurationDryRunKey            = "dry_run"
	configurationAssumeYesKey         = "assume_yes"
	configurationRequireCleanKey      = "require_clean"
	defaultRootDirectoryConstant      = "."
	defaultRequireCleanConstant       = true
)

// CommandConfiguration captures persistent settings for the rename command.
type CommandConfiguration struct {
	PlanPath             string `mapstructure:"plan_path"`
	RootDirectory        string `mapstructure:"root"`
	DryRun               bool   `mapstructure:"dry_run"`
	AssumeYes            bool   `mapstructure:"assume_yes"`
	RequireCleanWorktree bool   `mapstructure:"require_clean"`
}

// DefaultCommandConfiguration returns baseline configuration values for the rename command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RootDirectory:        defaultRootDirectoryConstant,
		RequireCleanWorktree: defaultRequireCleanConstant,
	}
}

// DefaultConfigurationValues exposes rename defaults keyed for configuration loading.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationPlanPathKey:      defaults.PlanPath,
		rootKey + configurationKeySeparatorConstant + configurationRootDirectoryKey: defaults.RootDirectory,
		rootKey + configurationKeySeparatorConstant + configurationDryRunKey:        defaults.DryRun,
		rootKey + configurationKeySeparatorConstant + configurationAssumeYesKey:     defaults.AssumeYes,
		rootKey + configurationKeySeparatorConstant + configurationRequireCleanKey:  defaults.RequireCleanWorktree,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.PlanPath = strings.TrimSpace(configuration.PlanPath)
	sanitized.RootDirectory = strings.TrimSpace(configuration.RootDirectory)
	if len(sanitized.RootDirectory) == 0 {
		sanitized.RootDirectory = defaultRootDirectoryConstant
	}
	return sanitized
}
