package audit

import "strings"

const (
	configurationKeySeparatorConstant = "."
	configurationOrganizationKey      = "organization"
	configurationSnapshotPathKey      = "snapshot_path"
	configurationOutputPrefixKey      = "output_prefix"
	defaultOutputPrefixConstant       = "audit"
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Organization string `mapstructure:"organization"`
	SnapshotPath string `mapstructure:"snapshot_path"`
	OutputPrefix string `mapstructure:"output_prefix"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		OutputPrefix: defaultOutputPrefixConstant,
	}
}

// DefaultConfigurationValues exposes audit defaults keyed for configuration loading.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationOrganizationKey: defaults.Organization,
		rootKey + configurationKeySeparatorConstant + configurationSnapshotPathKey: defaults.SnapshotPath,
		rootKey + configurationKeySeparatorConstant + configurationOutputPrefixKey: defaults.OutputPrefix,
	}
}

// sanitize trims whitespace from configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Organization = strings.TrimSpace(configuration.Organization)
	sanitized.SnapshotPath = strings.TrimSpace(configuration.SnapshotPath)
	sanitized.OutputPrefix = strings.TrimSpace(configuration.OutputPrefix)
	return sanitized
}
