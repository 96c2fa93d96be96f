package snapshot

import "strings"

const (
	configurationKeySeparatorConstant = "."
	configurationOrganizationKey      = "organization"
	configurationSnapshotPathKey      = "snapshot_path"
	defaultSnapshotPathConstant       = "snapshot.json"
)

// CommandConfiguration captures persistent settings for the fetch command.
type CommandConfiguration struct {
	Organization string `mapstructure:"organization"`
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// DefaultCommandConfiguration returns baseline configuration values for the fetch command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SnapshotPath: defaultSnapshotPathConstant,
	}
}

// DefaultConfigurationValues exposes fetch defaults keyed for configuration loading.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationOrganizationKey: defaults.Organization,
		rootKey + configurationKeySeparatorConstant + configurationSnapshotPathKey: defaults.SnapshotPath,
	}
}

// sanitize trims whitespace from configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Organization = strings.TrimSpace(configuration.Organization)
	sanitized.SnapshotPath = strings.TrimSpace(configuration.SnapshotPath)
	return sanitized
}
