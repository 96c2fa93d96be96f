package clones

import "strings"

const (
	configurationKeySeparatorConstant = "."
	configurationOrganizationKey      = "organization"
	configurationSnapshotPathKey      = "snapshot_path"
	configurationRootDirectoryKey     = "root"
	defaultRootDirectoryConstant      = "."
)

// CommandConfiguration captures persistent settings for the sync command.
type CommandConfiguration struct {
	Organization  string `mapstructure:"organization"`
	SnapshotPath  string `mapstructure:"snapshot_path"`
	RootDirectory string `mapstructure:"root"`
}

// DefaultCommandConfiguration returns baseline configuration values for the sync command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RootDirectory: defaultRootDirectoryConstant,
	}
}

// DefaultConfigurationValues exposes sync defaults keyed for configuration loading.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationOrganizationKey:  defaults.Organization,
		rootKey + configurationKeySeparatorConstant + configurationSnapshotPathKey:  defaults.SnapshotPath,
		rootKey + configurationKeySeparatorConstant + configurationRootDirectoryKey: defaults.RootDirectory,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Organization = strings.TrimSpace(configuration.Organization)
	sanitized.SnapshotPath = strings.TrimSpace(configuration.SnapshotPath)
	sanitized.RootDirectory = strings.TrimSpace(configuration.RootDirectory)
	if len(sanitized.RootDirectory) == 0 {
		sanitized.RootDirectory = defaultRootDirectoryConstant
	}
	return sanitized
}
