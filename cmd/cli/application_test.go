package cli

import (
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationRegistersEveryCommand(testInstance *testing.T) {
	application := NewApplication()

	registeredCommandNames := make([]string, 0)
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames = append(registeredCommandNames, registeredCommand.Name())
	}

	require.Contains(testInstance, registeredCommandNames, "fetch")
	require.Contains(testInstance, registeredCommandNames, "audit")
	require.Contains(testInstance, registeredCommandNames, "sync")
	require.Contains(testInstance, registeredCommandNames, "rename")
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(testInstance *testing.T) {
	application := NewApplication()

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(testInstance, initializationError)
	require.Equal(testInstance, "goodguide", application.configuration.Common.Organization)
	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, "snapshot.json", application.configuration.Tools.Audit.SnapshotPath)
	require.Equal(testInstance, "audit", application.configuration.Tools.Audit.OutputPrefix)

	organization, organizationAvailable := application.commandContextAccessor.Organization(application.rootCommand.Context())
	require.True(testInstance, organizationAvailable)
	require.Equal(testInstance, "goodguide", organization)
}

func TestInitializeConfigurationHonorsLogFlagOverrides(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set("log-level", "debug"))
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set("log-format", "console"))

	initializationError := application.initializeConfiguration(application.rootCommand)

	require.NoError(testInstance, initializationError)
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
}

func TestResolveOrganizationPrefersCommandConfiguration(testInstance *testing.T) {
	application := NewApplication()
	application.configuration.Common.Organization = "common-org"

	require.Equal(testInstance, "command-org", application.resolveOrganization("command-org"))
	require.Equal(testInstance, "common-org", application.resolveOrganization("  "))
}

func TestApplicationConfigurationDecodesFromNestedMaps(testInstance *testing.T) {
	configurationDocument := map[string]any{
		"common": map[string]any{
			"organization": "goodguide",
			"log_level":    "warn",
			"log_format":   "console",
		},
		"tools": map[string]any{
			"audit": map[string]any{
				"snapshot_path": "snapshot.json",
				"output_prefix": "audit",
			},
			"rename": map[string]any{
				"plan_path":     "audit-renames.yaml",
				"root":          "/root/clones",
				"require_clean": true,
			},
		},
	}

	var decodedConfiguration ApplicationConfiguration
	decodeError := mapstructure.Decode(configurationDocument, &decodedConfiguration)

	require.NoError(testInstance, decodeError)
	require.Equal(testInstance, "goodguide", decodedConfiguration.Common.Organization)
	require.Equal(testInstance, "warn", decodedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "snapshot.json", decodedConfiguration.Tools.Audit.SnapshotPath)
	require.Equal(testInstance, "audit-renames.yaml", decodedConfiguration.Tools.Rename.PlanPath)
	require.True(testInstance, decodedConfiguration.Tools.Rename.RequireCleanWorktree)
}
