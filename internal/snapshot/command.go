package snapshot

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/execshell"
	"github.com/goodguide/repokeeper/internal/githubcli"
	"github.com/goodguide/repokeeper/internal/records"
)

const (
	commandUseConstant                 = "fetch"
	commandShortDescriptionConstant    = "Fetch organization repository metadata into the snapshot cache"
	commandLongDescriptionConstant     = "fetch pages through every repository of the organization with the GitHub CLI, collects last-commit and root-file metadata, and writes the JSON snapshot cache."
	flagSnapshotNameConstant           = "snapshot"
	flagSnapshotUsageConstant          = "Path where the snapshot cache is written."
	flagOrganizationNameConstant       = "organization"
	flagOrganizationUsageConstant      = "GitHub organization to fetch."
	missingSnapshotMessageConstant     = "snapshot path must be provided via --snapshot or configuration"
	missingOrganizationMessageConstant = "organization must be provided via --organization or configuration"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted fetch configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the fetch cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	MetadataClient        RepositoryMetadataClient
	SnapshotWriter        SnapshotWriter
}

// Build constructs the cobra command for the fetch workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagSnapshotNameConstant, "", flagSnapshotUsageConstant)
	command.Flags().String(flagOrganizationNameConstant, "", flagOrganizationUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	metadataClient, clientError := builder.resolveMetadataClient(logger)
	if clientError != nil {
		return clientError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:         logger,
		MetadataClient: metadataClient,
		SnapshotWriter: builder.resolveSnapshotWriter(),
	})
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	configuration := builder.resolveConfiguration().sanitize()

	if command.Flags().Changed(flagSnapshotNameConstant) {
		configuration.SnapshotPath, _ = command.Flags().GetString(flagSnapshotNameConstant)
	}
	if command.Flags().Changed(flagOrganizationNameConstant) {
		configuration.Organization, _ = command.Flags().GetString(flagOrganizationNameConstant)
	}

	configuration = configuration.sanitize()

	if len(configuration.SnapshotPath) == 0 {
		return CommandOptions{}, errors.New(missingSnapshotMessageConstant)
	}
	if len(configuration.Organization) == 0 {
		return CommandOptions{}, errors.New(missingOrganizationMessageConstant)
	}

	return CommandOptions{
		Organization: configuration.Organization,
		SnapshotPath: configuration.SnapshotPath,
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveMetadataClient(logger *zap.Logger) (RepositoryMetadataClient, error) {
	if builder.MetadataClient != nil {
		return builder.MetadataClient, nil
	}

	executor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}

	return githubcli.NewClient(executor)
}

func (builder *CommandBuilder) resolveSnapshotWriter() SnapshotWriter {
	if builder.SnapshotWriter == nil {
		return records.NewSnapshotStore()
	}
	return builder.SnapshotWriter
}
