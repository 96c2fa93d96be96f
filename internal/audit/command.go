package audit

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/records"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	commandUseConstant                 = "audit"
	commandShortDescriptionConstant    = "Audit the repository snapshot against the naming and lifecycle rules"
	commandLongDescriptionConstant     = "audit loads the fetched repository snapshot, evaluates every record against the rule set, and writes a markdown report plus a rename plan."
	flagSnapshotNameConstant           = "snapshot"
	flagSnapshotUsageConstant          = "Path to the snapshot cache produced by fetch."
	flagOutputNameConstant             = "output"
	flagOutputUsageConstant            = "Prefix for the generated report (<prefix>.md) and rename plan (<prefix>-renames.yaml)."
	flagOrganizationNameConstant       = "organization"
	flagOrganizationUsageConstant      = "GitHub organization the snapshot belongs to."
	missingSnapshotMessageConstant     = "snapshot path must be provided via --snapshot or configuration"
	missingOutputMessageConstant       = "output prefix must be provided via --output or configuration"
	missingOrganizationMessageConstant = "organization must be provided via --organization or configuration"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	SnapshotLoader        SnapshotLoader
	FileSystem            shared.FileSystem
	Clock                 shared.Clock
}

// Build constructs the cobra command for the audit workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagSnapshotNameConstant, "", flagSnapshotUsageConstant)
	command.Flags().String(flagOutputNameConstant, "", flagOutputUsageConstant)
	command.Flags().String(flagOrganizationNameConstant, "", flagOrganizationUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:         builder.resolveLogger(),
		SnapshotLoader: builder.resolveSnapshotLoader(),
		FileSystem:     builder.resolveFileSystem(),
		Clock:          builder.Clock,
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
	if command.Flags().Changed(flagOutputNameConstant) {
		configuration.OutputPrefix, _ = command.Flags().GetString(flagOutputNameConstant)
	}
	if command.Flags().Changed(flagOrganizationNameConstant) {
		configuration.Organization, _ = command.Flags().GetString(flagOrganizationNameConstant)
	}

	configuration = configuration.sanitize()

	if len(configuration.SnapshotPath) == 0 {
		return CommandOptions{}, errors.New(missingSnapshotMessageConstant)
	}
	if len(configuration.OutputPrefix) == 0 {
		return CommandOptions{}, errors.New(missingOutputMessageConstant)
	}
	if len(configuration.Organization) == 0 {
		return CommandOptions{}, errors.New(missingOrganizationMessageConstant)
	}

	return CommandOptions{
		Organization: configuration.Organization,
		SnapshotPath: configuration.SnapshotPath,
		OutputPrefix: configuration.OutputPrefix,
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

func (builder *CommandBuilder) resolveSnapshotLoader() SnapshotLoader {
	if builder.SnapshotLoader == nil {
		return records.NewSnapshotStore()
	}
	return builder.SnapshotLoader
}

func (builder *CommandBuilder) resolveFileSystem() shared.FileSystem {
	if builder.FileSystem == nil {
		return shared.OSFileSystem{}
	}
	return builder.FileSystem
}
