package clones

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/execshell"
	"github.com/goodguide/repokeeper/internal/gitrepo"
	"github.com/goodguide/repokeeper/internal/records"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	commandUseConstant                 = "sync"
	commandShortDescriptionConstant    = "Sync local clones with the repository snapshot"
	commandLongDescriptionConstant     = "sync clones every snapshot repository missing under the root directory and fast-forwards the clones already present."
	flagSnapshotNameConstant           = "snapshot"
	flagSnapshotUsageConstant          = "Path to the snapshot cache produced by fetch."
	flagRootNameConstant               = "root"
	flagRootUsageConstant              = "Directory holding the local clones."
	flagOrganizationNameConstant       = "organization"
	flagOrganizationUsageConstant      = "GitHub organization the snapshot belongs to."
	missingSnapshotMessageConstant     = "snapshot path must be provided via --snapshot or configuration"
	missingOrganizationMessageConstant = "organization must be provided via --organization or configuration"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted sync configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the sync cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	SnapshotLoader        SnapshotLoader
	GitManager            shared.GitRepositoryManager
	FileSystem            shared.FileSystem
}

// Build constructs the cobra command for the sync workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagSnapshotNameConstant, "", flagSnapshotUsageConstant)
	command.Flags().String(flagRootNameConstant, "", flagRootUsageConstant)
	command.Flags().String(flagOrganizationNameConstant, "", flagOrganizationUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	gitManager, managerError := builder.resolveGitManager(logger)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:         logger,
		SnapshotLoader: builder.resolveSnapshotLoader(),
		GitManager:     gitManager,
		FileSystem:     builder.resolveFileSystem(),
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
	if command.Flags().Changed(flagRootNameConstant) {
		configuration.RootDirectory, _ = command.Flags().GetString(flagRootNameConstant)
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
		Organization:  configuration.Organization,
		SnapshotPath:  configuration.SnapshotPath,
		RootDirectory: configuration.RootDirectory,
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

func (builder *CommandBuilder) resolveGitManager(logger *zap.Logger) (shared.GitRepositoryManager, error) {
	if builder.GitManager != nil {
		return builder.GitManager, nil
	}

	executor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}

	return gitrepo.NewRepositoryManager(executor)
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
