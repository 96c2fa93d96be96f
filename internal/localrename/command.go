package localrename

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/execshell"
	"github.com/goodguide/repokeeper/internal/gitrepo"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	commandUseConstant              = "rename"
	commandShortDescriptionConstant = "Apply a rename plan to the local clone tree"
	commandLongDescriptionConstant  = "rename parses a rename plan produced by audit and applies each step: directory moves (two-step when needed) plus origin remote updates."
	flagPlanNameConstant            = "plan"
	flagPlanUsageConstant           = "Path to the rename plan produced by audit."
	flagRootNameConstant            = "root"
	flagRootUsageConstant           = "Directory holding the local clones."
	flagDryRunNameConstant          = "dry-run"
	flagDryRunUsageConstant         = "Print the planned operations without renaming anything."
	flagAssumeYesNameConstant       = "yes"
	flagAssumeYesUsageConstant      = "Apply every step without prompting."
	flagRequireCleanNameConstant    = "require-clean"
	flagRequireCleanUsageConstant   = "Skip clones whose worktrees have uncommitted changes."
	missingPlanMessageConstant      = "plan path must be provided via --plan or configuration"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted rename configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the rename cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	PlanLoader            PlanLoader
	FileSystem            shared.FileSystem
	GitManager            shared.GitRepositoryManager
	Prompter              shared.ConfirmationPrompter
}

// Build constructs the cobra command for the rename workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagPlanNameConstant, "", flagPlanUsageConstant)
	command.Flags().String(flagRootNameConstant, "", flagRootUsageConstant)
	command.Flags().Bool(flagDryRunNameConstant, false, flagDryRunUsageConstant)
	command.Flags().Bool(flagAssumeYesNameConstant, false, flagAssumeYesUsageConstant)
	command.Flags().Bool(flagRequireCleanNameConstant, defaultRequireCleanConstant, flagRequireCleanUsageConstant)

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

	prompter := builder.Prompter
	if prompter == nil {
		prompter = shared.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:     logger,
		PlanLoader: builder.resolvePlanLoader(),
		FileSystem: builder.resolveFileSystem(),
		GitManager: gitManager,
		Prompter:   prompter,
		Output:     command.OutOrStdout(),
		Errors:     command.ErrOrStderr(),
	})
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	configuration := builder.resolveConfiguration().sanitize()

	if command.Flags().Changed(flagPlanNameConstant) {
		configuration.PlanPath, _ = command.Flags().GetString(flagPlanNameConstant)
	}
	if command.Flags().Changed(flagRootNameConstant) {
		configuration.RootDirectory, _ = command.Flags().GetString(flagRootNameConstant)
	}
	if command.Flags().Changed(flagDryRunNameConstant) {
		configuration.DryRun, _ = command.Flags().GetBool(flagDryRunNameConstant)
	}
	if command.Flags().Changed(flagAssumeYesNameConstant) {
		configuration.AssumeYes, _ = command.Flags().GetBool(flagAssumeYesNameConstant)
	}
	if command.Flags().Changed(flagRequireCleanNameConstant) {
		configuration.RequireCleanWorktree, _ = command.Flags().GetBool(flagRequireCleanNameConstant)
	}

	configuration = configuration.sanitize()

	if len(configuration.PlanPath) == 0 {
		return CommandOptions{}, errors.New(missingPlanMessageConstant)
	}

	return CommandOptions{
		PlanPath:             configuration.PlanPath,
		RootDirectory:        configuration.RootDirectory,
		DryRun:               configuration.DryRun,
		AssumeYes:            configuration.AssumeYes,
		RequireCleanWorktree: configuration.RequireCleanWorktree,
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

func (builder *CommandBuilder) resolvePlanLoader() PlanLoader {
	if builder.PlanLoader == nil {
		return PlanFileLoader{}
	}
	return builder.PlanLoader
}

func (builder *CommandBuilder) resolveFileSystem() shared.FileSystem {
	if builder.FileSystem == nil {
		return shared.OSFileSystem{}
	}
	return builder.FileSystem
}
