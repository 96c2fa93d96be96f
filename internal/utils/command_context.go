package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	organizationContextKeyConstant          = commandContextKey("organization")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable {
		return "", false
	}
	return configurationFilePath, true
}

// WithOrganization attaches the resolved organization name to the provided context.
func (accessor CommandContextAccessor) WithOrganization(parentContext context.Context, organization string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, organizationContextKeyConstant, organization)
}

// Organization extracts the resolved organization name from the provided context.
func (accessor CommandContextAccessor) Organization(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	organization, organizationAvailable := executionContext.Value(organizationContextKeyConstant).(string)
	if !organizationAvailable {
		return "", false
	}
	return organization, true
}
