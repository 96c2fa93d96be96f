package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodguide/repokeeper/internal/utils"
)

func TestCommandContextAccessorRoundTripsValues(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	contextWithValues := accessor.WithConfigurationFilePath(context.Background(), "/etc/repokeeper/config.yaml")
	contextWithValues = accessor.WithOrganization(contextWithValues, "goodguide")

	configurationFilePath, configurationFilePathAvailable := accessor.ConfigurationFilePath(contextWithValues)
	require.True(testInstance, configurationFilePathAvailable)
	require.Equal(testInstance, "/etc/repokeeper/config.yaml", configurationFilePath)

	organization, organizationAvailable := accessor.Organization(contextWithValues)
	require.True(testInstance, organizationAvailable)
	require.Equal(testInstance, "goodguide", organization)
}

func TestCommandContextAccessorHandlesAbsentValues(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, configurationFilePathAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, configurationFilePathAvailable)

	_, organizationAvailable := accessor.Organization(nil)
	require.False(testInstance, organizationAvailable)
}
