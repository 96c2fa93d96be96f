package renameplan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodguide/repokeeper/internal/renameplan"
)

const testPlanFileNameConstant = "audit-renames.yaml"

func TestEncodeAndParseRoundTripPreservesStepOrder(testInstance *testing.T) {
	plan := renameplan.Plan{
		Organization: testOrganizationNameConstant,
		Renames: []renameplan.RenameStep{
			{From: "alpha", To: "beta"},
			{From: "beta", To: "alpha"},
			{From: "widget_tools", To: "widget-tools"},
		},
	}

	encodedPlan, encodeError := renameplan.Encode(plan)
	require.NoError(testInstance, encodeError)
	require.Contains(testInstance, string(encodedPlan), "org: "+testOrganizationNameConstant)

	parsedPlan, parseError := renameplan.Parse(encodedPlan)
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, plan, parsedPlan)
}

func TestParseRejectsMalformedContent(testInstance *testing.T) {
	_, parseError := renameplan.Parse([]byte("org: [unclosed"))
	require.Error(testInstance, parseError)
	require.Contains(testInstance, parseError.Error(), "failed to parse rename plan")
}

func TestLoadReadsPlansFromDisk(testInstance *testing.T) {
	plan := renameplan.Plan{
		Organization: testOrganizationNameConstant,
		Renames:      []renameplan.RenameStep{{From: "platform", To: "purview-www"}},
	}
	encodedPlan, encodeError := renameplan.Encode(plan)
	require.NoError(testInstance, encodeError)

	planPath := filepath.Join(testInstance.TempDir(), testPlanFileNameConstant)
	require.NoError(testInstance, os.WriteFile(planPath, encodedPlan, 0o644))

	loadedPlan, loadError := renameplan.Load(planPath)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, plan, loadedPlan)
}

func TestLoadRequiresAPath(testInstance *testing.T) {
	_, loadError := renameplan.Load("   ")
	require.EqualError(testInstance, loadError, "rename plan path must be provided")
}

func TestLoadReportsMissingFiles(testInstance *testing.T) {
	missingPath := filepath.Join(testInstance.TempDir(), testPlanFileNameConstant)

	_, loadError := renameplan.Load(missingPath)

	require.Error(testInstance, loadError)
	require.Contains(testInstance, loadError.Error(), "failed to read rename plan "+missingPath)
}
