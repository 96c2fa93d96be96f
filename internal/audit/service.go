package audit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goodguide/repokeeper/internal/renameplan"
	"github.com/goodguide/repokeeper/internal/report"
	"github.com/goodguide/repokeeper/internal/rules"
	"github.com/goodguide/repokeeper/internal/shared"
)

const (
	reportFileSuffixConstant                  = ".md"
	planFileSuffixConstant                    = "-renames.yaml"
	outputFilePermissionsConstant             = fs.FileMode(0o644)
	snapshotLoaderMissingMessageConstant      = "audit service snapshot loader not configured"
	fileSystemMissingMessageConstant          = "audit service file system not configured"
	snapshotLoadErrorTemplateConstant         = "unable to load snapshot: %w"
	ruleSetConstructionErrorTemplateConstant  = "unable to construct rule set: %w"
	reportRenderingErrorTemplateConstant      = "unable to render audit report: %w"
	renamePlanResolutionErrorTemplateConstant = "unable to resolve rename plan: %w"
	renamePlanEncodingErrorTemplateConstant   = "unable to encode rename plan: %w"
	reportWriteErrorTemplateConstant          = "unable to write audit report %s: %w"
	planWriteErrorTemplateConstant            = "unable to write rename plan %s: %w"
	namingConflictMessageConstant             = "naming conflict detected"
	auditCompletedMessageConstant             = "audit completed"
	logFieldWarningConstant                   = "warning"
	logFieldRepositoryCountConstant           = "repository_count"
	logFieldRenameCountConstant               = "rename_count"
	logFieldReportPathConstant                = "report_path"
	logFieldPlanPathConstant                  = "plan_path"
)

// Dependency sentinels reported by NewService.
var (
	ErrSnapshotLoaderNotConfigured = errors.New(snapshotLoaderMissingMessageConstant)
	ErrFileSystemNotConfigured     = errors.New(fileSystemMissingMessageConstant)
)

// CommandOptions captures the configurable parameters for one audit run.
type CommandOptions struct {
	Organization string
	SnapshotPath string
	OutputPrefix string
}

// ServiceDependencies supplies collaborators required by the audit service.
type ServiceDependencies struct {
	Logger         *zap.Logger
	SnapshotLoader SnapshotLoader
	FileSystem     shared.FileSystem
	Clock          shared.Clock
}

// Service orchestrates one audit run: snapshot in, report and plan out.
type Service struct {
	logger         *zap.Logger
	snapshotLoader SnapshotLoader
	fileSystem     shared.FileSystem
	clock          shared.Clock
}

// NewService validates dependencies and constructs the audit service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.SnapshotLoader == nil {
		return nil, ErrSnapshotLoaderNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := dependencies.Clock
	if clock == nil {
		clock = shared.SystemClock{}
	}

	return &Service{
		logger:         logger,
		snapshotLoader: dependencies.SnapshotLoader,
		fileSystem:     dependencies.FileSystem,
		clock:          clock,
	}, nil
}

// Run evaluates every snapshot record and writes the markdown report plus the
// rename plan. Distillation and plan-resolution failures abort the run before
// either output file is written.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	repositories, loadError := service.snapshotLoader.Load(options.SnapshotPath)
	if loadError != nil {
		return fmt.Errorf(snapshotLoadErrorTemplateConstant, loadError)
	}

	orderedRules, ruleSetError := rules.DefaultRuleSet(service.clock)
	if ruleSetError != nil {
		return fmt.Errorf(ruleSetConstructionErrorTemplateConstant, ruleSetError)
	}

	evaluationResult := rules.NewEvaluator().Evaluate(repositories, orderedRules)
	for _, warning := range evaluationResult.Warnings {
		service.logger.Warn(namingConflictMessageConstant, zap.String(logFieldWarningConstant, warning))
	}

	var reportBuffer bytes.Buffer
	markdownWriter := report.NewMarkdownWriter()
	if renderError := markdownWriter.Write(&reportBuffer, options.Organization, evaluationResult); renderError != nil {
		return fmt.Errorf(reportRenderingErrorTemplateConstant, renderError)
	}

	plan, resolutionError := renameplan.NewResolver().Resolve(options.Organization, evaluationResult.Evaluations)
	if resolutionError != nil {
		return fmt.Errorf(renamePlanResolutionErrorTemplateConstant, resolutionError)
	}

	encodedPlan, encodeError := renameplan.Encode(plan)
	if encodeError != nil {
		return fmt.Errorf(renamePlanEncodingErrorTemplateConstant, encodeError)
	}

	reportPath := options.OutputPrefix + reportFileSuffixConstant
	if writeError := service.fileSystem.WriteFile(reportPath, reportBuffer.Bytes(), outputFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, reportPath, writeError)
	}

	planPath := options.OutputPrefix + planFileSuffixConstant
	if writeError := service.fileSystem.WriteFile(planPath, encodedPlan, outputFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(planWriteErrorTemplateConstant, planPath, writeError)
	}

	service.logger.Info(
		auditCompletedMessageConstant,
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
		zap.Int(logFieldRenameCountConstant, len(plan.Renames)),
		zap.String(logFieldReportPathConstant, reportPath),
		zap.String(logFieldPlanPathConstant, planPath),
	)

	return nil
}
