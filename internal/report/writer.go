package report

import (
	"fmt"
	"io"

	"github.com/goodguide/repokeeper/internal/rules"
)

const (
	reportTitleTemplateConstant        = "# Repository audit for %s\n"
	repositoryHeadingTemplateConstant  = "\n## %s\n\n"
	renamedHeadingTemplateConstant     = "\n## %s (proposed: %s)\n\n"
	observationLineTemplateConstant    = "- %s\n"
	recommendationsHeadingConstant     = "\nRecommendations:\n\n"
	recommendationLineTemplateConstant = "- %s\n"
	conflictsHeadingConstant           = "\n## Naming conflicts\n\n"
	conflictLineTemplateConstant       = "- %s\n"
)

// MarkdownWriter renders evaluations and their distilled recommendations to a
// markdown sink.
type MarkdownWriter struct {
	distiller rules.Distiller
}

// NewMarkdownWriter constructs a MarkdownWriter.
func NewMarkdownWriter() MarkdownWriter {
	return MarkdownWriter{distiller: rules.NewDistiller()}
}

// Write renders the full report: a heading per record, its observation lines,
// its recommendation lines, and a trailing naming-conflict section when the
// validation pass produced warnings.
func (writer MarkdownWriter) Write(destination io.Writer, organization string, result rules.EvaluationResult) error {
	if _, writeError := fmt.Fprintf(destination, reportTitleTemplateConstant, organization); writeError != nil {
		return writeError
	}

	for _, evaluation := range result.Evaluations {
		if writeError := writer.writeEvaluation(destination, evaluation); writeError != nil {
			return writeError
		}
	}

	if len(result.Warnings) == 0 {
		return nil
	}

	if _, writeError := fmt.Fprint(destination, conflictsHeadingConstant); writeError != nil {
		return writeError
	}
	for _, warning := range result.Warnings {
		if _, writeError := fmt.Fprintf(destination, conflictLineTemplateConstant, warning); writeError != nil {
			return writeError
		}
	}

	return nil
}

func (writer MarkdownWriter) writeEvaluation(destination io.Writer, evaluation rules.Evaluation) error {
	if evaluation.Outcome.Renamed(evaluation.Repository) {
		if _, writeError := fmt.Fprintf(destination, renamedHeadingTemplateConstant, evaluation.Repository.Name, evaluation.Outcome.ProposedName); writeError != nil {
			return writeError
		}
	} else {
		if _, writeError := fmt.Fprintf(destination, repositoryHeadingTemplateConstant, evaluation.Repository.Name); writeError != nil {
			return writeError
		}
	}

	for _, observation := range evaluation.Outcome.Observations {
		if _, writeError := fmt.Fprintf(destination, observationLineTemplateConstant, observation); writeError != nil {
			return writeError
		}
	}

	recommendationLines, distillError := writer.distiller.Distill(evaluation)
	if distillError != nil {
		return distillError
	}
	if len(recommendationLines) == 0 {
		return nil
	}

	if _, writeError := fmt.Fprint(destination, recommendationsHeadingConstant); writeError != nil {
		return writeError
	}
	for _, recommendationLine := range recommendationLines {
		if _, writeError := fmt.Fprintf(destination, recommendationLineTemplateConstant, recommendationLine); writeError != nil {
			return writeError
		}
	}

	return nil
}
