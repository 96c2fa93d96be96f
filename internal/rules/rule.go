package rules

import (
	"time"

	"github.com/goodguide/repokeeper/internal/records"
)

// Outcome accumulates everything the rule set derives for one repository.
// Rules mutate the Outcome handed to them and never touch the Repository
// itself, keeping evaluation order effects auditable per rule.
type Outcome struct {
	ProposedName    string
	Observations    []string
	Recommendations []Tag
}

// NewOutcome seeds an accumulator for the provided repository.
func NewOutcome(repository records.Repository) Outcome {
	return Outcome{ProposedName: repository.Name}
}

// Renamed reports whether any rule proposed a different repository name.
func (outcome Outcome) Renamed(repository records.Repository) bool {
	return outcome.ProposedName != repository.Name
}

// AddObservation appends a human-readable observation line.
func (outcome *Outcome) AddObservation(observationText string) {
	outcome.Observations = append(outcome.Observations, observationText)
}

// AddRecommendation appends a recommendation tag. Duplicates are allowed here
// and deduplicated by the distiller.
func (outcome *Outcome) AddRecommendation(recommendationTag Tag) {
	outcome.Recommendations = append(outcome.Recommendations, recommendationTag)
}

// Rule is one unit of repository policy. Matches must be a pure predicate;
// Visit applies the rule's observations, recommendations, and rename effects
// to the outcome and reports whether the rule fired.
type Rule interface {
	Matches(repository records.Repository, outcome Outcome) bool
	Visit(repository records.Repository, outcome *Outcome) bool
}

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
