package renameplan

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	planPathRequiredMessageConstant = "rename plan path must be provided"
	planReadErrorTemplateConstant   = "failed to read rename plan %s: %w"
	planParseErrorTemplateConstant  = "failed to parse rename plan: %w"
	planEncodeErrorTemplateConstant = "failed to encode rename plan: %w"
)

// RenameStep describes a single remote rename from one name to another.
type RenameStep struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Plan is the machine-readable rename plan shared with the companion rename
// command: the organization plus an ordered sequence of rename steps.
type Plan struct {
	Organization string       `yaml:"org"`
	Renames      []RenameStep `yaml:"renames"`
}

// Encode serializes the plan to YAML, preserving step order.
func Encode(plan Plan) ([]byte, error) {
	encodedPlan, encodeError := yaml.Marshal(plan)
	if encodeError != nil {
		return nil, fmt.Errorf(planEncodeErrorTemplateConstant, encodeError)
	}
	return encodedPlan, nil
}

// Parse deserializes a plan previously produced by Encode. The ordered
// (from, to) pairs round-trip exactly.
func Parse(planContent []byte) (Plan, error) {
	var plan Plan
	if parseError := yaml.Unmarshal(planContent, &plan); parseError != nil {
		return Plan{}, fmt.Errorf(planParseErrorTemplateConstant, parseError)
	}
	return plan, nil
}

// Load reads and parses a plan file from disk.
func Load(planPath string) (Plan, error) {
	trimmedPath := strings.TrimSpace(planPath)
	if len(trimmedPath) == 0 {
		return Plan{}, errors.New(planPathRequiredMessageConstant)
	}

	planContent, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Plan{}, fmt.Errorf(planReadErrorTemplateConstant, trimmedPath, readError)
	}

	return Parse(planContent)
}
