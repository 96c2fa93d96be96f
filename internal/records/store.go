package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	snapshotPathRequiredMessageConstant  = "snapshot path must be provided"
	snapshotReadErrorTemplateConstant    = "failed to read snapshot %s: %w"
	snapshotDecodeErrorTemplateConstant  = "failed to decode snapshot %s: %w"
	snapshotEncodeErrorTemplateConstant  = "failed to encode snapshot: %w"
	snapshotWriteErrorTemplateConstant   = "failed to write snapshot %s: %w"
	snapshotIndentPrefixConstant         = ""
	snapshotIndentConstant               = "  "
	snapshotFilePermissionsConstant      = fs.FileMode(0o644)
	snapshotTrailingNewlineByteConstant  = "\n"
	snapshotEmptyRepositoriesGuardLength = 0
)

// SnapshotStore persists repository snapshots as JSON cache files.
type SnapshotStore struct{}

// NewSnapshotStore constructs a snapshot store instance.
func NewSnapshotStore() SnapshotStore {
	return SnapshotStore{}
}

// Load reads the snapshot cache at the provided path.
func (store SnapshotStore) Load(snapshotPath string) ([]Repository, error) {
	trimmedPath := strings.TrimSpace(snapshotPath)
	if len(trimmedPath) == snapshotEmptyRepositoriesGuardLength {
		return nil, errors.New(snapshotPathRequiredMessageConstant)
	}

	snapshotContent, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(snapshotReadErrorTemplateConstant, trimmedPath, readError)
	}

	var repositories []Repository
	if decodeError := json.Unmarshal(snapshotContent, &repositories); decodeError != nil {
		return nil, fmt.Errorf(snapshotDecodeErrorTemplateConstant, trimmedPath, decodeError)
	}

	return repositories, nil
}

// Save writes the snapshot cache to the provided path.
func (store SnapshotStore) Save(snapshotPath string, repositories []Repository) error {
	trimmedPath := strings.TrimSpace(snapshotPath)
	if len(trimmedPath) == snapshotEmptyRepositoriesGuardLength {
		return errors.New(snapshotPathRequiredMessageConstant)
	}

	encodedSnapshot, encodeError := json.MarshalIndent(repositories, snapshotIndentPrefixConstant, snapshotIndentConstant)
	if encodeError != nil {
		return fmt.Errorf(snapshotEncodeErrorTemplateConstant, encodeError)
	}

	encodedSnapshot = append(encodedSnapshot, snapshotTrailingNewlineByteConstant...)
	if writeError := os.WriteFile(trimmedPath, encodedSnapshot, snapshotFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(snapshotWriteErrorTemplateConstant, trimmedPath, writeError)
	}

	return nil
}
