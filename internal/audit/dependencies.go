package audit

import (
	"github.com/goodguide/repokeeper/internal/records"
)

// SnapshotLoader reads repository snapshot caches from disk.
type SnapshotLoader interface {
	Load(snapshotPath string) ([]records.Repository, error)
}
