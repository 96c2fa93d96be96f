// Package cli assembles the repokeeper command hierarchy: configuration
// loading, logger construction, and the fetch, audit, sync, and rename
// subcommands.
package cli
