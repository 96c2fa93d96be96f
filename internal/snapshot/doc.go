// Package snapshot implements the fetch command: it pages through the
// organization's repositories with the GitHub CLI, enriches each entry with
// last-commit and root-file metadata, and persists the JSON snapshot cache
// the audit and sync commands consume.
package snapshot
