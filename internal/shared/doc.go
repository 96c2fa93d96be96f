// Package shared declares the collaborator interfaces and small OS-backed
// implementations consumed by the command services: filesystem access,
// confirmation prompting, git execution, and clocks.
package shared
