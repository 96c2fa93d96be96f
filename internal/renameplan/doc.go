// Package renameplan turns evaluated repositories into an ordered rename
// plan, resolving two-step collision chains so the companion rename command
// never renames onto a name another repository is still vacating.
package renameplan
