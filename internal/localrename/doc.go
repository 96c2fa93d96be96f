// Package localrename implements the rename command: it parses a rename
// plan produced by audit and applies each step to the local clone tree,
// moving directories (two-step when needed) and repointing origin remotes.
package localrename
