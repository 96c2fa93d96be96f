// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for cloning, pulling, and inspecting local
// clones, along with remote URL parsing shared by the sync and rename
// workflows.
package gitrepo
