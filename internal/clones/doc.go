// Package clones implements the sync command: it walks the repository
// snapshot and makes the local clone tree match it, cloning repositories
// that are missing and fast-forwarding the ones already present.
package clones
