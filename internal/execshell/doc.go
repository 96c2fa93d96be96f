// Package execshell runs git and GitHub CLI commands through a narrow,
// logged executor so higher-level services can be tested against stub
// runners.
package execshell
