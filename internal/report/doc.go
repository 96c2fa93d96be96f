// Package report renders evaluated repositories as the human-readable
// markdown audit report.
package report
