// Package audit implements the audit command: it loads a repository
// snapshot, runs the rule engine over every record, and writes the markdown
// report plus the machine-readable rename plan.
package audit
