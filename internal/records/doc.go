// Package records defines the immutable repository snapshot consumed by the
// rule engine along with the JSON snapshot store shared by the fetch, audit,
// and sync commands.
package records
