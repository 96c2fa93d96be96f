// Package githubcli wraps the GitHub CLI for repokeeper workflows.
//
// It shells out to gh api through execshell, paginates organization listings
// to completion, and decodes the JSON payloads into typed structures so the
// snapshot fetcher never talks to the REST API directly.
package githubcli
