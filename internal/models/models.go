// Package models defines the data objects shared across myprs packages.
package models

import (
	"fmt"
	"strings"
	"time"
)

// RepoRef identifies a remote repository by workspace and repository name.
// Equality is case-sensitive exact match on both fields.
type RepoRef struct {
	Workspace string `yaml:"workspace"`
	Repo      string `yaml:"repo"`
}

// ParseRepoRef parses a "workspace/repo" value into a RepoRef.
func ParseRepoRef(value string) (RepoRef, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RepoRef{}, fmt.Errorf("repo must be in the form workspace/repo, got %q", value)
	}
	workspace := strings.TrimSpace(parts[0])
	repo := strings.TrimSpace(parts[1])
	if workspace == "" || repo == "" {
		return RepoRef{}, fmt.Errorf("repo must be in the form workspace/repo, got %q", value)
	}
	return RepoRef{Workspace: workspace, Repo: repo}, nil
}

// String renders the ref back to its workspace/repo form.
func (r RepoRef) String() string {
	return r.Workspace + "/" + r.Repo
}

// PullRequest captures the relevant metadata for a pull request authored by
// the session user. Records are immutable once fetched; a refresh replaces
// the whole record set for a repository.
type PullRequest struct {
	Workspace   string
	Repo        string
	ID          int
	Title       string
	Description string
	Author      string
	State       string // Raw API state string (e.g. "OPEN", "MERGED")
	UpdatedOn   time.Time
	URL         string
}

// FetchResult is the per-repository outcome of a refresh: either a list of
// pull requests or an error description. Failures are retained and surfaced,
// never silently dropped.
type FetchResult struct {
	Repo RepoRef
	PRs  []*PullRequest
	Err  string
}

// Failed reports whether the fetch for this repository failed.
func (f FetchResult) Failed() bool {
	return f.Err != ""
}
