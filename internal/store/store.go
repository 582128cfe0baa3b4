// Package store holds fetched pull request records and computes the
// visible-row projection for the list view.
package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shaunwen/myprs/internal/models"
)

// Store keeps the fetched pull requests per repository together with the
// last fetch error annotation. All reads see either the previous or the new
// record set for a repository, never a partial mix.
type Store struct {
	mu      sync.RWMutex
	records map[models.RepoRef][]*models.PullRequest
	errors  map[models.RepoRef]string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		records: make(map[models.RepoRef][]*models.PullRequest),
		errors:  make(map[models.RepoRef]string),
	}
}

// Replace atomically swaps the record set for a repository and clears its
// error annotation. Used on successful refresh.
func (s *Store) Replace(ref models.RepoRef, prs []*models.PullRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[ref] = append([]*models.PullRequest(nil), prs...)
	delete(s.errors, ref)
}

// SetError records a fetch failure for a repository. Previous records stay
// in place so the list shows stale-but-present rows.
func (s *Store) SetError(ref models.RepoRef, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[ref] = msg
}

// Error returns the fetch error annotation for a repository, if any.
func (s *Store) Error(ref models.RepoRef) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[ref]
}

// Remove drops a repository's records and error annotation. Used when the
// repository is removed from the session configuration.
func (s *Store) Remove(ref models.RepoRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, ref)
	delete(s.errors, ref)
}

// Count returns the total number of stored records across repositories.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, prs := range s.records {
		total += len(prs)
	}
	return total
}

// View describes the projection applied to the stored records: the
// configured repositories in display order, the status filter and the
// optional search term.
type View struct {
	Repos  []models.RepoRef
	Status models.Status
	Search string
}

// Group is one repository partition of the visible rows.
type Group struct {
	Repo models.RepoRef
	PRs  []*models.PullRequest
	Err  string // Last fetch error for the repository, if any
}

// Groups computes the visible rows partitioned by repository, preserving
// the configured repo order. Repositories with no matching rows and no
// error annotation are omitted from the result but keep their records in
// the store. Within a group rows are ordered by descending PR number. The
// projection is pure: it never mutates stored data and is safe to call
// repeatedly and concurrently with refresh updates.
func (s *Store) Groups(view View) []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var groups []Group
	for _, ref := range view.Repos {
		var matched []*models.PullRequest
		for _, pr := range s.records[ref] {
			if !view.Status.Matches(pr.State) {
				continue
			}
			if !matchesSearch(pr, view.Search) {
				continue
			}
			matched = append(matched, pr)
		}
		errMsg := s.errors[ref]
		if len(matched) == 0 && errMsg == "" {
			continue
		}
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
		groups = append(groups, Group{Repo: ref, PRs: matched, Err: errMsg})
	}
	return groups
}

// VisibleRows flattens the grouped projection into the ordered row list the
// selection cursor moves over.
func (s *Store) VisibleRows(view View) []*models.PullRequest {
	var rows []*models.PullRequest
	for _, group := range s.Groups(view) {
		rows = append(rows, group.PRs...)
	}
	return rows
}

// matchesSearch applies the search term: an integer term matches the PR
// number exactly, anything else is a case-insensitive substring match over
// title plus description.
func matchesSearch(pr *models.PullRequest, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	if id, err := strconv.Atoi(term); err == nil {
		return pr.ID == id
	}
	needle := strings.ToLower(term)
	haystack := strings.ToLower(pr.Title + " " + pr.Description)
	return strings.Contains(haystack, needle)
}
