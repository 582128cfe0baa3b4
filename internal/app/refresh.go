package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shaunwen/myprs/internal/models"
)

// startRefresh kicks off a full refresh cycle. A refresh already in flight
// is coalesced into a no-op so fetches never stack.
func (m *Model) startRefresh() tea.Cmd {
	if m.refreshing {
		m.logMessage("Refresh already in progress.")
		return nil
	}
	if _, _, ok := m.config.Credentials(); !ok {
		m.logMessage("Missing Bitbucket credentials. Set email and API token in config or environment.")
		return nil
	}
	if len(m.config.Repos) == 0 {
		m.logMessage("No repositories configured. Use /repo add <workspace>/<repo>.")
		return nil
	}

	m.refreshing = true
	m.pendingRepos = len(m.config.Repos)
	m.logMessage(fmt.Sprintf("Refreshing %d repo(s) with status '%s'...", len(m.config.Repos), m.statusFilter))

	repos := make([]models.RepoRef, len(m.config.Repos))
	copy(repos, m.config.Repos)
	status := m.statusFilter
	client := m.client
	ctx := m.ctx

	return func() tea.Msg {
		uuid, err := client.CurrentUserUUID(ctx)
		return userResolvedMsg{uuid: uuid, err: err, repos: repos, status: status}
	}
}

// fetchRepoCmd fetches one repository's authored PRs in the background.
func (m *Model) fetchRepoCmd(ref models.RepoRef, authorUUID string, status models.Status) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		prs, err := client.ListAuthoredPRs(ctx, ref, authorUUID, status)
		result := models.FetchResult{Repo: ref, PRs: prs}
		if err != nil {
			result.Err = err.Error()
		}
		return repoFetchedMsg{result: result}
	}
}
