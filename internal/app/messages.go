package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shaunwen/myprs/internal/config"
	"github.com/shaunwen/myprs/internal/log"
	"github.com/shaunwen/myprs/internal/models"
)

// Message types for the Bubble Tea app.
type (
	errMsg struct{ err error }

	// userResolvedMsg carries the session user's UUID, resolved once at
	// the start of a refresh.
	userResolvedMsg struct {
		uuid   string
		err    error
		repos  []models.RepoRef
		status models.Status
	}

	// repoFetchedMsg is one repository's fetch outcome, applied to the
	// store independently as it completes.
	repoFetchedMsg struct {
		result models.FetchResult
	}

	// configWatchEventMsg signals that the config file changed on disk.
	configWatchEventMsg struct{}

	// configReloadedMsg carries a freshly loaded config after an external
	// edit.
	configReloadedMsg struct {
		cfg *config.SessionConfig
		err error
	}

	// browserOpenedMsg reports the outcome of launching the browser.
	browserOpenedMsg struct {
		pr  *models.PullRequest
		err error
	}
)

// handleUserResolved fans out one fetch command per configured repository
// once the author UUID is known.
func (m *Model) handleUserResolved(msg userResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.refreshing = false
		m.pendingRepos = 0
		m.logMessage(fmt.Sprintf("Failed to fetch current user: %v", msg.err))
		return m, nil
	}

	cmds := make([]tea.Cmd, 0, len(msg.repos))
	for _, ref := range msg.repos {
		cmds = append(cmds, m.fetchRepoCmd(ref, msg.uuid, msg.status))
	}
	return m, tea.Batch(cmds...)
}

// handleRepoFetched applies one repository's result to the store. Failures
// keep the previous rows and record the error annotation.
func (m *Model) handleRepoFetched(msg repoFetchedMsg) (tea.Model, tea.Cmd) {
	result := msg.result
	if result.Failed() {
		m.store.SetError(result.Repo, result.Err)
		m.logMessage(fmt.Sprintf("Failed loading %s: %s", result.Repo, result.Err))
	} else {
		m.store.Replace(result.Repo, result.PRs)
		log.Printf("loaded %d PR(s) for %s", len(result.PRs), result.Repo)
	}

	if m.pendingRepos > 0 {
		m.pendingRepos--
	}
	if m.pendingRepos == 0 && m.refreshing {
		m.refreshing = false
		m.logRefreshSummary()
	}
	m.clampSelection()
	return m, nil
}

func (m *Model) logRefreshSummary() {
	visible := len(m.visibleRows())
	total := m.store.Count()
	failed := 0
	for _, ref := range m.config.Repos {
		if m.store.Error(ref) != "" {
			failed++
		}
	}

	if m.searchTerm != "" {
		m.logMessage(fmt.Sprintf(
			"Loaded %d matching PR(s) out of %d total with status '%s' across %d repo(s) | search='%s'",
			visible, total, m.statusFilter, len(m.config.Repos), m.searchTerm))
	} else {
		m.logMessage(fmt.Sprintf(
			"Loaded %d PR(s) with status '%s' across %d repo(s)",
			visible, m.statusFilter, len(m.config.Repos)))
	}
	if failed > 0 {
		m.logMessage(fmt.Sprintf("%d repo(s) failed during refresh", failed))
	}
}

// handleBrowserOpened logs the launch outcome.
func (m *Model) handleBrowserOpened(msg browserOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logMessage(fmt.Sprintf("Command failed: %v", msg.err))
		return m, nil
	}
	m.logMessage(fmt.Sprintf("Opened %s/%s PR #%d in browser.", msg.pr.Workspace, msg.pr.Repo, msg.pr.ID))
	return m, nil
}

// handleConfigReloaded swaps in an externally edited configuration.
func (m *Model) handleConfigReloaded(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	waitCmd := m.waitForConfigEvent()
	if msg.err != nil {
		m.logMessage(fmt.Sprintf("Config reload failed: %v", msg.err))
		return m, waitCmd
	}
	if msg.cfg == nil || configEquivalent(m.config, msg.cfg) {
		// Our own save, or nothing relevant changed.
		return m, waitCmd
	}

	// Drop records for repos no longer configured.
	for _, ref := range m.config.Repos {
		if !msg.cfg.HasRepo(ref) {
			m.store.Remove(ref)
		}
	}

	m.config = msg.cfg
	m.client = newDefaultClient(msg.cfg)
	m.statusFilter = msg.cfg.DefaultStatus
	m.clampSelection()
	m.logMessage("Config reloaded from disk. Refreshing...")
	return m, tea.Batch(waitCmd, m.startRefresh())
}

func configEquivalent(a, b *config.SessionConfig) bool {
	if a.BaseURL != b.BaseURL || a.Email != b.Email || a.APIToken != b.APIToken {
		return false
	}
	if a.DefaultStatus != b.DefaultStatus || len(a.Repos) != len(b.Repos) {
		return false
	}
	for i := range a.Repos {
		if a.Repos[i] != b.Repos[i] {
			return false
		}
	}
	return true
}
