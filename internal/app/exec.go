package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shaunwen/myprs/internal/command"
	"github.com/shaunwen/myprs/internal/completion"
	"github.com/shaunwen/myprs/internal/log"
)

// executeCommand dispatches a parsed command. Every command other than
// /search and /quit clears an active search before running, so list-shaping
// commands always act on the full row set.
func (m *Model) executeCommand(cmd command.Command) tea.Cmd {
	switch cmd.Kind {
	case command.KindSearch, command.KindSearchClear, command.KindQuit:
	default:
		m.clearSearch()
	}

	switch cmd.Kind {
	case command.KindHelp:
		m.execHelp()
	case command.KindRepoAdd:
		return m.execRepoAdd(cmd)
	case command.KindRepoRemove:
		m.execRepoRemove(cmd)
	case command.KindRepoList:
		m.execRepoList()
	case command.KindSetStatus:
		return m.execSetStatus(cmd)
	case command.KindRefresh:
		return m.startRefresh()
	case command.KindSearch:
		m.execSearch(cmd)
	case command.KindSearchClear:
		m.execSearchClear()
	case command.KindQuit:
		return m.quit()
	}
	return nil
}

func (m *Model) clearSearch() {
	if m.searchTerm == "" {
		return
	}
	m.searchTerm = ""
	m.clampSelection()
	m.logMessage("Search cleared.")
}

func (m *Model) execHelp() {
	m.logMessage("Available commands:")
	for _, spec := range completion.Specs() {
		m.logMessage(fmt.Sprintf("  %-10s %s", spec.Name, spec.Usage))
	}
	m.logMessage("Keys: j/k or arrows move, Enter opens in browser, r refreshes, q quits.")
}

func (m *Model) execRepoAdd(cmd command.Command) tea.Cmd {
	if !m.config.AddRepo(cmd.Repo) {
		m.logMessage(fmt.Sprintf("Repository %s already exists.", cmd.Repo))
		return nil
	}
	m.saveConfig()
	m.logMessage(fmt.Sprintf("Added repository %s. Refreshing...", cmd.Repo))
	return m.startRefresh()
}

func (m *Model) execRepoRemove(cmd command.Command) {
	if !m.config.RemoveRepo(cmd.Repo) {
		m.logMessage(fmt.Sprintf("Repository %s is not configured.", cmd.Repo))
		return
	}
	m.store.Remove(cmd.Repo)
	m.saveConfig()
	m.clampSelection()
	m.logMessage(fmt.Sprintf("Removed repository %s.", cmd.Repo))
}

func (m *Model) execRepoList() {
	if len(m.config.Repos) == 0 {
		m.logMessage("No repositories configured. Use /repo add <workspace>/<repo>.")
		return
	}
	m.logMessage(fmt.Sprintf("Configured repositories (%d):", len(m.config.Repos)))
	for _, ref := range m.config.Repos {
		m.logMessage("  " + ref.String())
	}
}

func (m *Model) execSetStatus(cmd command.Command) tea.Cmd {
	m.statusFilter = cmd.Status
	if m.config.SetStatus(cmd.Status) {
		m.saveConfig()
	}
	m.clampSelection()
	m.logMessage(fmt.Sprintf("Status filter set to '%s'. Refreshing...", cmd.Status))
	return m.startRefresh()
}

func (m *Model) execSearch(cmd command.Command) {
	m.searchTerm = cmd.Term
	m.selectedIndex = 0
	matches := len(m.visibleRows())
	m.logMessage(fmt.Sprintf("Search '%s' matches %d PR(s).", cmd.Term, matches))
}

// execSearchClear is idempotent: clearing with no active search just reports.
func (m *Model) execSearchClear() {
	if m.searchTerm == "" {
		m.logMessage("No active search.")
		return
	}
	m.clearSearch()
}

// saveConfig persists the config, logging failures without aborting the
// in-memory change.
func (m *Model) saveConfig() {
	if err := m.config.Save(); err != nil {
		m.logMessage(fmt.Sprintf("Failed to save config: %v", err))
		log.Printf("config save: %v", err)
	}
}
