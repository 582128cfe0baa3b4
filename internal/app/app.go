// Package app implements the interactive session: the list/command-entry
// state machine, command execution and the asynchronous refresh flow.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shaunwen/myprs/internal/bitbucket"
	"github.com/shaunwen/myprs/internal/browser"
	"github.com/shaunwen/myprs/internal/command"
	"github.com/shaunwen/myprs/internal/completion"
	"github.com/shaunwen/myprs/internal/config"
	"github.com/shaunwen/myprs/internal/log"
	"github.com/shaunwen/myprs/internal/models"
	"github.com/shaunwen/myprs/internal/store"
	"github.com/shaunwen/myprs/internal/theme"
)

// uiMode distinguishes list navigation from command entry.
type uiMode int

const (
	modeNormal uiMode = iota
	modeCommand
)

// maxMessages bounds the in-memory activity log.
const maxMessages = 200

// prClient is the remote API collaborator consumed by the refresh flow.
type prClient interface {
	CurrentUserUUID(ctx context.Context) (string, error)
	ListAuthoredPRs(ctx context.Context, ref models.RepoRef, authorUUID string, status models.Status) ([]*models.PullRequest, error)
}

// urlOpener is the browser-launch collaborator.
type urlOpener interface {
	Open(ctx context.Context, rawURL string) error
}

// Model is the Bubble Tea model for the session. It owns the session
// configuration and the PR store; every mutation routes through Update.
type Model struct {
	config *config.SessionConfig
	store  *store.Store
	client prClient
	opener urlOpener
	theme  *theme.Theme

	// Command entry
	mode            uiMode
	input           textinput.Model
	suggestions     []completion.Suggestion
	suggestionIndex int

	// List projection
	statusFilter  models.Status
	searchTerm    string
	selectedIndex int

	// Activity messages shown in the message pane.
	messages []string

	// Refresh bookkeeping
	refreshing   bool
	pendingRepos int

	watch *ConfigWatchService

	ctx    context.Context
	cancel context.CancelFunc

	windowWidth  int
	windowHeight int
	quitting     bool
}

// NewModel creates the session model around a loaded configuration.
func NewModel(cfg *config.SessionConfig) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Placeholder = "/help"
	input.Prompt = ""
	input.CharLimit = 256

	return &Model{
		config:       cfg,
		store:        store.New(),
		client:       newDefaultClient(cfg),
		opener:       browser.New(),
		theme:        theme.GetTheme(""),
		input:        input,
		statusFilter: cfg.DefaultStatus,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func newDefaultClient(cfg *config.SessionConfig) prClient {
	return bitbucket.NewClient(cfg.BaseURL, cfg.Email, cfg.APIToken)
}

// SetTheme applies a named theme before the program starts.
func (m *Model) SetTheme(name string) {
	m.theme = theme.GetTheme(name)
}

// Close releases background resources. Call after the program finishes.
func (m *Model) Close() {
	m.stopConfigWatcher()
	m.cancel()
}

// Init starts the session: greeting, config watcher and the initial refresh.
func (m *Model) Init() tea.Cmd {
	m.logMessage("Type /help for commands.")
	return tea.Batch(
		m.startConfigWatcher(),
		m.startRefresh(),
	)
}

// Update handles terminal events and fetch completions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case userResolvedMsg:
		return m.handleUserResolved(msg)
	case repoFetchedMsg:
		return m.handleRepoFetched(msg)
	case configReloadedMsg:
		return m.handleConfigReloaded(msg)
	case configWatchEventMsg:
		return m.handleConfigWatchEvent()
	case browserOpenedMsg:
		return m.handleBrowserOpened(msg)
	case errMsg:
		if msg.err != nil {
			m.logMessage(fmt.Sprintf("Error: %v", msg.err))
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeCommand {
		return m.handleCommandKey(msg)
	}
	return m.handleNormalKey(msg)
}

// handleNormalKey processes list-navigation keys.
func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, m.quit()

	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil

	case "down", "j":
		if rows := len(m.visibleRows()); m.selectedIndex+1 < rows {
			m.selectedIndex++
		}
		return m, nil

	case "r":
		return m, m.startRefresh()

	case "/":
		m.enterCommandMode()
		return m, textinput.Blink

	case "enter":
		return m, m.openSelected()
	}
	return m, nil
}

// handleCommandKey processes command-entry keys, recomputing suggestions on
// every edit.
func (m *Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()

	case "esc":
		m.exitCommandMode()
		return m, nil

	case "up":
		m.moveSuggestionCursor(-1)
		return m, nil

	case "down":
		m.moveSuggestionCursor(1)
		return m, nil

	case "tab":
		m.applySuggestion()
		return m, nil

	case "enter":
		// Enter on a partial command applies the highlighted completion
		// instead of submitting.
		if m.applySuggestionIfPartial() {
			return m, nil
		}
		return m.submitCommand()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

func (m *Model) enterCommandMode() {
	m.mode = modeCommand
	m.input.SetValue("/")
	m.input.CursorEnd()
	m.input.Focus()
	m.refreshSuggestions()
}

func (m *Model) exitCommandMode() {
	m.mode = modeNormal
	m.input.SetValue("")
	m.input.Blur()
	m.suggestions = nil
	m.suggestionIndex = 0
}

func (m *Model) refreshSuggestions() {
	m.suggestions = completion.Suggest(m.input.Value(), m.config.Repos)
	m.suggestionIndex = 0
}

// moveSuggestionCursor clamps at both ends rather than wrapping.
func (m *Model) moveSuggestionCursor(direction int) {
	if len(m.suggestions) == 0 {
		m.suggestionIndex = 0
		return
	}
	next := m.suggestionIndex + direction
	if next < 0 {
		next = 0
	}
	if next > len(m.suggestions)-1 {
		next = len(m.suggestions) - 1
	}
	m.suggestionIndex = next
}

// applySuggestion replaces the buffer with the highlighted suggestion.
func (m *Model) applySuggestion() bool {
	if len(m.suggestions) == 0 {
		return false
	}
	idx := m.suggestionIndex
	if idx > len(m.suggestions)-1 {
		idx = len(m.suggestions) - 1
	}
	m.input.SetValue(m.suggestions[idx].Apply())
	m.input.CursorEnd()
	m.refreshSuggestions()
	return true
}

// applySuggestionIfPartial applies the highlighted suggestion when the
// buffer does not already spell it out.
func (m *Model) applySuggestionIfPartial() bool {
	if len(m.suggestions) == 0 {
		return false
	}
	idx := m.suggestionIndex
	if idx > len(m.suggestions)-1 {
		idx = len(m.suggestions) - 1
	}
	if m.input.Value() == m.suggestions[idx].Value {
		return false
	}
	return m.applySuggestion()
}

// submitCommand parses and executes the buffer, returning to Normal mode
// regardless of the outcome.
func (m *Model) submitCommand() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.exitCommandMode()

	cmd, err := command.Parse(line)
	if err != nil {
		m.logMessage(fmt.Sprintf("Command failed: %v", err))
		return m, nil
	}
	return m, m.executeCommand(cmd)
}

// openSelected launches the selected PR in the browser. No-op when the
// visible list is empty.
func (m *Model) openSelected() tea.Cmd {
	rows := m.visibleRows()
	if len(rows) == 0 {
		m.logMessage("No pull request selected.")
		return nil
	}
	idx := m.selectedIndex
	if idx > len(rows)-1 {
		idx = len(rows) - 1
	}
	pr := rows[idx]
	return func() tea.Msg {
		err := m.opener.Open(m.ctx, pr.URL)
		return browserOpenedMsg{pr: pr, err: err}
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if err := m.config.Save(); err != nil {
		// Persist failures are logged, never fatal: the session is over.
		log.Printf("failed to persist config on exit: %v", err)
	}
	return tea.Quit
}

// storeView returns the current projection parameters.
func (m *Model) storeView() store.View {
	return store.View{
		Repos:  m.config.Repos,
		Status: m.statusFilter,
		Search: m.searchTerm,
	}
}

func (m *Model) visibleRows() []*models.PullRequest {
	return m.store.VisibleRows(m.storeView())
}

// clampSelection keeps the cursor inside the visible row set.
func (m *Model) clampSelection() {
	rows := len(m.visibleRows())
	if rows == 0 {
		m.selectedIndex = 0
		return
	}
	if m.selectedIndex > rows-1 {
		m.selectedIndex = rows - 1
	}
}

func (m *Model) logMessage(message string) {
	m.messages = append(m.messages, message)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
	log.Printf("%s", message)
}
