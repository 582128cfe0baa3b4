package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

const messagePaneLines = 6

// View renders the session: header, grouped PR list, message pane and, in
// command mode, the input line with its suggestion popup.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	messages := m.renderMessages()
	footer := m.renderFooter()

	used := lipgloss.Height(header) + lipgloss.Height(messages) + lipgloss.Height(footer)
	listHeight := m.windowHeight - used
	if listHeight < 1 {
		listHeight = 1
	}
	list := m.renderList(listHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, list, messages, footer)
}

func (m *Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)

	parts := []string{
		titleStyle.Render("myprs"),
		mutedStyle.Render(fmt.Sprintf("%d repo(s)", len(m.config.Repos))),
		mutedStyle.Render("status: " + m.statusFilter.String()),
	}
	if m.searchTerm != "" {
		searchStyle := lipgloss.NewStyle().Foreground(m.theme.Yellow)
		parts = append(parts, searchStyle.Render("search: "+m.searchTerm))
	}
	if m.refreshing {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.Cyan).Render("refreshing..."))
	}

	line := strings.Join(parts, "  ")
	return lipgloss.NewStyle().
		Width(m.windowWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(m.theme.BorderDim).
		Render(ansi.Truncate(line, m.windowWidth, "…"))
}

// renderList draws the grouped PR rows, keeping the selected row in view.
func (m *Model) renderList(height int) string {
	groups := m.store.Groups(m.storeView())
	if len(groups) == 0 {
		empty := "No pull requests to show. Use /repo add <workspace>/<repo>, then /refresh."
		if len(m.config.Repos) > 0 {
			empty = "No pull requests to show."
		}
		style := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Padding(1, 2)
		return lipgloss.Place(m.windowWidth, height, lipgloss.Left, lipgloss.Top, style.Render(empty))
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.TextFg)
	errStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorFg)
	rowStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	selStyle := lipgloss.NewStyle().Foreground(m.theme.AccentFg).Background(m.theme.Accent).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)

	var lines []string
	selectedLine := 0
	rowIdx := 0
	for _, group := range groups {
		title := fmt.Sprintf("%s (%d PRs)", group.Repo, len(group.PRs))
		head := headerStyle.Render(ansi.Truncate(title, m.windowWidth, "…"))
		if group.Err != "" {
			head = errStyle.Render(ansi.Truncate(fmt.Sprintf("%s (error: %s)", group.Repo, group.Err), m.windowWidth, "…"))
		}
		lines = append(lines, head)

		for _, pr := range group.PRs {
			row := fmt.Sprintf("  #%d %s", pr.ID, pr.Title)
			meta := fmt.Sprintf(" · %s · %s", pr.Author, strings.ToLower(pr.State))
			if !pr.UpdatedOn.IsZero() {
				meta += " · " + pr.UpdatedOn.Format("2006-01-02")
			}
			if rowIdx == m.selectedIndex {
				selectedLine = len(lines)
				full := ansi.Truncate(row+meta, m.windowWidth, "…")
				lines = append(lines, selStyle.Width(m.windowWidth).Render(full))
			} else {
				text := rowStyle.Render(ansi.Truncate(row, m.windowWidth, "…"))
				if lipgloss.Width(row) < m.windowWidth {
					text += metaStyle.Render(ansi.Truncate(meta, m.windowWidth-lipgloss.Width(row), "…"))
				}
				lines = append(lines, text)
			}
			rowIdx++
		}
	}

	// Scroll so the selected line stays visible.
	start := 0
	if selectedLine >= height {
		start = selectedLine - height + 1
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[start:end]
	for len(visible) < height {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}

// renderMessages shows the tail of the activity log, word wrapped.
func (m *Model) renderMessages() string {
	style := lipgloss.NewStyle().
		Width(m.windowWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(m.theme.BorderDim).
		Foreground(m.theme.MutedFg)

	var wrapped []string
	for _, msg := range m.messages {
		wrapped = append(wrapped, strings.Split(wordwrap.String(msg, m.windowWidth), "\n")...)
	}
	if len(wrapped) > messagePaneLines {
		wrapped = wrapped[len(wrapped)-messagePaneLines:]
	}
	return style.Render(strings.Join(wrapped, "\n"))
}

// renderFooter draws the command input and suggestion popup in command
// mode, or the key hints otherwise.
func (m *Model) renderFooter() string {
	if m.mode != modeCommand {
		hint := "/ command  ·  j/k move  ·  Enter open  ·  r refresh  ·  q quit"
		return lipgloss.NewStyle().
			Width(m.windowWidth).
			Foreground(m.theme.MutedFg).
			Render(ansi.Truncate(hint, m.windowWidth, "…"))
	}

	prompt := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render(":")
	inputLine := prompt + m.input.View()

	if len(m.suggestions) == 0 {
		return inputLine
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderSuggestions(), inputLine)
}

func (m *Model) renderSuggestions() string {
	nameStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	usageStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	selStyle := lipgloss.NewStyle().Foreground(m.theme.AccentFg).Background(m.theme.AccentDim).Bold(true)

	width := 0
	for _, s := range m.suggestions {
		if len(s.Value) > width {
			width = len(s.Value)
		}
	}

	lines := make([]string, 0, len(m.suggestions))
	for i, s := range m.suggestions {
		name := fmt.Sprintf("%-*s", width, s.Value)
		line := nameStyle.Render(name)
		if s.Usage != "" {
			line += usageStyle.Render("  " + s.Usage)
		}
		if i == m.suggestionIndex {
			line = selStyle.Render(ansi.Truncate(name+"  "+s.Usage, m.windowWidth-2, "…"))
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
