package app

import (
	"testing"

	"github.com/shaunwen/myprs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewBeforeWindowSizeShowsLoading(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.windowWidth = 0
	m.windowHeight = 0

	assert.Equal(t, "Loading...", m.View())
}

func TestViewEmptyStoreShowsHint(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()

	assert.Contains(t, out, "No pull requests to show")
	assert.Contains(t, out, "/repo add")
}

func TestViewRendersGroupHeadersAndRows(t *testing.T) {
	m, _, _ := newTestModel(t, "ws/alpha", "ws/beta")
	alpha := mustRepo(t, "ws/alpha")
	m.store.Replace(alpha, []*models.PullRequest{
		pr(alpha, 12, "Refactor auth middleware"),
		pr(alpha, 4, "Bump dependencies"),
	})

	out := m.View()

	assert.Contains(t, out, "ws/alpha (2 PRs)")
	assert.Contains(t, out, "#12 Refactor auth middleware")
	assert.Contains(t, out, "#4 Bump dependencies")
	assert.NotContains(t, out, "ws/beta")
}

func TestViewMarksErroredGroups(t *testing.T) {
	m, _, _ := newTestModel(t, "ws/alpha")
	alpha := mustRepo(t, "ws/alpha")
	m.store.SetError(alpha, "503 service unavailable")

	out := m.View()

	assert.Contains(t, out, "error: 503 service unavailable")
}

func TestViewCommandModeShowsSuggestions(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.enterCommandMode()

	out := m.View()

	require.Equal(t, modeCommand, m.mode)
	assert.Contains(t, out, "/help")
	assert.Contains(t, out, "show available commands")
}

func TestViewHeaderShowsSearchAndRefreshState(t *testing.T) {
	m, _, _ := newTestModel(t, "ws/alpha")
	m.searchTerm = "login"
	m.refreshing = true

	out := m.View()

	assert.Contains(t, out, "search: login")
	assert.Contains(t, out, "refreshing...")
}
