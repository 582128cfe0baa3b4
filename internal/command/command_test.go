package command

import (
	"testing"

	"github.com/shaunwen/myprs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBareCommands(t *testing.T) {
	tests := []struct {
		line string
		kind Kind
	}{
		{"/help", KindHelp},
		{"/quit", KindQuit},
		{"/refresh", KindRefresh},
		{"/repos", KindRepoList},
		{"  /help  ", KindHelp},
	}
	for _, tt := range tests {
		cmd, err := Parse(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.kind, cmd.Kind, tt.line)
	}
}

func TestParseRepoAdd(t *testing.T) {
	cmd, err := Parse("/repo add team/api")
	require.NoError(t, err)
	assert.Equal(t, KindRepoAdd, cmd.Kind)
	assert.Equal(t, "team/api", cmd.Repo.String())
}

func TestParseRepoAddRoundTrip(t *testing.T) {
	for _, pair := range []string{"W/R", "workspace-a/repo-1", "Big.Team/some_repo"} {
		cmd, err := Parse("/repo add " + pair)
		require.NoError(t, err, pair)
		assert.Equal(t, pair, cmd.Repo.String(), pair)
	}
}

func TestParseRepoRemove(t *testing.T) {
	for _, verb := range []string{"rm", "remove"} {
		cmd, err := Parse("/repo " + verb + " team/api")
		require.NoError(t, err, verb)
		assert.Equal(t, KindRepoRemove, cmd.Kind)
		assert.Equal(t, "team/api", cmd.Repo.String())
	}
}

func TestParseRepoBareFormIsAdd(t *testing.T) {
	cmd, err := Parse("/repo team/api")
	require.NoError(t, err)
	assert.Equal(t, KindRepoAdd, cmd.Kind)
	assert.Equal(t, "team/api", cmd.Repo.String())
}

func TestParseRepoErrors(t *testing.T) {
	for _, line := range []string{
		"/repo",
		"/repo add",
		"/repo add team",
		"/repo add team/api extra",
		"/repo add team/api/extra",
		"/repo rm",
		"/repo rm /",
		"/repo not-a-ref extra",
	} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestParseStatusLiterals(t *testing.T) {
	tests := []struct {
		line     string
		expected models.Status
	}{
		{"/status open", models.StatusOpen},
		{"/status OPEN", models.StatusOpen},
		{"/status Merged", models.StatusMerged},
		{"/status declined", models.StatusDeclined},
		{"/status ALL", models.StatusAll},
	}
	for _, tt := range tests {
		cmd, err := Parse(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, KindSetStatus, cmd.Kind)
		assert.Equal(t, tt.expected, cmd.Status, tt.line)
	}
}

func TestParseStatusErrors(t *testing.T) {
	for _, line := range []string{"/status", "/status closed", "/status open extra"} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestParseSearch(t *testing.T) {
	cmd, err := Parse("/search fix login")
	require.NoError(t, err)
	assert.Equal(t, KindSearch, cmd.Kind)
	assert.Equal(t, "fix login", cmd.Term)

	cmd, err = Parse("/search 42")
	require.NoError(t, err)
	assert.Equal(t, "42", cmd.Term)
}

func TestParseSearchClear(t *testing.T) {
	for _, line := range []string{"/search clear", "/search CLEAR"} {
		cmd, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, KindSearchClear, cmd.Kind)
	}
}

func TestParseSearchEmptyTermIsError(t *testing.T) {
	for _, line := range []string{"/search", "/search   "} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestParseRejectsNonSlashInput(t *testing.T) {
	_, err := Parse("help")
	assert.Error(t, err)
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, err := Parse("/frobnicate")
	assert.Error(t, err)
}
