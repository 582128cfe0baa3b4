package completion

import (
	"fmt"
	"testing"

	"github.com/shaunwen/myprs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repos(t *testing.T, values ...string) []models.RepoRef {
	t.Helper()
	out := make([]models.RepoRef, 0, len(values))
	for _, value := range values {
		ref, err := models.ParseRepoRef(value)
		require.NoError(t, err)
		out = append(out, ref)
	}
	return out
}

func values(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Value)
	}
	return out
}

func TestSuggestAllCommandsOnSlash(t *testing.T) {
	got := Suggest("/", nil)
	assert.Equal(t, []string{
		"/help", "/quit", "/refresh", "/repo", "/repos", "/search", "/status",
	}, values(got))
}

func TestSuggestCommandPrefix(t *testing.T) {
	got := Suggest("/re", nil)
	assert.Equal(t, []string{"/refresh", "/repo", "/repos"}, values(got))
}

func TestSuggestExactLiteralRanksFirst(t *testing.T) {
	got := Suggest("/repo", nil)
	require.NotEmpty(t, got)
	assert.Equal(t, "/repo", got[0].Value)
	assert.Equal(t, []string{"/repo", "/repos"}, values(got))
}

func TestSuggestCommandWithArgsAppendsSpace(t *testing.T) {
	got := Suggest("/sta", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "/status", got[0].Value)
	assert.True(t, got[0].AppendSpace)
	assert.Equal(t, "/status ", got[0].Apply())
}

func TestSuggestBareCommandDoesNotAppendSpace(t *testing.T) {
	got := Suggest("/qu", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "/quit", got[0].Apply())
}

func TestSuggestRepoVerbs(t *testing.T) {
	got := Suggest("/repo ", nil)
	assert.Equal(t, []string{"/repo add", "/repo rm"}, values(got))
}

func TestSuggestRepoRemoveCompletesConfiguredRepos(t *testing.T) {
	configured := repos(t, "workspace-a/repo-1", "workspace-b/repo-2")

	got := Suggest("/repo rm works", configured)
	require.Len(t, got, 2)
	assert.Equal(t, "/repo rm workspace-a/repo-1", got[0].Value)
	assert.Equal(t, "/repo rm workspace-b/repo-2", got[1].Value)

	got = Suggest("/repo rm workspace-a", configured)
	require.Len(t, got, 1)
	assert.Equal(t, "/repo rm workspace-a/repo-1", got[0].Apply())
}

func TestSuggestRepoRemoveNeverInventsRepos(t *testing.T) {
	got := Suggest("/repo rm anything", nil)
	assert.Empty(t, got)
}

func TestSuggestStatusLiterals(t *testing.T) {
	got := Suggest("/status ", nil)
	assert.Equal(t, []string{
		"/status open", "/status merged", "/status declined", "/status all",
	}, values(got))

	got = Suggest("/status m", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "/status merged", got[0].Value)
}

func TestSuggestSearchClear(t *testing.T) {
	got := Suggest("/search cl", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "/search clear", got[0].Value)

	// Free text gets no completion.
	assert.Empty(t, Suggest("/search login bug", nil))
}

func TestSuggestIgnoresNonCommandInput(t *testing.T) {
	assert.Empty(t, Suggest("", nil))
	assert.Empty(t, Suggest("hello", nil))
}

func TestSuggestIsCapped(t *testing.T) {
	var many []models.RepoRef
	for i := 0; i < 20; i++ {
		many = append(many, models.RepoRef{Workspace: "w", Repo: fmt.Sprintf("repo-%02d", i)})
	}
	got := Suggest("/repo rm w", many)
	assert.Len(t, got, MaxSuggestions)
}
