package bitbucket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shaunwen/myprs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUserUUID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		email, token, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "dev@example.com", email)
		assert.Equal(t, "secret", token)
		_, _ = w.Write([]byte(`{"uuid": "{abc-123}"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "dev@example.com", "secret")
	uuid, err := client.CurrentUserUUID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{abc-123}", uuid)
}

func TestCurrentUserUUIDMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "dev@example.com", "secret")
	_, err := client.CurrentUserUUID(context.Background())
	assert.Error(t, err)
}

func TestListAuthoredPRs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repositories/team/api/pullrequests", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "-updated_on", query.Get("sort"))
		assert.Equal(t, "50", query.Get("pagelen"))
		assert.Equal(t, `author.uuid="{abc-123}" AND state="OPEN"`, query.Get("q"))
		_, _ = w.Write([]byte(`{
			"values": [
				{
					"id": 42,
					"title": "Fix login",
					"description": "token expiry",
					"state": "OPEN",
					"updated_on": "2026-08-20T10:00:00Z",
					"author": {"display_name": "Dev One"},
					"links": {"html": {"href": "https://bitbucket.org/team/api/pull-requests/42"}}
				},
				{
					"id": 41,
					"title": "No description",
					"summary": {"raw": "from summary"},
					"state": "OPEN",
					"updated_on": "2026-08-19T10:00:00Z",
					"author": {"nickname": "dev2"},
					"links": {"html": {"href": "https://bitbucket.org/team/api/pull-requests/41"}}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "dev@example.com", "secret")
	ref := models.RepoRef{Workspace: "team", Repo: "api"}
	prs, err := client.ListAuthoredPRs(context.Background(), ref, "{abc-123}", models.StatusOpen)
	require.NoError(t, err)
	require.Len(t, prs, 2)

	assert.Equal(t, 42, prs[0].ID)
	assert.Equal(t, "Fix login", prs[0].Title)
	assert.Equal(t, "token expiry", prs[0].Description)
	assert.Equal(t, "Dev One", prs[0].Author)
	assert.Equal(t, "team", prs[0].Workspace)
	assert.Equal(t, "api", prs[0].Repo)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), prs[0].UpdatedOn)

	// Description falls back to summary.raw, author to nickname.
	assert.Equal(t, "from summary", prs[1].Description)
	assert.Equal(t, "dev2", prs[1].Author)
}

func TestListAuthoredPRsBadTimestampLeavesZeroTime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"values": [
				{
					"id": 7,
					"title": "Odd timestamp",
					"state": "OPEN",
					"updated_on": "not-a-date",
					"author": {"display_name": "Dev"},
					"links": {"html": {"href": "https://bitbucket.org/team/api/pull-requests/7"}}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "dev@example.com", "secret")
	ref := models.RepoRef{Workspace: "team", Repo: "api"}
	prs, err := client.ListAuthoredPRs(context.Background(), ref, "{abc}", models.StatusOpen)
	require.NoError(t, err)
	require.Len(t, prs, 1)
	assert.True(t, prs[0].UpdatedOn.IsZero())
}

func TestListAuthoredPRsAllOmitsStateConstraint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `author.uuid="{abc-123}"`, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"values": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "dev@example.com", "secret")
	ref := models.RepoRef{Workspace: "team", Repo: "api"}
	prs, err := client.ListAuthoredPRs(context.Background(), ref, "{abc-123}", models.StatusAll)
	require.NoError(t, err)
	assert.Empty(t, prs)
}

func TestListAuthoredPRsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "dev@example.com", "bad-token")
	ref := models.RepoRef{Workspace: "team", Repo: "api"}
	_, err := client.ListAuthoredPRs(context.Background(), ref, "{abc-123}", models.StatusOpen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
