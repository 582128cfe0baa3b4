// Package bitbucket implements the remote API collaborator that lists pull
// requests authored by the session user.
package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shaunwen/myprs/internal/models"
)

const (
	defaultTimeout = 15 * time.Second
	pageLen        = "50"
)

// Client talks to the Bitbucket v2 API using basic auth with an email and
// API token.
type Client struct {
	http    *http.Client
	baseURL string
	email   string
	token   string
}

// NewClient creates a client for the given base URL and credentials.
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		email:   email,
		token:   token,
	}
}

// CurrentUserUUID resolves the UUID of the authenticated user. The UUID
// scopes every pull request query to PRs the session user authored.
func (c *Client) CurrentUserUUID(ctx context.Context) (string, error) {
	var payload struct {
		UUID string `json:"uuid"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/user", &payload); err != nil {
		return "", fmt.Errorf("failed to fetch current user: %w", err)
	}
	if payload.UUID == "" {
		return "", fmt.Errorf("user response carried no uuid")
	}
	return payload.UUID, nil
}

// ListAuthoredPRs fetches the pull requests in workspace/repo authored by
// authorUUID, constrained by the status filter (All places no state
// constraint). Results arrive most recently updated first.
func (c *Client) ListAuthoredPRs(ctx context.Context, ref models.RepoRef, authorUUID string, status models.Status) ([]*models.PullRequest, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/repositories/%s/%s/pullrequests", c.baseURL, ref.Workspace, ref.Repo))
	if err != nil {
		return nil, fmt.Errorf("failed to build pull request endpoint for %s: %w", ref, err)
	}

	query := endpoint.Query()
	query.Set("sort", "-updated_on")
	query.Set("pagelen", pageLen)
	query.Set("q", buildQuery(authorUUID, status))
	endpoint.RawQuery = query.Encode()

	var payload listResponse
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, fmt.Errorf("failed to list pull requests for %s: %w", ref, err)
	}

	prs := make([]*models.PullRequest, 0, len(payload.Values))
	for _, value := range payload.Values {
		prs = append(prs, value.toPullRequest(ref))
	}
	return prs, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// buildQuery assembles the Bitbucket query expression scoping results to
// the author and, unless All, the requested state.
func buildQuery(authorUUID string, status models.Status) string {
	terms := []string{fmt.Sprintf("author.uuid=%q", authorUUID)}
	if state := status.QueryState(); state != "" {
		terms = append(terms, fmt.Sprintf("state=%q", state))
	}
	return strings.Join(terms, " AND ")
}

type listResponse struct {
	Values []prValue `json:"values"`
}

type prValue struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Summary     *struct {
		Raw *string `json:"raw"`
	} `json:"summary"`
	State     string `json:"state"`
	UpdatedOn string `json:"updated_on"`
	Author    struct {
		DisplayName *string `json:"display_name"`
		Nickname    *string `json:"nickname"`
	} `json:"author"`
	Links struct {
		HTML struct {
			Href string `json:"href"`
		} `json:"html"`
	} `json:"links"`
}

func (v prValue) toPullRequest(ref models.RepoRef) *models.PullRequest {
	description := ""
	switch {
	case v.Description != nil:
		description = *v.Description
	case v.Summary != nil && v.Summary.Raw != nil:
		description = *v.Summary.Raw
	}

	author := "unknown"
	switch {
	case v.Author.DisplayName != nil && *v.Author.DisplayName != "":
		author = *v.Author.DisplayName
	case v.Author.Nickname != nil && *v.Author.Nickname != "":
		author = *v.Author.Nickname
	}

	// Bitbucket timestamps are ISO-8601; a malformed value leaves the
	// zero time rather than failing the whole fetch.
	updatedOn, _ := time.Parse(time.RFC3339, v.UpdatedOn)

	return &models.PullRequest{
		Workspace:   ref.Workspace,
		Repo:        ref.Repo,
		ID:          v.ID,
		Title:       v.Title,
		Description: description,
		Author:      author,
		State:       v.State,
		UpdatedOn:   updatedOn,
		URL:         v.Links.HTML.Href,
	}
}
