package stars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBase is the public GitHub REST endpoint.
const DefaultAPIBase = "https://api.github.com"

// ErrMalformed is returned when the upstream body has no usable star count.
var ErrMalformed = errors.New("malformed repository metadata")

// Fetcher returns the current star count of a repository.
type Fetcher interface {
	StarCount(ctx context.Context) (int, error)
}

// GitHubClient reads repository metadata from the GitHub REST API without
// authentication.
type GitHubClient struct {
	baseURL    string
	repo       string
	httpClient *http.Client
}

// NewGitHubClient creates a client for repo ("owner/name"). An empty baseURL
// selects DefaultAPIBase.
func NewGitHubClient(baseURL, repo string, timeout time.Duration) *GitHubClient {
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GitHubClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		repo:    strings.Trim(repo, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// repoMetadata is the subset of GET /repos/{owner}/{repo} we read.
type repoMetadata struct {
	StargazersCount *int `json:"stargazers_count"`
}

// StarCount fetches the repository's stargazers_count.
func (c *GitHubClient) StarCount(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/repos/"+c.repo, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("get repository %s: %w", c.repo, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("get repository %s: status %d: %s", c.repo, resp.StatusCode, string(body))
	}

	var meta repoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return 0, fmt.Errorf("decode repository %s: %w", c.repo, errors.Join(ErrMalformed, err))
	}
	if meta.StargazersCount == nil || *meta.StargazersCount < 0 {
		return 0, fmt.Errorf("repository %s: %w", c.repo, ErrMalformed)
	}
	return *meta.StargazersCount, nil
}

// RepoURL returns the browser URL of the repository.
func RepoURL(repo string) string {
	return "https://github.com/" + strings.Trim(repo, "/")
}
