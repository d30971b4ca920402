// Package jenkins integrates a Jenkins CI server into the command tree.
package jenkins

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/botslacks/botslacks/internal/retry"
)

// Job is one Jenkins job as listed by the server.
type Job struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Client is a minimal Jenkins REST client.
type Client struct {
	baseURL  string
	username string
	apiToken string
	http     *http.Client
}

// NewClient creates a client for the given Jenkins base URL. Username and
// token may be empty for anonymous read access.
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		apiToken: apiToken,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchJobs lists all jobs on the server. Authorization failures are marked
// permanent so callers stop retrying them.
func (c *Client) FetchJobs(ctx context.Context) ([]Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/json", nil)
	if err != nil {
		return nil, retry.Permanent(err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jenkins request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound:
		return nil, retry.Permanent(fmt.Errorf("jenkins responded %s", resp.Status))
	default:
		return nil, fmt.Errorf("jenkins responded %s", resp.Status)
	}

	var payload struct {
		Jobs []Job `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode jenkins response: %w", err)
	}
	return payload.Jobs, nil
}
