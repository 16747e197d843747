package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mfbx9da4/meanwhile/pkg/httputil"
)

// Client provides access to the GitHub contents API.
// It handles HTTP requests with automatic retries and authentication.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a GitHub API client.
// Pass an empty string for token to use unauthenticated requests
// (read-only, lower rate limits).
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.github.com",
	}
}

// FileContent is a file fetched from a repository.
type FileContent struct {
	Path    string
	SHA     string
	Content []byte
}

// Commit describes a commit created via the contents API.
type Commit struct {
	SHA     string
	HTMLURL string
}

// FetchFile retrieves a file and its blob SHA from a repository.
// The SHA is required to update the file with [Client.CommitFile].
func (c *Client) FetchFile(ctx context.Context, owner, repo, path string) (*FileContent, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)

	var fileResp contentResponse
	if err := c.do(ctx, "GET", url, nil, &fileResp); err != nil {
		return nil, err
	}

	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(fileResp.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	return &FileContent{
		Path:    fileResp.Path,
		SHA:     fileResp.SHA,
		Content: content,
	}, nil
}

// CommitFile creates or updates a file in a repository with a single
// commit. When the file already exists its current blob SHA is fetched
// first, as the contents API requires it for updates.
func (c *Client) CommitFile(ctx context.Context, owner, repo, path string, content []byte, message string) (*Commit, error) {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return nil, err
	}

	var sha string
	if existing, err := c.FetchFile(ctx, owner, repo, path); err == nil {
		sha = existing.SHA
	}

	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		body["sha"] = sha
	}

	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)

	var putResp commitResponse
	if err := c.do(ctx, "PUT", url, body, &putResp); err != nil {
		return nil, err
	}

	return &Commit{
		SHA:     putResp.Commit.SHA,
		HTMLURL: putResp.Commit.HTMLURL,
	}, nil
}

// do issues a request and decodes the JSON response into out.
// Transient failures are wrapped as retryable so that the whole request
// is attempted again with backoff.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		var reqBody io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("marshal request: %w", err)
			}
			reqBody = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("send request: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			respBody, _ := io.ReadAll(resp.Body)
			return &httputil.RetryableError{
				Err: fmt.Errorf("GitHub API error (%d): %s", resp.StatusCode, string(respBody)),
			}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			respBody, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("GitHub API error (%d): %s", resp.StatusCode, string(respBody))
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// setHeaders sets common headers for GitHub API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if req.Method == "PUT" || req.Method == "POST" {
		req.Header.Set("Content-Type", "application/json")
	}
}

// contentResponse is the contents API GET payload.
type contentResponse struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	SHA     string `json:"sha"`
	Size    int    `json:"size"`
	Content string `json:"content"`
}

// commitResponse is the contents API PUT payload.
type commitResponse struct {
	Commit struct {
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"commit"`
}
