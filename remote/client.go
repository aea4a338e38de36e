// Package remote talks to a GitHub-compatible releases API: it lists releases, describes one release and streams release archives.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/codingforme/bingolink-cli/constant"
	"github.com/codingforme/bingolink-cli/network"
	"golang.org/x/sync/singleflight"
)

// latest is the path segment selecting the most recent published release.
const latest = "latest"

// maxErrorBody bounds how much of a failed response is quoted in StatusError.
const maxErrorBody = 512

// Client holds the releases endpoint, the HTTP client and an optional bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	sf         singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Default is network.Client. A nil client is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithToken sets the bearer token sent in the Authorization header.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// New creates a Client for a releases endpoint such as https://api.github.com/repos/owner/repo/releases.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("remote: base URL must not be empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("remote: invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: network.Client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the releases endpoint the client was created for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Releases lists every published release, newest first as ordered by the server.
func (c *Client) Releases(ctx context.Context) ([]Release, error) {
	var releases []Release
	if err := c.getJSON(ctx, c.baseURL, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

// Release describes the release with the given tag, or the latest release when tag is empty.
// Concurrent calls for the same tag share one request.
func (c *Client) Release(ctx context.Context, tag string) (*Release, error) {
	endpoint := c.baseURL + "/" + latest
	key := latest
	if tag != "" {
		endpoint = c.baseURL + "/tags/" + url.PathEscape(tag)
		key = "tags/" + tag
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// The shared call must not die because the first caller gave up, but it keeps that caller's deadline.
		fetchCtx, cancel := detachCancel(ctx)
		defer cancel()

		var rel Release
		if err := c.getJSON(fetchCtx, endpoint, &rel); err != nil {
			return nil, err
		}
		if rel.TagName == "" {
			return nil, fmt.Errorf("%w: release without tag_name from %s", ErrDecode, endpoint)
		}
		return rel, nil
	})
	if err != nil {
		return nil, err
	}

	rel := v.(Release)
	return &rel, nil
}

// Open issues a GET for rawURL and returns the response body for streaming.
// Non-200 responses are reported as *StatusError.
func (c *Client) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, rawURL, "application/octet-stream")
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	resp, err := c.do(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if ctx.Err() != nil {
			return Transport(ctx, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrDecode, endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Transport(ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Code: resp.StatusCode,
			URL:  endpoint,
			Body: strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

// detachCancel returns a context that survives cancellation of parent but still honours its deadline.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx)
}
