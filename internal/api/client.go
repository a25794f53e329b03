// Package api is the authenticated client for the Claude sessions API:
// fixed headers and timeouts, typed failures for non-2xx responses, and
// cursor-based pagination over the events endpoint.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/auth"
	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	anthropicBeta    = "ccr-byoc-2025-07-29"

	requestTimeout = 30 * time.Second
	connectTimeout = 10 * time.Second
)

// ValidateSessionID checks the session ID shape ("session_" plus at least
// eight further characters) before any network call is made.
func ValidateSessionID(id string) error {
	if !strings.HasPrefix(id, "session_") || len(id) < 16 {
		return &InvalidSessionIDError{ID: id}
	}
	return nil
}

// Client talks to the sessions API. The organization UUID is looked up
// once at construction and cached for the client's lifetime, so
// concurrently running clients stay fully independent.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	orgUUID     string

	// progress, when set, is invoked with the running event count during
	// paginated fetches.
	progress func(fetched int)
}

// NewClient resolves credentials, performs the organization profile
// lookup and returns a ready client.
func NewClient(ctx context.Context) (*Client, error) {
	creds, err := auth.LoadCredentials()
	if err != nil {
		return nil, err
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
				TLSHandshakeTimeout: connectTimeout,
			},
		},
		baseURL:     defaultBaseURL,
		accessToken: creds.ClaudeAIOAuth.AccessToken,
	}

	orgUUID, err := c.fetchOrgUUID(ctx)
	if err != nil {
		return nil, err
	}
	c.orgUUID = orgUUID
	return c, nil
}

// SetProgress registers a callback for event-fetch progress updates.
func (c *Client) SetProgress(fn func(fetched int)) {
	c.progress = fn
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("x-organization-uuid", c.orgUUID)
	req.Header.Set("anthropic-beta", anthropicBeta)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")
}

// get issues an authenticated GET and decodes the 2xx response body into
// out. Non-2xx responses become an APIError carrying the body verbatim.
func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to the sessions API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// fetchOrgUUID resolves the organization UUID for the token. The profile
// endpoint uses the bare token, without the session headers.
func (c *Client) fetchOrgUUID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/oauth/profile", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProfileError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProfileError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProfileError{Err: &APIError{Status: resp.StatusCode, Body: string(body)}}
	}

	var profile models.ProfileResponse
	if err := json.Unmarshal(body, &profile); err != nil {
		return "", fmt.Errorf("failed to parse profile response: %w", err)
	}
	return profile.Organization.UUID, nil
}

// ListSessions fetches all remote sessions.
func (c *Client) ListSessions(ctx context.Context) ([]models.Session, error) {
	var resp models.SessionsListResponse
	if err := c.get(ctx, c.baseURL+"/v1/sessions", &resp); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return resp.Data, nil
}

// GetSession fetches a single session's metadata by ID.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	if err := c.get(ctx, c.baseURL+"/v1/sessions/"+url.PathEscape(sessionID), &session); err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
	}
	return &session, nil
}

// GetEvents fetches a session's events, following the after_id cursor
// until the server reports no more pages or maxEvents is reached.
// maxEvents == 0 means unbounded. When the cap lands mid-page, the excess
// from that page is discarded rather than re-fetched. A failed page
// aborts the whole fetch; no partial result is returned.
func (c *Client) GetEvents(ctx context.Context, sessionID string, maxEvents int) ([]models.SessionEvent, error) {
	var all []models.SessionEvent
	afterID := ""

	for page := 1; ; page++ {
		u, err := url.Parse(c.baseURL + "/v1/sessions/" + url.PathEscape(sessionID) + "/events")
		if err != nil {
			return nil, fmt.Errorf("failed to build events URL: %w", err)
		}
		if afterID != "" {
			q := u.Query()
			q.Set("after_id", afterID)
			u.RawQuery = q.Encode()
		}

		var resp models.EventsResponse
		if err := c.get(ctx, u.String(), &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch events for session %s (page %d): %w", sessionID, page, err)
		}

		all = append(all, resp.Data...)
		if c.progress != nil {
			c.progress(len(all))
		}

		if maxEvents > 0 && len(all) >= maxEvents {
			all = all[:maxEvents]
			break
		}
		if !resp.HasMore {
			break
		}
		afterID = resp.LastID
	}

	return all, nil
}

// GetLoglines fetches the session_ingress loglines for a session. The
// endpoint is not paginated.
func (c *Client) GetLoglines(ctx context.Context, sessionID string) ([]models.Logline, error) {
	var resp models.IngressResponse
	if err := c.get(ctx, c.baseURL+"/v1/session_ingress/session/"+url.PathEscape(sessionID), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch loglines for session %s: %w", sessionID, err)
	}
	return resp.Loglines, nil
}
