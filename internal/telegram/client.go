// Package telegram is a minimal Bot API client for alert messages and
// single-use chat invite links.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// ErrNotConfigured is returned when no bot token is set.
var ErrNotConfigured = errors.New("telegram not configured")

// APIError is a Bot API response with ok=false.
type APIError struct {
	StatusCode  int
	ErrorCode   int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram error: %d %s", e.StatusCode, e.Description)
}

// Client calls the Bot API. Calls are throttled to one per second so bursts
// of alerts stay under the per-chat limit.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Bot API client. An empty baseURL uses DefaultBaseURL.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Configured returns true if a bot token is set.
func (c *Client) Configured() bool {
	return c != nil && c.token != ""
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// call posts payload to method and decodes the result into out (if non-nil).
func (c *Client) call(ctx context.Context, method string, payload, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the URL embeds the token; keep only the cause
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("telegram %s: request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var r apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("telegram %s: status %d: invalid response: %w", method, resp.StatusCode, err)
	}
	if !r.OK {
		return &APIError{StatusCode: resp.StatusCode, ErrorCode: r.ErrorCode, Description: r.Description}
	}
	if out != nil {
		if err := json.Unmarshal(r.Result, out); err != nil {
			return fmt.Errorf("telegram %s: invalid result: %w", method, err)
		}
	}
	return nil
}

// SendMessage posts a plain text message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	return c.call(ctx, "sendMessage", map[string]any{
		"chat_id": chatID,
		"text":    text,
	}, nil)
}

// CreateChatInviteLink creates an invite link usable by memberLimit users
// until expire.
func (c *Client) CreateChatInviteLink(ctx context.Context, chatID string, memberLimit int, expire time.Time) (string, error) {
	var result struct {
		InviteLink string `json:"invite_link"`
	}
	err := c.call(ctx, "createChatInviteLink", map[string]any{
		"chat_id":      chatID,
		"member_limit": memberLimit,
		"expire_date":  expire.Unix(),
	}, &result)
	if err != nil {
		return "", err
	}
	if result.InviteLink == "" {
		return "", fmt.Errorf("telegram createChatInviteLink: empty invite link")
	}
	return result.InviteLink, nil
}
