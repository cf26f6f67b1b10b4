package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"
)

// maxContentLen is the longest message a webhook accepts, in characters.
const maxContentLen = 2000

// DefaultRetries is used when WithRetries is not given.
const DefaultRetries = 3

// Client posts messages to a webhook.
type Client struct {
	hook     Webhook
	endpoint string
	username string
	http     *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithRetries sets how many times a failed delivery is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.http.RetryMax = n
	}
}

// WithBackoff sets the minimum and maximum wait between retries.
func WithBackoff(min, max time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = min
		c.http.RetryWaitMax = max
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = d
	}
}

// WithEndpoint posts to url instead of the webhook URL, e.g. through a
// relay.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithUsername overrides the name messages are posted under.
func WithUsername(name string) Option {
	return func(c *Client) {
		c.username = name
	}
}

// NewClient creates a Client for hook.
func NewClient(hook Webhook, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = DefaultRetries
	rc.HTTPClient.Timeout = 10 * time.Second

	c := &Client{hook: hook, endpoint: hook.URL, http: rc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Webhook returns the webhook the client posts to.
func (c *Client) Webhook() Webhook {
	return c.hook
}

type payload struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

// Send posts content to the webhook, retrying on connection errors and
// 5xx/429 responses. Content longer than the webhook limit is truncated.
func (c *Client) Send(ctx context.Context, content string) error {
	if utf8.RuneCountInString(content) > maxContentLen {
		content = string([]rune(content)[:maxContentLen-3]) + "..."
	}

	body, err := json.Marshal(payload{Content: content, Username: c.username})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
