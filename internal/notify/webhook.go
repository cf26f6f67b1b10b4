package notify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BaseURL is the prefix every webhook URL built by NewWebhook starts with.
const BaseURL = "https://discordapp.com/api/webhooks/"

// altBaseURL is the newer domain, accepted when parsing.
const altBaseURL = "https://discord.com/api/webhooks/"

// ErrInvalidWebhook indicates a URL that is not a webhook URL.
var ErrInvalidWebhook = errors.New("invalid webhook url")

// Webhook holds webhook credentials.
type Webhook struct {
	URL      string
	ServerID int64
	APIKey   string
}

// ParseWebhook splits a webhook URL into server id and API key.
func ParseWebhook(url string) (Webhook, error) {
	url = strings.TrimSpace(url)

	var rest string
	switch {
	case strings.HasPrefix(url, BaseURL):
		rest = strings.TrimPrefix(url, BaseURL)
	case strings.HasPrefix(url, altBaseURL):
		rest = strings.TrimPrefix(url, altBaseURL)
	default:
		return Webhook{}, fmt.Errorf("%w: %q does not start with %s", ErrInvalidWebhook, url, BaseURL)
	}

	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Webhook{}, fmt.Errorf("%w: expected %s<id>/<key>", ErrInvalidWebhook, BaseURL)
	}

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Webhook{}, fmt.Errorf("%w: server id %q is not a number", ErrInvalidWebhook, parts[0])
	}

	return Webhook{URL: url, ServerID: id, APIKey: parts[1]}, nil
}

// NewWebhook assembles the webhook URL from a server id and API key.
func NewWebhook(serverID int64, apiKey string) Webhook {
	return Webhook{
		URL:      BaseURL + strconv.FormatInt(serverID, 10) + "/" + apiKey,
		ServerID: serverID,
		APIKey:   apiKey,
	}
}
