package vonage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://rest.nexmo.com"

// statusAccepted is the per-message status Vonage returns on success.
const statusAccepted = "0"

// Logger is the logging interface consumed by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client sends SMS messages through the Vonage SMS API.
// Messages are sent with type "unicode" so Greek text survives intact.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	sender     string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a Vonage SMS client. The sender is the alphanumeric
// sender id shown to the customer.
func NewClient(apiKey, apiSecret, sender string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		sender:    sender,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send delivers one text message to an E.164 number and returns the
// provider message id. Transport failures and provider rejections are both
// dispatch failures; the caller decides whether to retry.
func (c *Client) Send(ctx context.Context, toE164 string, text string) (string, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return "", ErrNotConfigured
	}

	// Vonage expects the number without the leading plus.
	to := strings.TrimPrefix(toE164, "+")

	body, err := json.Marshal(sendRequest{
		APIKey:    c.apiKey,
		APISecret: c.apiSecret,
		From:      c.sender,
		To:        to,
		Text:      text,
		Type:      "unicode",
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sms/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	var parsed sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if len(parsed.Messages) == 0 {
		return "", fmt.Errorf("%w: empty messages array", ErrInvalidResponse)
	}

	msg := parsed.Messages[0]
	if msg.Status != statusAccepted {
		c.log.Warn("Vonage rejected message: status=%s, error=%s", msg.Status, msg.ErrorText)
		return "", fmt.Errorf("%w: status=%s: %s", ErrSendFailed, msg.Status, msg.ErrorText)
	}

	c.log.Info("SMS accepted by provider: message_id=%s", msg.MessageID)
	return msg.MessageID, nil
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}
