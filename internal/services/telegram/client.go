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

	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/metrics"
)

// ErrNotConfigured is returned when no bot token is set
var ErrNotConfigured = errors.New("telegram bot token is not configured")

// Client talks to the Telegram Bot API
type Client struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new Bot API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		apiURL:     strings.TrimRight(cfg.TelegramAPIURL, "/"),
		token:      cfg.TelegramBotToken,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether a bot token is configured
func (c *Client) Enabled() bool {
	return c.token != ""
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// SendMessage posts an HTML message to chatID and returns its message id
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (int64, error) {
	resp, err := c.call(ctx, "sendMessage", map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return 0, err
	}
	return resp.Result.MessageID, nil
}

// EditMessage replaces the text of a message previously sent to chatID.
// Telegram rejects edits that leave the text unchanged; those count as done.
func (c *Client) EditMessage(ctx context.Context, chatID, messageID int64, text string) error {
	_, err := c.call(ctx, "editMessageText", map[string]any{
		"chat_id":                  chatID,
		"message_id":               messageID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any) (*apiResponse, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, stripURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, stripURL(err))
	}
	defer resp.Body.Close()

	var result apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode != http.StatusOK || !result.OK {
		if decodeErr == nil && result.Description != "" {
			return nil, fmt.Errorf("telegram error: %s", result.Description)
		}
		return nil, fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	c.logger.WithField("method", method).Debug("Telegram request succeeded")
	return &result, nil
}

// stripURL drops the request URL from err since it carries the bot token
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// MessageEditor delivers every render of a sweep by editing one message
type MessageEditor struct {
	client    *Client
	chatID    int64
	messageID int64
}

// NewMessageEditor sends the placeholder text to chatID and returns an
// editor bound to the resulting message
func NewMessageEditor(ctx context.Context, client *Client, chatID int64, placeholder string) (*MessageEditor, error) {
	messageID, err := client.SendMessage(ctx, chatID, placeholder)
	if err != nil {
		metrics.Deliveries.WithLabelValues("failed").Inc()
		return nil, err
	}
	return &MessageEditor{client: client, chatID: chatID, messageID: messageID}, nil
}

// MessageID returns the id of the edited message
func (e *MessageEditor) MessageID() int64 {
	return e.messageID
}

// Deliver replaces the message text with text
func (e *MessageEditor) Deliver(ctx context.Context, text string) error {
	return e.client.EditMessage(ctx, e.chatID, e.messageID, text)
}
