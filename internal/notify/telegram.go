package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// defaultAPIBase is the Telegram Bot API endpoint.
const defaultAPIBase = "https://api.telegram.org"

// Telegram delivers alerts via the Telegram Bot API sendMessage call.
type Telegram struct {
	token   string
	chatID  string
	apiBase string
	client  *http.Client
	logger  *log.Logger
}

// TelegramOption customizes a Telegram notifier.
type TelegramOption func(*Telegram)

// WithAPIBase overrides the API base URL. Used by tests.
func WithAPIBase(base string) TelegramOption {
	return func(t *Telegram) { t.apiBase = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) TelegramOption {
	return func(t *Telegram) { t.client = client }
}

// NewTelegram creates a Telegram notifier for the given bot token and
// chat ID.
func NewTelegram(token, chatID string, logger *log.Logger, opts ...TelegramOption) *Telegram {
	t := &Telegram{
		token:   token,
		chatID:  chatID,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
	if t.logger == nil {
		t.logger = log.New(log.Writer(), "[telegram] ", log.LstdFlags)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Compile-time interface check.
var _ Notifier = (*Telegram)(nil)

// Notify posts the text to the configured chat. Returns false on any
// failure after logging it.
func (t *Telegram) Notify(ctx context.Context, text string) bool {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)

	payload := map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		t.logger.Printf("marshal payload: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.logger.Printf("create request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Printf("send request: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		t.logger.Printf("unexpected status %d: %s", resp.StatusCode, string(respBody))
		return false
	}

	return true
}
