package notify

import (
	"context"
	"fmt"
	"net/http"
)

// TelegramSender delivers notifications via the Telegram Bot API.
type TelegramSender struct {
	token  string
	chatID string
	client *http.Client
}

// NewTelegramSender creates a TelegramSender for the given bot token and
// chat ID.
func NewTelegramSender(token, chatID string) *TelegramSender {
	return &TelegramSender{
		token:  token,
		chatID: chatID,
		client: newHTTPClient(),
	}
}

// Send posts a message to the configured chat via sendMessage, with the
// title rendered in bold.
func (t *TelegramSender) Send(ctx context.Context, title, message string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)
	return postJSON(ctx, t.client, "telegram", url, map[string]string{
		"chat_id":    t.chatID,
		"text":       fmt.Sprintf("*%s*\n%s", title, message),
		"parse_mode": "Markdown",
	})
}

// Name returns the sender identifier.
func (t *TelegramSender) Name() string {
	return "telegram"
}
