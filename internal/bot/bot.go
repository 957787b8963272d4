package bot

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"opinion-collector/internal/model"
)

const maxDescriptionLen = 1000

var defaultClient = http.Client{Timeout: 15 * time.Second}

// Notifier posts question reports into the moderators' Telegram chat.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

// New authorizes against the public Telegram API.
func New(token string, chatID int64, log *zap.Logger) (*Notifier, error) {
	return NewWithClient(token, tgbotapi.APIEndpoint, chatID, nil, log)
}

// NewWithClient talks to a custom endpoint, e.g. a local Bot API server.
// endpoint is a format string taking the token and the method name.
func NewWithClient(token, endpoint string, chatID int64, client tgbotapi.HTTPClient, log *zap.Logger) (*Notifier, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if chatID == 0 {
		return nil, fmt.Errorf("moderator chat id is required")
	}
	if client == nil {
		client = &defaultClient
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log = log.Named("bot")
	log.Info("bot authorized", zap.String("account", api.Self.UserName), zap.Int64("chat_id", chatID))

	return &Notifier{api: api, chatID: chatID, log: log}, nil
}

// NotifyQuestionReport sends one message describing the report.
func (n *Notifier) NotifyQuestionReport(ctx context.Context, event model.Event) error {
	if !event.IsQuestionReport() {
		return fmt.Errorf("event %s is not a question report", event.ID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.sendText(n.chatID, formatQuestionReport(event)); err != nil {
		return fmt.Errorf("send report %s: %w", event.ID, err)
	}
	n.log.Debug("report sent", zap.Stringer("event_id", event.ID))
	return nil
}

func (n *Notifier) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := n.api.Send(msg)
	return err
}

func formatQuestionReport(event model.Event) string {
	var sb strings.Builder

	sb.WriteString("🚩 <b>Question reported</b>\n")
	sb.WriteString(fmt.Sprintf("❓ Question: <code>%s</code>\n", event.QuestionID.String()))
	sb.WriteString(fmt.Sprintf("👤 Reporter: <code>%s</code>\n", event.UserID))
	sb.WriteString(fmt.Sprintf("🆔 Event: <code>%s</code>", event.ID))

	if desc := strings.TrimSpace(event.Description); desc != "" {
		sb.WriteString(fmt.Sprintf("\n\n📝 %s", html.EscapeString(shorten(desc, maxDescriptionLen))))
	}
	return sb.String()
}

func shorten(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-1]) + "…"
}
