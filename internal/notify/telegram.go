package notify

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of *tgbotapi.BotAPI the sink uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends notifications to one chat through a bot.
type Telegram struct {
	token  string
	chatID int64

	mu  sync.Mutex
	bot sender
}

// NewTelegram returns a sink for chatID. The bot connects on first use.
func NewTelegram(token string, chatID int64) *Telegram {
	return &Telegram{token: token, chatID: chatID}
}

func (t *Telegram) Available() bool {
	if t == nil || t.chatID == 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bot != nil || t.token != ""
}

func (t *Telegram) client() (sender, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	bot, err := tgbotapi.NewBotAPI(t.token)
	if err != nil {
		return nil, fmt.Errorf("connecting telegram bot: %w", err)
	}
	t.bot = bot
	return bot, nil
}

func (t *Telegram) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bot, err := t.client()
	if err != nil {
		return err
	}

	text := n.Title
	if n.Body != "" {
		text += "\n" + n.Body
	}
	if _, err := bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
