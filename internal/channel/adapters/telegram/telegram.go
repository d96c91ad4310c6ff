// Package telegram sends outbound replies through the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chatrelay/chatrelay/internal/channel"
)

// Type is the Telegram channel type.
const Type = channel.ChannelType("telegram")

// Adapter implements channel.Sender for Telegram.
type Adapter struct {
	logger *slog.Logger
	token  string

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

// newBotForTest, when set, replaces the Bot API client constructor.
var newBotForTest func(token string) (*tgbotapi.BotAPI, error)

// NewAdapter creates a Telegram sender using the given bot token. An empty
// token is accepted; sends then fail at request time. The Bot API client is
// constructed lazily on first send so a bad token does not fail startup.
func NewAdapter(log *slog.Logger, token string) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		logger: log.With(slog.String("adapter", "telegram")),
		token:  strings.TrimSpace(token),
	}
}

// Type returns the Telegram channel type.
func (a *Adapter) Type() channel.ChannelType {
	return Type
}

func (a *Adapter) getOrCreateBot() (*tgbotapi.BotAPI, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bot != nil {
		return a.bot, nil
	}
	construct := tgbotapi.NewBotAPI
	if newBotForTest != nil {
		construct = newBotForTest
	}
	bot, err := construct(a.token)
	if err != nil {
		a.logger.Error("create bot failed", slog.Any("error", err))
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	a.bot = bot
	return bot, nil
}

// Send delivers msg via the sendMessage method, using the target as chat id.
func (a *Adapter) Send(ctx context.Context, msg channel.OutboundMessage) error {
	if a.token == "" {
		return fmt.Errorf("telegram bot token is not configured")
	}
	target := strings.TrimSpace(msg.Target)
	if target == "" {
		return fmt.Errorf("telegram target is required")
	}
	chatID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram target %q is not a chat id: %w", target, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	bot, err := a.getOrCreateBot()
	if err != nil {
		return err
	}
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, msg.Text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	a.logger.Debug("message sent", slog.Int64("chat_id", chatID))
	return nil
}
