package publish

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

// TelegramMaxLength is Telegram's message text limit.
const TelegramMaxLength = 4096

// telegramBot is the part of *tgbotapi.BotAPI the publisher uses.
type telegramBot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// telegramConnect logs in and returns the bot and its username.
type telegramConnect func(token string) (telegramBot, string, error)

func connectTelegram(token string) (telegramBot, string, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, "", err
	}
	return bot, bot.Self.UserName, nil
}

// Telegram posts statuses to one chat as a bot. The bot logs in on the first
// Verify or Publish.
type Telegram struct {
	token   string
	chatID  int64
	connect telegramConnect
	bot     telegramBot
	account string
}

// NewTelegram creates a Telegram publisher for a bot token and target chat.
func NewTelegram(token string, chatID int64) *Telegram {
	return &Telegram{token: token, chatID: chatID, connect: connectTelegram}
}

func (t *Telegram) Platform() string { return "telegram" }

func (t *Telegram) MaxLength() int { return TelegramMaxLength }

// Verify logs in with getMe and returns the bot's username.
func (t *Telegram) Verify(ctx context.Context) (string, error) {
	if t.bot != nil {
		return t.account, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	bot, account, err := t.connect(t.token)
	if err != nil {
		return "", fmt.Errorf("could not verify telegram credentials: %w", err)
	}
	t.bot, t.account = bot, account
	return account, nil
}

// Publish sends status as a message to the configured chat.
func (t *Telegram) Publish(ctx context.Context, status string) (string, error) {
	if err := checkLength(status, TelegramMaxLength); err != nil {
		return "", err
	}
	if _, err := t.Verify(ctx); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, status))
	if err != nil {
		return "", fmt.Errorf("could not send telegram message to chat %d: %w", t.chatID, err)
	}
	return strconv.Itoa(m.MessageID), nil
}
