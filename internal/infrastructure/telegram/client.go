package telegram

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/easayliu/media-sorter/internal/infrastructure/config"
	"github.com/easayliu/media-sorter/pkg/logger"
)

type Client struct {
	config *config.TelegramConfig
	bot    *tgbotapi.BotAPI
}

// NotificationMessage 通知消息
type NotificationMessage struct {
	Type      string
	Title     string
	Content   string
	Timestamp time.Time
}

func NewClient(cfg *config.TelegramConfig) *Client {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to create Telegram bot", "error", err)
		return &Client{
			config: cfg,
			bot:    nil,
		}
	}

	logger.Info("Telegram bot connected successfully", "username", bot.Self.UserName)

	return &Client{
		config: cfg,
		bot:    bot,
	}
}

func (c *Client) SendMessage(chatID int64, text string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	msg := tgbotapi.NewMessage(chatID, cleanUTF8(text))
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// SendNotification 向所有配置的会话广播通知
func (c *Client) SendNotification(msg *NotificationMessage) error {
	text := formatNotification(msg)

	var lastErr error
	for _, chatID := range c.config.ChatIDs {
		if err := c.SendMessage(chatID, text); err != nil {
			logger.Error("Failed to send notification", "chatID", chatID, "error", err)
			lastErr = err
		}
	}
	return lastErr
}

func formatNotification(msg *NotificationMessage) string {
	var b strings.Builder
	b.WriteString(msg.Title)
	if msg.Content != "" {
		b.WriteString("\n")
		b.WriteString(msg.Content)
	}
	b.WriteString("\n")
	b.WriteString(msg.Timestamp.Format("2006-01-02 15:04:05"))
	return b.String()
}

// cleanUTF8 确保文本是有效的UTF-8编码
func cleanUTF8(text string) string {
	if !utf8.ValidString(text) {
		// 替换无效的UTF-8字符
		return strings.ToValidUTF8(text, "?")
	}
	return text
}
