/*
Package telegram connects the application to the Bot API: the Notifier sends
order notifications, the CallbackRouter turns confirm keyboard presses into
ChangeConfirmStatus calls.
*/
package telegram

import (
	"context"
	"fmt"

	"tgorders/config"
	"tgorders/domain/order"
	"tgorders/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the part of *tgbotapi.BotAPI used here.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// NewBot logs in with the configured token.
func NewBot(cfg config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	if err := tgbotapi.SetLogger(botLogger{}); err != nil {
		return nil, fmt.Errorf("failed to set bot logger: %w", err)
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	bot.Debug = cfg.Debug

	logger.Info("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return bot, nil
}

// Notifier implements notification.Sender.
type Notifier struct {
	bot Bot
}

func NewNotifier(bot Bot) *Notifier {
	return &Notifier{bot: bot}
}

// Send posts an HTML message. A non-empty confirmOrderID attaches the
// Confirm/Cancel keyboard for that order.
func (n *Notifier) Send(ctx context.Context, chatID int64, text, confirmOrderID string) (order.OrderMessage, error) {
	if err := ctx.Err(); err != nil {
		return order.OrderMessage{}, err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if confirmOrderID != "" {
		msg.ReplyMarkup = ConfirmKeyboard(confirmOrderID)
	}

	sent, err := n.bot.Send(msg)
	if err != nil {
		return order.OrderMessage{}, fmt.Errorf("send message to %d: %w", chatID, err)
	}
	if sent.Chat != nil {
		chatID = sent.Chat.ID
	}
	return order.OrderMessage{MessageID: sent.MessageID, ChatID: chatID}, nil
}

// ClearKeyboard removes the inline keyboard from a sent message.
func (n *Notifier) ClearKeyboard(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := n.bot.Request(edit); err != nil {
		return fmt.Errorf("clear keyboard of message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

// ConfirmKeyboard has one row per answer.
func ConfirmKeyboard(orderID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Confirm", ConfirmCallback{OrderID: orderID, Result: true}.String()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel", ConfirmCallback{OrderID: orderID, Result: false}.String()),
		),
	)
}

type botLogger struct{}

func (botLogger) Println(v ...any) {
	logger.Debug(fmt.Sprint(v...), zap.String("component", "tgbotapi"))
}

func (botLogger) Printf(format string, v ...any) {
	logger.Debug(fmt.Sprintf(format, v...), zap.String("component", "tgbotapi"))
}
