package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"clubbot/internal/ports/output"
)

var _ output.Notifier = (*Notifier)(nil)

// Notifier sends best-effort messages over the Telegram Bot API. Delivery
// failures are logged and swallowed: the core never retries and never
// branches on them.
type Notifier struct {
	api         *tgbotapi.BotAPI
	adminChatID int64
}

func NewNotifier(api *tgbotapi.BotAPI, adminChatID int64) *Notifier {
	return &Notifier{api: api, adminChatID: adminChatID}
}

// Notify sends text to a user chat, with the choices rendered as inline
// buttons, one per row. It reports whether the send went through.
func (n *Notifier) Notify(_ context.Context, userID int64, text string, choices ...output.Choice) bool {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := choiceKeyboard(choices); kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("⚠️ notify user %d: %v", userID, err)
		return false
	}
	return true
}

// LogToOperator sends text to the operator chat and returns the message id
// for reply correlation, or 0 when the send failed.
func (n *Notifier) LogToOperator(_ context.Context, text string, choices ...output.Choice) int {
	msg := tgbotapi.NewMessage(n.adminChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb := choiceKeyboard(choices); kb != nil {
		msg.ReplyMarkup = kb
	}
	sent, err := n.api.Send(msg)
	if err != nil {
		log.Printf("⚠️ notify operator: %v", err)
		return 0
	}
	return sent.MessageID
}

func choiceKeyboard(choices []output.Choice) *tgbotapi.InlineKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Data),
		))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
