package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func logSendErr(op string, err error) {
	log.Printf("⚠️ telegram: %s: %v", op, err)
}

// send fires a message without caring about the result.
func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.api.Send(c); err != nil {
		logSendErr("send", err)
	}
}

// edit replaces the text and keyboard of the message behind a callback.
func (h *Handler) edit(cq *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(cq.Message.Chat.ID, cq.Message.MessageID, text, kb)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := h.api.Send(edit); err != nil {
		logSendErr("edit message", err)
	}
}

// adminLog keeps a running commentary in the operator chat. Best effort,
// like every other send.
func (h *Handler) adminLog(_ context.Context, format string, args ...any) {
	msg := tgbotapi.NewMessage(h.adminChatID, fmt.Sprintf(format, args...))
	if _, err := h.api.Send(msg); err != nil {
		logSendErr("admin log", err)
	}
}

// reply answers in the same chat as the incoming message.
func (h *Handler) reply(m *tgbotapi.Message, text string) {
	h.send(tgbotapi.NewMessage(m.Chat.ID, text))
}
