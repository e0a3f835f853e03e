package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
)

// userFrom builds the directory record for a Telegram sender.
func userFrom(from *tgbotapi.User) *entities.User {
	return &entities.User{ID: from.ID, Handle: from.UserName}
}

// senderLabel renders @username when set, otherwise the full name,
// otherwise the numeric id.
func senderLabel(from *tgbotapi.User) string {
	if from.UserName != "" {
		return "@" + from.UserName
	}
	if name := strings.TrimSpace(from.FirstName + " " + from.LastName); name != "" {
		return name
	}
	return fmt.Sprintf("%d", from.ID)
}

func (h *Handler) handleStart(ctx context.Context, m *tgbotapi.Message) {
	user := userFrom(m.From)
	if err := h.users.Upsert(ctx, user); err != nil {
		log.Printf("⚠️ upsert user %d: %v", user.ID, err)
	}
	h.adminLog(ctx, "ℹ️ %s (id=%d) запустил(а) бота", senderLabel(m.From), user.ID)

	locale := m.From.LanguageCode
	msg := tgbotapi.NewMessage(m.Chat.ID, h.translator.T(locale, "greeting", map[string]any{"Name": senderLabel(m.From)}))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = h.formatter.MainMenu(locale)
	h.send(msg)
}

func (h *Handler) handlePrice(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	locale := cq.From.LanguageCode
	h.adminLog(ctx, "💳 %s (id=%d) открыл(а) ПРАЙС", senderLabel(cq.From), cq.From.ID)

	h.edit(cq, h.translator.T(locale, "pricelist", nil), h.formatter.BackKeyboard(locale))
	msg := tgbotapi.NewMessage(cq.Message.Chat.ID, h.translator.T(locale, "pricelist_question", nil))
	msg.ReplyMarkup = h.formatter.BackKeyboard(locale)
	h.send(msg)
}

func (h *Handler) handleSchedule(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	locale := cq.From.LanguageCode
	h.adminLog(ctx, "🗓️ %s (id=%d) открыл(а) Расписание", senderLabel(cq.From), cq.From.ID)

	events, err := h.events.ListFutureEvents(ctx)
	if err != nil {
		log.Printf("⚠️ list future events: %v", err)
		return
	}
	text, kb := h.formatter.ScheduleMenu(locale, events)
	h.edit(cq, text, kb)
}

func (h *Handler) handleBackMain(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	locale := cq.From.LanguageCode
	h.adminLog(ctx, "↩️ %s (id=%d) нажал(а) Назад", senderLabel(cq.From), cq.From.ID)
	h.edit(cq, h.translator.T(locale, "menu_prompt", nil), h.formatter.MainMenu(locale))
}

func (h *Handler) handleSignupRequest(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	locale := cq.From.LanguageCode
	eventID, err := strconv.ParseInt(strings.TrimPrefix(cq.Data, "ev:"), 10, 64)
	if err != nil {
		return
	}

	reply, err := h.approval.RequestSignup(ctx, locale, userFrom(cq.From), eventID)
	if err != nil && reply == "" {
		log.Printf("⚠️ request signup (event=%d, user=%d): %v", eventID, cq.From.ID, err)
		reply = h.translator.T(locale, "request_unavailable", nil)
	}
	msg := tgbotapi.NewMessage(cq.Message.Chat.ID, reply)
	msg.ReplyMarkup = h.formatter.BackKeyboard(locale)
	h.send(msg)
}

func (h *Handler) handleConfirmAnswer(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	locale := cq.From.LanguageCode
	parts := strings.Split(cq.Data, ":")
	if len(parts) != 3 {
		return
	}
	eventID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return
	}
	answer := domain.ConfirmNo
	if parts[1] == "yes" {
		answer = domain.ConfirmYes
	}

	if err := h.signups.HandleConfirmResponse(ctx, eventID, cq.From.ID, answer); err != nil {
		h.send(tgbotapi.NewMessage(cq.Message.Chat.ID, h.translator.T(locale, "confirm_unavailable", nil)))
	}
}

func (h *Handler) handleUserCancel(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	locale := cq.From.LanguageCode
	eventID, err := strconv.ParseInt(strings.TrimPrefix(cq.Data, "cancel:"), 10, 64)
	if err != nil {
		return
	}
	if err := h.signups.Cancel(ctx, eventID, cq.From.ID, domain.ByUser); err != nil {
		h.send(tgbotapi.NewMessage(cq.Message.Chat.ID, h.translator.T(locale, "cancel_unavailable", nil)))
	}
}

// forwardToOperator copies any free-form user message to the operator chat
// and remembers the copy for reply routing.
func (h *Handler) forwardToOperator(ctx context.Context, m *tgbotapi.Message) {
	user := userFrom(m.From)
	if err := h.users.Upsert(ctx, user); err != nil {
		log.Printf("⚠️ upsert user %d: %v", user.ID, err)
	}
	h.adminLog(ctx, "✉️ Сообщение от %s (id=%d)", senderLabel(m.From), user.ID)

	copied, err := h.api.CopyMessage(tgbotapi.NewCopyMessage(h.adminChatID, m.Chat.ID, m.MessageID))
	if err != nil {
		logSendErr("forward to operator", err)
		return
	}
	if err := h.relay.Save(ctx, copied.MessageID, m.From.ID); err != nil {
		log.Printf("⚠️ save relay entry: %v", err)
	}
}
