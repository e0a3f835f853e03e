package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"clubbot/internal/ports/input"
	"clubbot/internal/ports/output"
)

// Handler routes Telegram updates to the use cases. Everything sent from
// here is best effort: send errors are logged by the notifier and dropped.
type Handler struct {
	api         *tgbotapi.BotAPI
	approval    input.ApprovalUseCase
	signups     input.SignupUseCase
	events      input.EventUseCase
	users       output.UserRepository
	translator  output.T
	formatter   *Formatter
	relay       *RelayStore
	adminChatID int64
}

func NewHandler(
	api *tgbotapi.BotAPI,
	approval input.ApprovalUseCase,
	signups input.SignupUseCase,
	events input.EventUseCase,
	users output.UserRepository,
	translator output.T,
	relay *RelayStore,
	adminChatID int64,
) *Handler {
	return &Handler{
		api:         api,
		approval:    approval,
		signups:     signups,
		events:      events,
		users:       users,
		translator:  translator,
		formatter:   NewFormatter(translator),
		relay:       relay,
		adminChatID: adminChatID,
	}
}

// HandleUpdate dispatches one update. It never returns an error: a broken
// update must not take down the update loop.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.Chat.ID == h.adminChatID {
		h.handleAdminMessage(ctx, m)
		return
	}
	if m.IsCommand() && m.Command() == "start" {
		h.handleStart(ctx, m)
		return
	}
	h.forwardToOperator(ctx, m)
}

func (h *Handler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Telegram keeps showing a spinner until the callback is answered.
	defer func() {
		if _, err := h.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			logSendErr("answer callback", err)
		}
	}()

	if cq.Message == nil {
		return
	}
	data := cq.Data

	if cq.Message.Chat.ID == h.adminChatID {
		switch {
		case strings.HasPrefix(data, "approve:"):
			h.handleApprove(ctx, cq)
		case strings.HasPrefix(data, "decline:"):
			h.handleDecline(ctx, cq)
		}
		return
	}

	switch {
	case data == "price":
		h.handlePrice(ctx, cq)
	case data == "schedule":
		h.handleSchedule(ctx, cq)
	case data == "back_main":
		h.handleBackMain(ctx, cq)
	case strings.HasPrefix(data, "ev:"):
		h.handleSignupRequest(ctx, cq)
	case strings.HasPrefix(data, "cfm:"):
		h.handleConfirmAnswer(ctx, cq)
	case strings.HasPrefix(data, "cancel:"):
		h.handleUserCancel(ctx, cq)
	default:
		h.adminLog(ctx, "🔘 id=%d действие: %s", cq.From.ID, data)
	}
}

// parseIDs splits "prefix:<a>:<b>" callback payloads.
func parseIDs(data string) (int64, int64, bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return 0, 0, false
	}
	a, err1 := strconv.ParseInt(parts[1], 10, 64)
	b, err2 := strconv.ParseInt(parts[2], 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return a, b, true
}
