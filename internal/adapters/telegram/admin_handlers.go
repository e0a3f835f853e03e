package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"clubbot/internal/domain"
	"clubbot/pkg/tz"
)

func (h *Handler) handleAdminMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.ReplyToMessage != nil && !m.IsCommand() {
		h.relayReply(ctx, m)
		return
	}
	if !m.IsCommand() {
		return
	}

	switch m.Command() {
	case "addevent":
		h.adminAddEvent(ctx, m)
	case "delevent":
		h.adminDelEvent(ctx, m)
	case "events":
		h.adminListEvents(ctx, m)
	case "addlocation":
		h.adminAddLocation(ctx, m)
	case "locations":
		h.adminListLocations(ctx, m)
	case "dellocation":
		h.adminDelLocation(ctx, m)
	case "setlocation":
		h.adminSetLocation(ctx, m)
	case "roster":
		h.adminRoster(ctx, m)
	case "cancel":
		h.adminCancel(ctx, m)
	case "block":
		h.adminSetBlocked(ctx, m, true)
	case "unblock":
		h.adminSetBlocked(ctx, m, false)
	case "users":
		h.adminListUsers(ctx, m)
	case "broadcast":
		h.adminBroadcast(ctx, m)
	case "to":
		h.adminDirectMessage(ctx, m)
	case "help", "start":
		h.reply(m, adminHelp)
	}
}

const adminHelp = `Команды:
/addevent <ГГГГ-ММ-ДД> <ЧЧ:ММ> <мест> <название> — создать встречу
/delevent <id> — удалить встречу
/events — список будущих встреч
/addlocation <название>;<адрес>[;<ссылка на карту>] — создать локацию
/locations — список локаций
/dellocation <id локации> — удалить локацию
/setlocation <id встречи> <id локации> — привязать локацию
/roster <id встречи> — список записанных
/cancel <id встречи> <id пользователя> — снять запись
/users — список пользователей
/block <id> | /unblock <id> — (раз)блокировать пользователя
/broadcast <текст> — рассылка всем
/to <id> <текст> — написать пользователю`

// handleApprove consumes a seat for the pair encoded in the callback.
func (h *Handler) handleApprove(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	eventID, userID, ok := parseIDs(cq.Data)
	if !ok {
		return
	}
	if err := h.approval.Approve(ctx, eventID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSeats) || errors.Is(err, domain.ErrEventNotFound):
			h.adminLog(ctx, "⚠️ Не удалось записать id=%d: нет мест или встреча удалена", userID)
		default:
			log.Printf("⚠️ approve (event=%d, user=%d): %v", eventID, userID, err)
			h.adminLog(ctx, "⚠️ Ошибка при записи id=%d", userID)
		}
		return
	}
	h.adminLog(ctx, "✅ id=%d записан(а) на встречу #%d", userID, eventID)
}

func (h *Handler) handleDecline(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	eventID, userID, ok := parseIDs(cq.Data)
	if !ok {
		return
	}
	if err := h.approval.Decline(ctx, eventID, userID); err != nil {
		log.Printf("⚠️ decline (event=%d, user=%d): %v", eventID, userID, err)
		return
	}
	h.adminLog(ctx, "❌ Заявка id=%d на встречу #%d отклонена", userID, eventID)
}

// relayReply routes an operator reply on a forwarded copy back to its author.
func (h *Handler) relayReply(ctx context.Context, m *tgbotapi.Message) {
	userID, err := h.relay.Resolve(ctx, m.ReplyToMessage.MessageID)
	if err != nil {
		// Unknown or expired copy: nothing to route.
		return
	}
	if _, err := h.api.CopyMessage(tgbotapi.NewCopyMessage(userID, m.Chat.ID, m.MessageID)); err != nil {
		logSendErr("relay reply", err)
	}
}

// adminAddEvent: /addevent 2026-03-08 19:00 12 Разговорный вечер
func (h *Handler) adminAddEvent(ctx context.Context, m *tgbotapi.Message) {
	args := strings.Fields(m.CommandArguments())
	if len(args) < 4 {
		h.reply(m, "Формат: /addevent <ГГГГ-ММ-ДД> <ЧЧ:ММ> <мест> <название>")
		return
	}
	startsAt, err := time.ParseInLocation("2006-01-02 15:04", args[0]+" "+args[1], tz.Moscow)
	if err != nil {
		h.reply(m, "Не понимаю дату, нужен формат ГГГГ-ММ-ДД ЧЧ:ММ")
		return
	}
	capacity, err := strconv.Atoi(args[2])
	if err != nil {
		h.reply(m, "Число мест должно быть целым числом")
		return
	}
	title := strings.Join(args[3:], " ")

	event, err := h.events.CreateEvent(ctx, title, startsAt, capacity)
	if err != nil {
		h.reply(m, fmt.Sprintf("Не получилось создать встречу: %v", err))
		return
	}
	h.reply(m, fmt.Sprintf("✅ Встреча #%d создана: %s (%d мест)", event.ID, event.Title, event.Capacity))
}

func (h *Handler) adminDelEvent(ctx context.Context, m *tgbotapi.Message) {
	id, err := strconv.ParseInt(strings.TrimSpace(m.CommandArguments()), 10, 64)
	if err != nil {
		h.reply(m, "Формат: /delevent <id>")
		return
	}
	if err := h.events.DeleteEvent(ctx, id); err != nil {
		h.reply(m, fmt.Sprintf("Не получилось удалить встречу: %v", err))
		return
	}
	h.reply(m, fmt.Sprintf("🧹 Встреча #%d удалена", id))
}

func (h *Handler) adminListEvents(ctx context.Context, m *tgbotapi.Message) {
	events, err := h.events.ListFutureEvents(ctx)
	if err != nil {
		h.reply(m, fmt.Sprintf("Ошибка: %v", err))
		return
	}
	h.reply(m, h.formatter.EventsList(events))
}

// adminAddLocation: /addlocation Кафе «Бублик»;ул. Ленина, 5;https://maps.example/bublik
func (h *Handler) adminAddLocation(ctx context.Context, m *tgbotapi.Message) {
	parts := strings.SplitN(m.CommandArguments(), ";", 3)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		h.reply(m, "Формат: /addlocation <название>;<адрес>[;<ссылка на карту>]")
		return
	}
	address, mapURL := "", ""
	if len(parts) > 1 {
		address = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		mapURL = strings.TrimSpace(parts[2])
	}

	location, err := h.events.CreateLocation(ctx, name, address, mapURL)
	if err != nil {
		h.reply(m, fmt.Sprintf("Не получилось создать локацию: %v", err))
		return
	}
	h.reply(m, fmt.Sprintf("✅ Локация создана: %s (%s)", location.Name, location.ID))
}

func (h *Handler) adminListLocations(ctx context.Context, m *tgbotapi.Message) {
	locations, err := h.events.ListLocations(ctx)
	if err != nil {
		h.reply(m, fmt.Sprintf("Ошибка: %v", err))
		return
	}
	h.reply(m, h.formatter.LocationsList(locations))
}

func (h *Handler) adminDelLocation(ctx context.Context, m *tgbotapi.Message) {
	id, err := uuid.Parse(strings.TrimSpace(m.CommandArguments()))
	if err != nil {
		h.reply(m, "Формат: /dellocation <id локации из /locations>")
		return
	}
	if err := h.events.DeleteLocation(ctx, id); err != nil {
		h.reply(m, fmt.Sprintf("Не получилось удалить локацию: %v", err))
		return
	}
	h.reply(m, "🧹 Локация удалена")
}

func (h *Handler) adminSetLocation(ctx context.Context, m *tgbotapi.Message) {
	args := strings.Fields(m.CommandArguments())
	if len(args) != 2 {
		h.reply(m, "Формат: /setlocation <id встречи> <id локации>")
		return
	}
	eventID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(m, "id встречи должен быть числом")
		return
	}
	locationID, err := uuid.Parse(args[1])
	if err != nil {
		h.reply(m, "id локации должен быть UUID из /locations")
		return
	}
	if err := h.events.SetLocation(ctx, eventID, locationID); err != nil {
		h.reply(m, fmt.Sprintf("Не получилось привязать локацию: %v", err))
		return
	}
	h.reply(m, fmt.Sprintf("📍 Локация привязана к встрече #%d", eventID))
}

func (h *Handler) adminRoster(ctx context.Context, m *tgbotapi.Message) {
	eventID, err := strconv.ParseInt(strings.TrimSpace(m.CommandArguments()), 10, 64)
	if err != nil {
		h.reply(m, "Формат: /roster <id встречи>")
		return
	}
	event, err := h.events.GetEvent(ctx, eventID)
	if err != nil {
		h.reply(m, fmt.Sprintf("Ошибка: %v", err))
		return
	}
	signups, err := h.signups.Roster(ctx, eventID)
	if err != nil {
		h.reply(m, fmt.Sprintf("Ошибка: %v", err))
		return
	}

	handles := make(map[int64]string, len(signups))
	for _, s := range signups {
		if u, err := h.users.FindByID(ctx, s.UserID); err == nil {
			handles[s.UserID] = u.Handle
		}
	}
	h.reply(m, h.formatter.Roster(event, signups, handles))
}

func (h *Handler) adminCancel(ctx context.Context, m *tgbotapi.Message) {
	args := strings.Fields(m.CommandArguments())
	if len(args) != 2 {
		h.reply(m, "Формат: /cancel <id встречи> <id пользователя>")
		return
	}
	eventID, err1 := strconv.ParseInt(args[0], 10, 64)
	userID, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		h.reply(m, "Оба аргумента должны быть числами")
		return
	}
	if err := h.signups.Cancel(ctx, eventID, userID, domain.ByOperator); err != nil {
		h.reply(m, fmt.Sprintf("Не получилось снять запись: %v", err))
	}
}

func (h *Handler) adminSetBlocked(ctx context.Context, m *tgbotapi.Message, blocked bool) {
	userID, err := strconv.ParseInt(strings.TrimSpace(m.CommandArguments()), 10, 64)
	if err != nil {
		h.reply(m, "Формат: /block <id> или /unblock <id>")
		return
	}
	if err := h.events.SetBlocked(ctx, userID, blocked); err != nil {
		h.reply(m, fmt.Sprintf("Ошибка: %v", err))
		return
	}
	if blocked {
		h.reply(m, fmt.Sprintf("🚫 Пользователь id=%d заблокирован", userID))
	} else {
		h.reply(m, fmt.Sprintf("✅ Пользователь id=%d разблокирован", userID))
	}
}

func (h *Handler) adminListUsers(ctx context.Context, m *tgbotapi.Message) {
	users, err := h.events.ListUsers(ctx)
	if err != nil {
		h.reply(m, fmt.Sprintf("Ошибка: %v", err))
		return
	}
	h.reply(m, h.formatter.UsersList(users))
}

func (h *Handler) adminBroadcast(ctx context.Context, m *tgbotapi.Message) {
	text := strings.TrimSpace(m.CommandArguments())
	if text == "" {
		h.reply(m, "Формат: /broadcast <текст>")
		return
	}
	sent, err := h.events.Broadcast(ctx, text)
	if err != nil {
		h.reply(m, fmt.Sprintf("Ошибка: %v", err))
		return
	}
	h.reply(m, fmt.Sprintf("📣 Отправлено %d пользователям", sent))
}

// adminDirectMessage: /to 527522505 Привет!
func (h *Handler) adminDirectMessage(_ context.Context, m *tgbotapi.Message) {
	parts := strings.SplitN(m.CommandArguments(), " ", 2)
	if len(parts) < 2 {
		return
	}
	userID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return
	}
	h.send(tgbotapi.NewMessage(userID, parts[1]))
}
