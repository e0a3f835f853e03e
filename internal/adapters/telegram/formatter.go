package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"clubbot/internal/application"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

// Formatter renders menus, keyboards and operator listings.
type Formatter struct {
	translator output.T
}

func NewFormatter(translator output.T) *Formatter {
	return &Formatter{translator: translator}
}

// MainMenu is the price/schedule entry keyboard.
func (f *Formatter) MainMenu(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f.translator.T(locale, "btn_price", nil), "price"),
			tgbotapi.NewInlineKeyboardButtonData(f.translator.T(locale, "btn_schedule", nil), "schedule"),
		),
	)
}

// BackKeyboard is a single "back to main menu" row.
func (f *Formatter) BackKeyboard(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(f.translator.T(locale, "btn_back", nil), "back_main"),
		),
	)
}

// ScheduleMenu renders one button per future event plus a back row.
func (f *Formatter) ScheduleMenu(locale string, events []entities.Event) (string, tgbotapi.InlineKeyboardMarkup) {
	if len(events) == 0 {
		return f.translator.T(locale, "schedule_empty", nil), f.BackKeyboard(locale)
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(events)+1)
	for _, e := range events {
		label := fmt.Sprintf("%s — %s", e.Title, application.StartTimeDisplay(e.StartsAt))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("ev:%d", e.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(f.translator.T(locale, "btn_back", nil), "back_main"),
	))
	return f.translator.T(locale, "schedule_prompt", nil), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// EventsList is the operator's /events view.
func (f *Formatter) EventsList(events []entities.Event) string {
	if len(events) == 0 {
		return "Нет будущих встреч."
	}
	var b strings.Builder
	b.WriteString("📅 Будущие встречи:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "#%d %s — %s (свободно %d из %d)\n",
			e.ID, e.Title, application.StartTimeDisplay(e.StartsAt), e.Remaining, e.Capacity)
	}
	return b.String()
}

// LocationsList is the operator's /locations view.
func (f *Formatter) LocationsList(locations []entities.Location) string {
	if len(locations) == 0 {
		return "Локаций пока нет."
	}
	var b strings.Builder
	b.WriteString("📍 Локации:\n")
	for _, l := range locations {
		fmt.Fprintf(&b, "%s — %s", l.ID, l.Name)
		if l.Address != "" {
			fmt.Fprintf(&b, " (%s)", l.Address)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// UsersList is the operator's /users view.
func (f *Formatter) UsersList(users []entities.User) string {
	if len(users) == 0 {
		return "Пользователей пока нет."
	}
	var b strings.Builder
	b.WriteString("👤 Пользователи:\n")
	for _, u := range users {
		name := fmt.Sprintf("%d", u.ID)
		if u.Handle != "" {
			name = "@" + u.Handle
		}
		fmt.Fprintf(&b, "• %s (id=%d)", name, u.ID)
		if u.Blocked {
			b.WriteString(" 🚫")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Roster is the operator's per-event signup listing.
func (f *Formatter) Roster(event *entities.Event, signups []entities.Signup, handles map[int64]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👥 %s — %s\n", event.Title, application.StartTimeDisplay(event.StartsAt))
	if len(signups) == 0 {
		b.WriteString("Записей нет.\n")
		return b.String()
	}
	for _, s := range signups {
		name := handles[s.UserID]
		if name == "" {
			name = fmt.Sprintf("%d", s.UserID)
		} else {
			name = "@" + name
		}
		fmt.Fprintf(&b, "• %s — %s (подтверждение: %s)\n", name, s.Status, s.ConfirmStatus)
	}
	return b.String()
}
