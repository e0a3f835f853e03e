package application

import (
	"fmt"

	"clubbot/internal/domain/entities"
	"clubbot/pkg/tz"
)

// eventLabel renders a short human label for an event in the club's display
// timezone, e.g. `Разговорный вечер — 15.02 19:00`.
func eventLabel(e *entities.Event) string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s — %s", e.Title, e.StartsAt.In(tz.Moscow).Format("02.01 15:04"))
}

// userLabel renders @username when known, otherwise the numeric id.
func userLabel(u *entities.User) string {
	if u.Handle != "" {
		return "@" + u.Handle
	}
	return fmt.Sprintf("%d", u.ID)
}
