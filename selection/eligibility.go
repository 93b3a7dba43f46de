package selection

import (
	"fmt"
	"time"

	"github.com/aadit2805/project3-group7-deploy-sub000/models"
)

// Selectable reports whether the item may be clicked at all at the given time.
// Unavailable, sold out and out-of-window items are ignored before Apply runs.
func Selectable(item models.MenuItem, now time.Time) bool {
	if !item.IsAvailable || item.Stock <= 0 {
		return false
	}
	return InWindow(item, now)
}

// InWindow checks the optional HH:MM serving window. A window whose end is
// before its start wraps past midnight. Unparseable bounds are treated as open.
func InWindow(item models.MenuItem, now time.Time) bool {
	if item.AvailableFrom == nil && item.AvailableUntil == nil {
		return true
	}
	minute := now.Hour()*60 + now.Minute()

	from, fromErr := ParseClock(deref(item.AvailableFrom))
	until, untilErr := ParseClock(deref(item.AvailableUntil))
	switch {
	case fromErr != nil && untilErr != nil:
		return true
	case fromErr != nil:
		return minute < until
	case untilErr != nil:
		return minute >= from
	case from <= until:
		return minute >= from && minute < until
	default:
		return minute >= from || minute < until
	}
}

// ParseClock converts "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty clock value")
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Filter keeps the selectable items of one category, in input order.
func Filter(items []models.MenuItem, category string, now time.Time) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Category == category && Selectable(it, now) {
			out = append(out, it)
		}
	}
	return out
}
