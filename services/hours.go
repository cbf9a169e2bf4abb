package services

import (
	"strconv"
	"strings"
	"time"

	"bestMuscatAPI/internal/types/place"
)

var weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// minutesFromTime parses "HH:MM" into minutes since midnight.
// Well-formed input is the contract; malformed strings yield 0 components.
func minutesFromTime(s string) int {
	h, m, _ := strings.Cut(s, ":")
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return hours*60 + minutes
}

// IsOpenNow reports whether any of today's windows contains now.
// Windows with close earlier than open span midnight: they match either late
// on the start day or in the early spillover, using only today's clock.
func IsOpenNow(hours place.Hours, now time.Time) bool {
	if hours == nil {
		return false
	}
	windows := hours[weekdays[now.Weekday()]]
	if len(windows) == 0 {
		return false
	}

	nowMin := now.Hour()*60 + now.Minute()
	for _, w := range windows {
		openMin := minutesFromTime(w.Open)
		closeMin := minutesFromTime(w.Close)
		if openMin <= closeMin {
			if nowMin >= openMin && nowMin <= closeMin {
				return true
			}
		} else {
			// Over midnight
			if nowMin >= openMin || nowMin <= closeMin {
				return true
			}
		}
	}
	return false
}

// TodayHoursString formats today's windows for display, e.g.
// "09:00–12:00, 13:00–17:00", or "Closed" when there are none.
func TodayHoursString(hours place.Hours, now time.Time) string {
	if hours == nil {
		return "Closed"
	}
	return windowsString(hours[weekdays[now.Weekday()]])
}

// DayHoursString formats one named day's windows, for the weekly table on
// the detail page.
func DayHoursString(hours place.Hours, day string) string {
	if hours == nil {
		return "Closed"
	}
	return windowsString(hours[day])
}

func windowsString(windows []place.Window) string {
	if len(windows) == 0 {
		return "Closed"
	}
	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		parts = append(parts, w.Open+"–"+w.Close)
	}
	return strings.Join(parts, ", ")
}
