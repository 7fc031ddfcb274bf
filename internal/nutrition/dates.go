package nutrition

import (
	"fmt"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

const shortDateLayout = "Jan 2"

// DatesInRange returns count dates in ascending order, the last one being end
func DatesInRange(end domain.Date, count int) []domain.Date {
	if count <= 0 {
		return []domain.Date{}
	}
	dates := make([]domain.Date, count)
	for i := 0; i < count; i++ {
		dates[i] = end.AddDays(i - count + 1)
	}
	return dates
}

// PreviousDay returns d - 1 day
func PreviousDay(d domain.Date) domain.Date {
	return d.AddDays(-1)
}

// NextDay returns d + 1 day
func NextDay(d domain.Date) domain.Date {
	return d.AddDays(1)
}

// Today returns the current calendar date in loc (local time when loc is nil)
func Today(loc *time.Location) domain.Date {
	return DateAt(time.Now(), loc)
}

// DateAt returns the calendar date of t in loc (local time when loc is nil)
func DateAt(t time.Time, loc *time.Location) domain.Date {
	if loc == nil {
		loc = time.Local
	}
	return domain.DateOf(t.In(loc))
}

// FormatShort renders a date as "Feb 27"
func FormatShort(d domain.Date) string {
	return d.Time().Format(shortDateLayout)
}

// RangeLabel renders the range of count days ending at end, e.g. "Feb 21 - Feb 27".
// A single-day range still renders both ends.
func RangeLabel(end domain.Date, count int) string {
	start := end.AddDays(-(count - 1))
	return fmt.Sprintf("%s - %s", FormatShort(start), FormatShort(end))
}
