package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns midnight UTC of that calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return TruncateToDay(t), nil
}

// DateKey formats t as the calendar-day key used to address workouts.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// TruncateToDay drops the time-of-day component (in UTC).
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MondayOnOrAfter returns t itself when it is a Monday, else the following Monday.
func MondayOnOrAfter(t time.Time) time.Time {
	t = TruncateToDay(t)
	offset := (7 - WeekdayOf(t).Index()) % 7
	return t.AddDate(0, 0, offset)
}

// ParseRaceTime converts "H:MM:SS" or "MM:SS" into seconds.
func ParseRaceTime(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	nums := make([]float64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseFloat(p, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("unsupported time format: %s", s)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2], nil
	case 2:
		return nums[0]*60 + nums[1], nil
	default:
		return 0, fmt.Errorf("unsupported time format: %s", s)
	}
}
