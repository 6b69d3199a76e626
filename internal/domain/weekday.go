package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a canonical English weekday label ("Monday" ... "Sunday").
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays is the canonical Monday-first order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the Monday-based position (Monday = 0) or -1.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

func (d Weekday) Valid() bool { return d.Index() >= 0 }

// ParseWeekday accepts any casing ("tuesday", "TUESDAY").
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for _, w := range Weekdays {
		if strings.EqualFold(string(w), s) {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// WeekdayOf returns the label for t's weekday.
func WeekdayOf(t time.Time) Weekday {
	// time.Sunday == 0
	return Weekdays[(int(t.Weekday())+6)%7]
}
