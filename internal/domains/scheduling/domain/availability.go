package domain

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

var (
	ErrInvalidWindow = errors.New("availability window must start before it ends")
	ErrInvalidDay    = errors.New("day must be a valid weekday")
	ErrInvalidTime   = errors.New("time of day must be in HH:MM 24h format")
)

// DefaultWindowDays is the booking window size the UI pages through.
const DefaultWindowDays = 7

// TimeOfDay is a clinic-local wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" 24h wall-clock string.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%02d:%02d", &hour, &minute); err != nil {
		return 0, ErrInvalidTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTime
	}
	return TimeOfDay(hour*60 + minute), nil
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// WeeklyAvailability is one recurring open window in a veterinarian's week,
// independent of any specific calendar date.
type WeeklyAvailability struct {
	Day   time.Weekday
	Start TimeOfDay
	End   TimeOfDay
}

// NewWeeklyAvailability validates and builds a recurring window.
func NewWeeklyAvailability(day time.Weekday, start, end TimeOfDay) (WeeklyAvailability, error) {
	if day < time.Sunday || day > time.Saturday {
		return WeeklyAvailability{}, ErrInvalidDay
	}
	if start >= end {
		return WeeklyAvailability{}, ErrInvalidWindow
	}
	return WeeklyAvailability{Day: day, Start: start, End: end}, nil
}

// DayAvailability describes one calendar day inside a booking window.
type DayAvailability struct {
	Date      time.Time
	Available bool
	Past      bool
}

// midnight truncates an instant to the start of its calendar day.
func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// BookableDates expands a recurring weekly schedule over a window of calendar
// days starting at windowStart. A day is available when some weekly entry
// matches its weekday, and past when it precedes now's calendar day. The
// window offset is unconstrained; forward-navigation caps are caller policy.
func BookableDates(entries []WeeklyAvailability, windowStart time.Time, days int, now time.Time) []DayAvailability {
	start := midnight(windowStart)
	today := midnight(now.In(windowStart.Location()))

	openDays := make(map[time.Weekday]bool, len(entries))
	for _, entry := range entries {
		openDays[entry.Day] = true
	}

	window := make([]DayAvailability, 0, max(days, 0))
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		window = append(window, DayAvailability{
			Date:      date,
			Available: openDays[date.Weekday()],
			Past:      date.Before(today),
		})
	}
	return window
}

// Slots returns the bookable time slots on a calendar date as a lazy,
// restartable sequence. Each slot is exactly timeslot.Length long and the
// sequence tiles every matching window [start, end) in ascending order; a
// trailing span shorter than one slot is dropped. The sequence is empty when
// no weekly entry matches the date's weekday.
func Slots(entries []WeeklyAvailability, date time.Time) iter.Seq[timeslot.Slot] {
	day := midnight(date)

	matching := make([]WeeklyAvailability, 0, len(entries))
	for _, entry := range entries {
		if entry.Day == day.Weekday() {
			matching = append(matching, entry)
		}
	}
	sort.Slice(matching, func(i, j int) bool { return matching[i].Start < matching[j].Start })

	return func(yield func(timeslot.Slot) bool) {
		for _, window := range matching {
			start := day.Add(time.Duration(window.Start) * time.Minute)
			end := day.Add(time.Duration(window.End) * time.Minute)
			for !start.Add(timeslot.Length).After(end) {
				next := start.Add(timeslot.Length)
				if !yield(timeslot.Slot{Start: start, End: next}) {
					return
				}
				start = next
			}
		}
	}
}
