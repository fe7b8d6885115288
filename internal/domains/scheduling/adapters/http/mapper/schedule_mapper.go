package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

// AvailabilityWindow is the wire form of one recurring weekly window.
type AvailabilityWindow struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Schedule is the wire form of a veterinarian's full weekly availability.
type Schedule struct {
	VetID   int64                `json:"vetId"`
	Windows []AvailabilityWindow `json:"windows"`
}

// BookableDate is the wire form of one day inside a booking window.
type BookableDate struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
	Past      bool   `json:"past"`
}

// Slot is the wire form of a bookable time slot.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

const dateLayout = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a lowercase weekday name.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return day, nil
}

// ParseDate resolves a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}

// ToWeeklyAvailability converts wire windows to domain entries.
func ToWeeklyAvailability(windows []AvailabilityWindow) ([]domain.WeeklyAvailability, error) {
	entries := make([]domain.WeeklyAvailability, 0, len(windows))
	for _, window := range windows {
		day, err := ParseWeekday(window.Day)
		if err != nil {
			return nil, err
		}
		start, err := domain.ParseTimeOfDay(window.Start)
		if err != nil {
			return nil, fmt.Errorf("start %q: %w", window.Start, err)
		}
		end, err := domain.ParseTimeOfDay(window.End)
		if err != nil {
			return nil, fmt.Errorf("end %q: %w", window.End, err)
		}
		entry, err := domain.NewWeeklyAvailability(day, start, end)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FromWeeklyAvailability converts domain entries to wire windows.
func FromWeeklyAvailability(vetID int64, entries []domain.WeeklyAvailability) Schedule {
	windows := make([]AvailabilityWindow, 0, len(entries))
	for _, entry := range entries {
		windows = append(windows, AvailabilityWindow{
			Day:   strings.ToLower(entry.Day.String()),
			Start: entry.Start.String(),
			End:   entry.End.String(),
		})
	}
	return Schedule{VetID: vetID, Windows: windows}
}

// FromDayAvailability converts a booking window to its wire form.
func FromDayAvailability(window []domain.DayAvailability) []BookableDate {
	dates := make([]BookableDate, 0, len(window))
	for _, day := range window {
		dates = append(dates, BookableDate{
			Date:      day.Date.Format(dateLayout),
			Available: day.Available,
			Past:      day.Past,
		})
	}
	return dates
}

// FromSlots converts slots to their wire form.
func FromSlots(slots []timeslot.Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, Slot{Start: slot.Start, End: slot.End})
	}
	return out
}
