package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

func mustTimeOfDay(t *testing.T, value string) TimeOfDay {
	t.Helper()
	parsed, err := ParseTimeOfDay(value)
	require.NoError(t, err)
	return parsed
}

func TestParseTimeOfDay(t *testing.T) {
	parsed := mustTimeOfDay(t, "09:30")
	require.Equal(t, 9, parsed.Hour())
	require.Equal(t, 30, parsed.Minute())
	require.Equal(t, "09:30", parsed.String())

	for _, invalid := range []string{"", "9am", "24:00", "12:60", "12-30"} {
		_, err := ParseTimeOfDay(invalid)
		require.ErrorIs(t, err, ErrInvalidTime, "input %q", invalid)
	}
}

func TestNewWeeklyAvailability_RejectsInvertedWindow(t *testing.T) {
	start := mustTimeOfDay(t, "12:00")
	end := mustTimeOfDay(t, "09:00")

	_, err := NewWeeklyAvailability(time.Monday, start, end)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewWeeklyAvailability(time.Monday, start, start)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestBookableDates_MarksAvailabilityAndPast(t *testing.T) {
	entries := []WeeklyAvailability{
		{Day: time.Monday, Start: mustTimeOfDay(t, "09:00"), End: mustTimeOfDay(t, "12:00")},
		{Day: time.Wednesday, Start: mustTimeOfDay(t, "14:00"), End: mustTimeOfDay(t, "17:00")},
	}

	// Window starts Sunday; "today" is the Tuesday inside it.
	windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC)

	window := BookableDates(entries, windowStart, 7, now)
	require.Len(t, window, 7)

	byWeekday := map[time.Weekday]DayAvailability{}
	for _, day := range window {
		byWeekday[day.Date.Weekday()] = day
	}

	require.True(t, byWeekday[time.Monday].Available)
	require.True(t, byWeekday[time.Wednesday].Available)
	require.False(t, byWeekday[time.Sunday].Available)
	require.False(t, byWeekday[time.Friday].Available)

	// Sunday and Monday precede "today"; Tuesday itself is not past.
	require.True(t, byWeekday[time.Sunday].Past)
	require.True(t, byWeekday[time.Monday].Past)
	require.False(t, byWeekday[time.Tuesday].Past)
	require.False(t, byWeekday[time.Wednesday].Past)
}

func TestBookableDates_EmptyScheduleStillReturnsWindow(t *testing.T) {
	windowStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	window := BookableDates(nil, windowStart, 3, windowStart)
	require.Len(t, window, 3)
	for _, day := range window {
		require.False(t, day.Available)
	}
}

func TestSlots_TilesWindowsAndDropsPartialTail(t *testing.T) {
	// 09:00-09:40 yields two full slots; the trailing ten minutes do not fit.
	entries := []WeeklyAvailability{
		{Day: time.Monday, Start: mustTimeOfDay(t, "09:00"), End: mustTimeOfDay(t, "09:40")},
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	var slots []timeslot.Slot
	for slot := range Slots(entries, monday) {
		slots = append(slots, slot)
	}

	require.Len(t, slots, 2)
	require.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), slots[0].Start)
	require.Equal(t, time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC), slots[0].End)
	require.Equal(t, time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC), slots[1].Start)
	require.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), slots[1].End)
	for _, slot := range slots {
		require.Equal(t, timeslot.Length, slot.Duration())
	}
}

func TestSlots_WindowShorterThanSlotYieldsNothing(t *testing.T) {
	entries := []WeeklyAvailability{
		{Day: time.Monday, Start: mustTimeOfDay(t, "09:00"), End: mustTimeOfDay(t, "09:10")},
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	count := 0
	for range Slots(entries, monday) {
		count++
	}
	require.Zero(t, count)
}

func TestSlots_MultipleWindowsAscending(t *testing.T) {
	entries := []WeeklyAvailability{
		{Day: time.Monday, Start: mustTimeOfDay(t, "14:00"), End: mustTimeOfDay(t, "14:30")},
		{Day: time.Monday, Start: mustTimeOfDay(t, "09:00"), End: mustTimeOfDay(t, "09:30")},
		{Day: time.Tuesday, Start: mustTimeOfDay(t, "10:00"), End: mustTimeOfDay(t, "11:00")},
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	var slots []timeslot.Slot
	for slot := range Slots(entries, monday) {
		slots = append(slots, slot)
	}

	require.Len(t, slots, 4)
	for i := 1; i < len(slots); i++ {
		require.True(t, slots[i-1].Before(slots[i]))
	}
	// The Tuesday window never leaks into Monday's slots.
	require.Equal(t, 9, slots[0].Start.Hour())
	require.Equal(t, 14, slots[3].Start.Hour())
}

func TestSlots_SequenceIsRestartable(t *testing.T) {
	entries := []WeeklyAvailability{
		{Day: time.Monday, Start: mustTimeOfDay(t, "09:00"), End: mustTimeOfDay(t, "10:00")},
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	seq := Slots(entries, monday)

	first := 0
	for range seq {
		first++
		if first == 2 {
			break
		}
	}

	second := 0
	for range seq {
		second++
	}

	require.Equal(t, 2, first)
	require.Equal(t, 4, second)
}
