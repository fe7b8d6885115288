package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	schedulingmemory "github.com/vetlink/vetlink-api/internal/domains/scheduling/adapters/memory"
	"github.com/vetlink/vetlink-api/internal/domains/scheduling/domain"
)

func fixedClock(instant time.Time) func() time.Time {
	return func() time.Time { return instant }
}

func weeklyEntry(t *testing.T, day time.Weekday, start, end string) domain.WeeklyAvailability {
	t.Helper()
	from, err := domain.ParseTimeOfDay(start)
	require.NoError(t, err)
	to, err := domain.ParseTimeOfDay(end)
	require.NoError(t, err)
	return domain.WeeklyAvailability{Day: day, Start: from, End: to}
}

func TestSetSchedule_ReplacesExistingEntries(t *testing.T) {
	svc := NewService(schedulingmemory.NewRepository())
	ctx := context.Background()

	first, err := svc.SetSchedule(ctx, 7, []domain.WeeklyAvailability{
		weeklyEntry(t, time.Monday, "09:00", "12:00"),
		weeklyEntry(t, time.Friday, "14:00", "17:00"),
	})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.SetSchedule(ctx, 7, []domain.WeeklyAvailability{
		weeklyEntry(t, time.Tuesday, "10:00", "11:00"),
	})
	require.NoError(t, err)
	require.Len(t, second, 1)

	current, err := svc.GetSchedule(ctx, 7)
	require.NoError(t, err)
	require.Len(t, current, 1)
	require.Equal(t, time.Tuesday, current[0].Day)
}

func TestSetSchedule_RejectsInvertedWindow(t *testing.T) {
	svc := NewService(schedulingmemory.NewRepository())

	_, err := svc.SetSchedule(context.Background(), 7, []domain.WeeklyAvailability{
		weeklyEntry(t, time.Monday, "09:00", "12:00"),
		{Day: time.Tuesday, Start: 720, End: 540},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	// Nothing was persisted for the vet.
	current, err := svc.GetSchedule(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, current)
}

func TestBookableDates_DefaultsWindowSize(t *testing.T) {
	now := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	svc := NewService(schedulingmemory.NewRepository(), WithClock(fixedClock(now)))
	ctx := context.Background()

	_, err := svc.SetSchedule(ctx, 7, []domain.WeeklyAvailability{
		weeklyEntry(t, time.Monday, "09:00", "12:00"),
	})
	require.NoError(t, err)

	window, err := svc.BookableDates(ctx, 7, now, 0)
	require.NoError(t, err)
	require.Len(t, window, domain.DefaultWindowDays)
}

func TestSlotsForDate_DropsAlreadyStartedSlots(t *testing.T) {
	// Mid-morning on the queried Monday itself.
	now := time.Date(2026, 3, 2, 9, 20, 0, 0, time.UTC)
	svc := NewService(schedulingmemory.NewRepository(), WithClock(fixedClock(now)))
	ctx := context.Background()

	_, err := svc.SetSchedule(ctx, 7, []domain.WeeklyAvailability{
		weeklyEntry(t, time.Monday, "09:00", "10:00"),
	})
	require.NoError(t, err)

	slots, err := svc.SlotsForDate(ctx, 7, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// 09:00 and 09:15 already started; 09:30 and 09:45 remain.
	require.Len(t, slots, 2)
	require.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), slots[0].Start)
	require.Equal(t, time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC), slots[1].Start)
}

func TestSlotsForDate_UnknownVetYieldsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc := NewService(schedulingmemory.NewRepository(), WithClock(fixedClock(now)))

	slots, err := svc.SlotsForDate(context.Background(), 99, now)
	require.NoError(t, err)
	require.Empty(t, slots)
}
