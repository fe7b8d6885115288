package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
)

func slotAt(hour, minute int) timeslot.Slot {
	start := time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	return timeslot.Slot{Start: start, End: start.Add(timeslot.Length)}
}

func TestToggle_AddsAndRemovesByValue(t *testing.T) {
	var sel Selection

	sel = sel.Toggle(slotAt(9, 0))
	sel = sel.Toggle(slotAt(10, 0))
	require.Equal(t, 2, sel.Len())
	require.True(t, sel.Contains(slotAt(9, 0)))

	// Toggling an equal slot deselects it even though it is a fresh value.
	sel = sel.Toggle(slotAt(9, 0))
	require.Equal(t, 1, sel.Len())
	require.False(t, sel.Contains(slotAt(9, 0)))
	require.True(t, sel.Contains(slotAt(10, 0)))
}

func TestToggle_IgnoresFourthSlot(t *testing.T) {
	sel := NewSelection(slotAt(9, 0), slotAt(10, 0), slotAt(11, 0))
	require.Equal(t, MaxCandidateSlots, sel.Len())

	full := sel.Toggle(slotAt(12, 0))
	require.Equal(t, MaxCandidateSlots, full.Len())
	require.False(t, full.Contains(slotAt(12, 0)))

	// Deselecting one frees capacity again.
	freed := full.Toggle(slotAt(10, 0)).Toggle(slotAt(12, 0))
	require.Equal(t, MaxCandidateSlots, freed.Len())
	require.True(t, freed.Contains(slotAt(12, 0)))
}

func TestToggle_KeepsSlotsAscending(t *testing.T) {
	sel := NewSelection(slotAt(14, 0), slotAt(9, 0), slotAt(11, 30))

	slots := sel.Slots()
	require.Len(t, slots, 3)
	for i := 1; i < len(slots); i++ {
		require.True(t, slots[i-1].Before(slots[i]))
	}
}

func TestNewSelection_DuplicatesCancelOut(t *testing.T) {
	sel := NewSelection(slotAt(9, 0), slotAt(9, 0))
	require.Zero(t, sel.Len())
}

func TestSelection_IsImmutable(t *testing.T) {
	base := NewSelection(slotAt(9, 0))
	_ = base.Toggle(slotAt(10, 0))
	require.Equal(t, 1, base.Len())
}

func TestSelectConfirmation_RequiresExactlyOne(t *testing.T) {
	candidates := []timeslot.Slot{slotAt(9, 0), slotAt(10, 0)}

	_, err := SelectConfirmation(candidates)
	require.ErrorIs(t, err, ErrNoSlotChosen)

	_, err = SelectConfirmation(candidates, slotAt(9, 0), slotAt(10, 0))
	require.ErrorIs(t, err, ErrMultipleSlotsChosen)

	_, err = SelectConfirmation(candidates, slotAt(11, 0))
	require.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSelectConfirmation_ReturnsStoredCandidate(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	candidates := []timeslot.Slot{slotAt(9, 0), slotAt(10, 0)}
	// Same instant, different wall-clock representation.
	chosen := timeslot.Slot{
		Start: candidates[1].Start.In(warsaw),
		End:   candidates[1].End.In(warsaw),
	}

	got, err := SelectConfirmation(candidates, chosen)
	require.NoError(t, err)
	require.Equal(t, candidates[1], got)
}
