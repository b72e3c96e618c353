package icloudems

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	slot, flags := ParseSlot("Database Management(TH)DB12345A A-203 PR 3")

	require.Equal(t, "Database Management", slot.CourseName)
	require.Equal(t, "TH", slot.CourseType)
	require.Equal(t, "DB12345A", slot.CourseCode)
	require.Equal(t, "A-203", slot.Room)
	require.Equal(t, "A", slot.Block)
	require.Equal(t, int64(3), slot.Section)
	require.True(t, flags.Practical)
	require.False(t, flags.Project)
}

func TestParseSlotDeterminism(t *testing.T) {
	raw := "Operating Systems(PP)OS54321B GU_B-101 PP 12"

	first, firstFlags := ParseSlot(raw)
	second, secondFlags := ParseSlot(raw)

	require.Equal(t, first, second)
	require.Equal(t, firstFlags, secondFlags)
	require.Equal(t, "B-101", first.Room)
	require.Equal(t, "B", first.Block)
	require.True(t, firstFlags.Project)
}

func TestParseSlotMissingFields(t *testing.T) {
	slot, flags := ParseSlot("")

	require.Equal(t, Slot{}, slot)
	require.Equal(t, SlotFlags{}, flags)

	slot, _ = ParseSlot("Yoga(TH)")
	require.Equal(t, "Yoga", slot.CourseName)
	require.Equal(t, "TH", slot.CourseType)
	require.Empty(t, slot.CourseCode)
	require.Empty(t, slot.Room)
	require.Zero(t, slot.Section)
}

func TestCutFirstRemovesEarlierOccurrence(t *testing.T) {
	// the course type pass removes the first occurrence of the matched
	// two characters, which is not necessarily the matched span
	require.Equal(t, "xxyy(TH)", cutFirst("xxTHyy(TH)", "TH"))
	require.Equal(t, "abc", cutFirst("abc", "zz"))
	require.Equal(t, "abc", cutFirst("abc", ""))
}
