package service

import (
	"testing"

	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveEndTime(t *testing.T) {
	end, err := DeriveEndTime("09:00")
	require.NoError(t, err)
	assert.Equal(t, "10:00", end)

	end, err = DeriveEndTime("13:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30", end)

	// Через полночь
	end, err = DeriveEndTime("23:30")
	require.NoError(t, err)
	assert.Equal(t, "00:30", end)
}

func TestDeriveEndTimeInvalid(t *testing.T) {
	for _, input := range []string{"", "9am", "25:00", "09.00", "morning"} {
		_, err := DeriveEndTime(input)
		assert.ErrorIs(t, err, ErrBadStartTime, "input %q", input)
	}
}

func TestMergeSlotExistingDate(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-15", Slots: []model.TimeSlot{{ID: "s1"}}},
		{Date: "2024-06-20", Slots: []model.TimeSlot{{ID: "s2"}}},
	}

	merged := MergeSlot(sched, "2024-06-15", model.TimeSlot{ID: "s3"})

	require.Len(t, merged, 2)
	assert.Len(t, merged[0].Slots, 2)
	assert.Len(t, merged[1].Slots, 1, "other dates stay untouched")
}

func TestMergeSlotNewDateKeepsOrder(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-10", Slots: []model.TimeSlot{{ID: "s1"}}},
		{Date: "2024-06-20", Slots: []model.TimeSlot{{ID: "s2"}}},
	}

	merged := MergeSlot(sched, "2024-06-15", model.TimeSlot{ID: "s3"})

	require.Len(t, merged, 3)
	assert.Equal(t, "2024-06-10", merged[0].Date)
	assert.Equal(t, "2024-06-15", merged[1].Date)
	assert.Equal(t, "2024-06-20", merged[2].Date)
}

func TestMergeSlotEmptySchedule(t *testing.T) {
	merged := MergeSlot(nil, "2024-06-15", model.TimeSlot{ID: "s1"})
	require.Len(t, merged, 1)
	assert.Equal(t, "2024-06-15", merged[0].Date)
}

func TestRemoveSlotOnlyTouchesItsDate(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-15", Slots: []model.TimeSlot{{ID: "s1"}, {ID: "s2"}}},
		{Date: "2024-06-20", Slots: []model.TimeSlot{{ID: "s3"}}},
	}

	result := RemoveSlot(sched, "s1")

	require.Len(t, result, 2)
	require.Len(t, result[0].Slots, 1)
	assert.Equal(t, "s2", result[0].Slots[0].ID)
	assert.Len(t, result[1].Slots, 1, "other dates stay untouched")
}

func TestRemoveSlotDropsEmptyDay(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-15", Slots: []model.TimeSlot{{ID: "s1"}}},
		{Date: "2024-06-20", Slots: []model.TimeSlot{{ID: "s2"}}},
	}

	result := RemoveSlot(sched, "s1")

	require.Len(t, result, 1)
	assert.Equal(t, "2024-06-20", result[0].Date)
}

func TestRemoveSlotUnknownID(t *testing.T) {
	sched := []model.DaySchedule{
		{Date: "2024-06-15", Slots: []model.TimeSlot{{ID: "s1"}}},
	}

	result := RemoveSlot(sched, "missing")
	require.Len(t, result, 1)
	assert.Len(t, result[0].Slots, 1)
}

func TestCanModifyAvailability(t *testing.T) {
	assert.True(t, model.CounselorProfile{Status: "active", IsApproved: true}.CanModifyAvailability())
	assert.True(t, model.CounselorProfile{Status: "Active", IsApproved: true}.CanModifyAvailability(), "status check is case insensitive")
	assert.False(t, model.CounselorProfile{Status: "active", IsApproved: false}.CanModifyAvailability())
	assert.False(t, model.CounselorProfile{Status: "suspended", IsApproved: true}.CanModifyAvailability())
}
