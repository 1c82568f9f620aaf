package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotInventory/pkg/types"
)

func mustKey(t *testing.T, day, category, slotTime string) SlotKey {
	t.Helper()
	key, err := NewSlotKey(day, category, slotTime)
	require.NoError(t, err)
	return key
}

func TestNewSlot_PlumberToday(t *testing.T) {
	table, err := NewCapacityTable(nil)
	require.NoError(t, err)

	key := mustKey(t, "Today", "Plumber", "9:00 AM")
	capacity, ok := table.For(key.Category)
	require.True(t, ok)

	slot := NewSlot(key, capacity)

	assert.Equal(t, 0, slot.BookedCount)
	assert.Equal(t, 3, slot.TotalCapacity)
	assert.True(t, slot.Active)
	assert.True(t, slot.IsAvailable())
	assert.Equal(t, StatusAvailable, slot.Status())
	assert.Equal(t, "Today/Plumber/9:00 AM", slot.ID())
}

func TestSlot_FullSlot(t *testing.T) {
	slot := NewSlot(mustKey(t, "Today", "Plumber", "9:00 AM"), 3)
	slot.BookedCount = 3

	assert.False(t, slot.IsAvailable())
	assert.True(t, slot.IsFull())
	assert.Equal(t, StatusFull, slot.Status())
	assert.Equal(t, 0, slot.Remaining())
}

func TestSlot_Disabled(t *testing.T) {
	slot := NewSlot(mustKey(t, "Tomorrow", "Gardener", "7:00 AM"), 1)
	slot.Active = false

	assert.False(t, slot.IsAvailable())
	assert.Equal(t, StatusDisabled, slot.Status())
	assert.Equal(t, 1, slot.Remaining())
}

func TestSlot_EnableFullSlotStaysUnavailable(t *testing.T) {
	slot := NewSlot(mustKey(t, "Today", "Carpenter", "5:00 PM"), 2)
	slot.BookedCount = 2
	slot.Active = false

	slot.Active = !slot.Active

	assert.True(t, slot.Active)
	assert.False(t, slot.IsAvailable())
	assert.Equal(t, StatusFull, slot.Status())
}

func TestSlot_OverCapacityIsReportedNotCorrected(t *testing.T) {
	slot := NewSlot(mustKey(t, "Today", "Gardener", "8:00 AM"), 1)
	slot.BookedCount = 3

	assert.True(t, slot.IsOverCapacity())
	assert.False(t, slot.IsAvailable())
	assert.Equal(t, StatusOverCapacity, slot.Status())
	assert.Equal(t, 0, slot.Remaining())
	assert.Equal(t, 3, slot.BookedCount)
}

func TestNewSlotKey(t *testing.T) {
	t.Run("normalizes day and category", func(t *testing.T) {
		key, err := NewSlotKey("  day after   TOMORROW ", "ac services", " 9:00   AM ")
		require.NoError(t, err)
		assert.Equal(t, DayDayAfterTomorrow, key.Day)
		assert.Equal(t, CategoryACServices, key.Category)
		assert.Equal(t, types.DisplayTime("9:00 AM"), key.Time)
	})

	t.Run("unknown day", func(t *testing.T) {
		_, err := NewSlotKey("Yesterday", "Plumber", "9:00 AM")
		assert.ErrorIs(t, err, ErrUnknownDayLabel)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := NewSlotKey("Today", "Painter", "9:00 AM")
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("empty time", func(t *testing.T) {
		_, err := NewSlotKey("Today", "Plumber", "   ")
		assert.ErrorIs(t, err, ErrEmptySlotTime)
	})

	t.Run("separator in time", func(t *testing.T) {
		_, err := NewSlotKey("Today", "Plumber", "9/10")
		assert.ErrorIs(t, err, ErrInvalidSlotKey)
	})

	t.Run("time too long", func(t *testing.T) {
		_, err := NewSlotKey("Today", "Plumber", "9:00 AM but only if the weather is nice")
		assert.ErrorIs(t, err, ErrSlotTimeTooLong)
	})
}
