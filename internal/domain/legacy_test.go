package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotInventory/pkg/ptr"
)

func TestLegacySlot_Plan(t *testing.T) {
	table, err := NewCapacityTable(nil)
	require.NoError(t, err)

	t.Run("explicit inactive is preserved", func(t *testing.T) {
		row := &LegacySlot{
			DayLabel: "Tomorrow",
			Category: "Plumber",
			Time:     "9:00 AM",
			Active:   ptr.Ptr(false),
		}

		plan, err := row.Plan(table)
		require.NoError(t, err)

		assert.Nil(t, plan.Active)
		assert.Equal(t, 3, *plan.TotalCapacity)
		assert.Equal(t, 0, *plan.BookedCount)
		assert.ElementsMatch(t, []string{FieldBookedCount, FieldTotalCapacity}, plan.Fields)

		slot := row.Canonical(plan)
		assert.False(t, slot.Active)
		assert.Equal(t, 3, slot.TotalCapacity)
		assert.Equal(t, 0, slot.BookedCount)
	})

	t.Run("all fields missing", func(t *testing.T) {
		row := &LegacySlot{DayLabel: "Today", Category: "Electrician", Time: "10:00 AM", Available: ptr.Ptr(true)}

		plan, err := row.Plan(table)
		require.NoError(t, err)

		assert.True(t, *plan.Active)
		assert.Equal(t, 0, *plan.BookedCount)
		assert.Equal(t, 4, *plan.TotalCapacity)
		assert.True(t, plan.DropAvailable)
		assert.Len(t, plan.Fields, 4)
	})

	t.Run("canonical row produces empty plan", func(t *testing.T) {
		row := &LegacySlot{
			DayLabel:      "Today",
			Category:      "Gardener",
			Time:          "7:00 AM",
			BookedCount:   ptr.Ptr(1),
			TotalCapacity: ptr.Ptr(1),
			Active:        ptr.Ptr(true),
		}

		assert.False(t, row.NeedsBackfill())
		plan, err := row.Plan(table)
		require.NoError(t, err)
		assert.True(t, plan.IsEmpty())
	})

	t.Run("stored capacity is not replaced by table value", func(t *testing.T) {
		row := &LegacySlot{DayLabel: "Today", Category: "Plumber", Time: "9:00 AM", TotalCapacity: ptr.Ptr(5)}

		plan, err := row.Plan(table)
		require.NoError(t, err)
		assert.Nil(t, plan.TotalCapacity)
		assert.Equal(t, 5, row.Canonical(plan).TotalCapacity)
	})

	t.Run("non canonical key is rejected", func(t *testing.T) {
		row := &LegacySlot{DayLabel: "today", Category: "Plumber", Time: "9:00 AM"}

		_, err := row.Plan(table)
		assert.ErrorIs(t, err, ErrNonCanonicalKey)
	})

	t.Run("unknown category", func(t *testing.T) {
		row := &LegacySlot{DayLabel: "Today", Category: "Painter", Time: "9:00 AM"}

		_, err := row.Plan(table)
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})
}
