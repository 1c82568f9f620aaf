package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	"github.com/m04kA/SMC-SlotInventory/pkg/ptr"
)

func mustKey(t *testing.T, day, category, slotTime string) domain.SlotKey {
	t.Helper()
	key, err := domain.NewSlotKey(day, category, slotTime)
	require.NoError(t, err)
	return key
}

func TestReserveQuery_IsConditionalIncrement(t *testing.T) {
	key := mustKey(t, "Today", "Plumber", "9:00 AM")

	query, args, err := reserveQuery(key).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE category_time_slots SET booked_count = booked_count + 1")
	assert.Contains(t, query, "active = $4")
	assert.Contains(t, query, "booked_count < total_capacity")
	assert.Contains(t, query, "RETURNING day_label, category, slot_time")
	assert.Equal(t, []interface{}{"Plumber", "Today", "9:00 AM", true}, args)
}

func TestReleaseQuery_NeverGoesBelowZero(t *testing.T) {
	key := mustKey(t, "Tomorrow", "Gardener", "10:00 AM")

	query, args, err := releaseQuery(key).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "booked_count = booked_count - 1")
	assert.Contains(t, query, "booked_count > $4")
	assert.Contains(t, query, "booked_count IS NOT NULL")
	assert.Equal(t, 0, args[3])
}

func TestToggleQuery_FlipsInOneStatement(t *testing.T) {
	key := mustKey(t, "Today", "Electrician", "11:00 AM")

	query, _, err := toggleQuery(key).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "active = NOT active")
	assert.Contains(t, query, "active IS NOT NULL")
	assert.Contains(t, query, "RETURNING")
}

func TestUpsertQuery_LastWriteWins(t *testing.T) {
	key := mustKey(t, "Day After Tomorrow", "AC Services", "2:30 PM")
	slot := domain.NewSlot(key, 2)

	query, args, err := upsertQuery(slot).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO category_time_slots")
	assert.Contains(t, query, "ON CONFLICT (day_label, category, slot_time) DO UPDATE SET")
	assert.Contains(t, query, "booked_count = EXCLUDED.booked_count")
	assert.Contains(t, query, "available = NULL")
	assert.Equal(t, []interface{}{"Day After Tomorrow", "AC Services", "2:30 PM", 870, 0, 2, true}, args)
}

func TestUpsertQuery_UnparseableTimeHasNoSortKey(t *testing.T) {
	key := mustKey(t, "Today", "Plumber", "Morning")

	_, args, err := upsertQuery(domain.NewSlot(key, 3)).ToSql()
	require.NoError(t, err)

	assert.Nil(t, args[3])
}

func TestBackfillQuery(t *testing.T) {
	key := mustKey(t, "Today", "Plumber", "9:00 AM")

	t.Run("only missing fields with coalesce", func(t *testing.T) {
		plan := &domain.BackfillPlan{
			Key:           key,
			TotalCapacity: ptr.Ptr(3),
			Fields:        []string{domain.FieldTotalCapacity},
		}

		query, _, err := backfillQuery(plan).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "total_capacity = COALESCE(total_capacity, $2)")
		assert.NotContains(t, query, "booked_count = ")
		assert.NotContains(t, query, "active = ")
		assert.NotContains(t, query, "available = ")
	})

	t.Run("drops legacy flag", func(t *testing.T) {
		plan := &domain.BackfillPlan{
			Key:           key,
			Active:        ptr.Ptr(true),
			BookedCount:   ptr.Ptr(0),
			DropAvailable: true,
			Fields:        []string{domain.FieldActive, domain.FieldBookedCount, domain.FieldAvailable},
		}

		query, _, err := backfillQuery(plan).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "active = COALESCE(active, $2)")
		assert.Contains(t, query, "booked_count = COALESCE(booked_count, $3)")
		assert.Contains(t, query, "available = $4")
	})
}

func TestRow_ToSlotAndLegacy(t *testing.T) {
	t.Run("canonical row", func(t *testing.T) {
		r := &row{DayLabel: "Today", Category: "Plumber", SlotTime: "9:00 AM"}
		r.BookedCount.Int64, r.BookedCount.Valid = 1, true
		r.TotalCapacity.Int64, r.TotalCapacity.Valid = 3, true
		r.Active.Bool, r.Active.Valid = false, true

		slot, err := r.toSlot()
		require.NoError(t, err)
		assert.Equal(t, 1, slot.BookedCount)
		assert.Equal(t, 3, slot.TotalCapacity)
		assert.False(t, slot.Active)
		assert.Equal(t, "Today/Plumber/9:00 AM", slot.ID())
	})

	t.Run("legacy row", func(t *testing.T) {
		r := &row{DayLabel: "Today", Category: "Plumber", SlotTime: "9:00 AM"}
		r.Available.Bool, r.Available.Valid = true, true

		_, err := r.toSlot()
		assert.ErrorIs(t, err, ErrLegacyShape)

		legacy := r.toLegacy()
		assert.Nil(t, legacy.BookedCount)
		assert.Nil(t, legacy.TotalCapacity)
		assert.Nil(t, legacy.Active)
		require.NotNil(t, legacy.Available)
		assert.True(t, *legacy.Available)
		assert.True(t, legacy.NeedsBackfill())
	})
}
