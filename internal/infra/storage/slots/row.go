package slots

import (
	"database/sql"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	"github.com/m04kA/SMC-SlotInventory/pkg/types"
)

const tableName = "category_time_slots"

// Колонки первичного ключа
const (
	colDayLabel = "day_label"
	colCategory = "category"
	colSlotTime = "slot_time"
)

// columns порядок колонок совпадает с row.scanTargets
var columns = []string{
	colDayLabel,
	colCategory,
	colSlotTime,
	"booked_count",
	"total_capacity",
	"active",
	"available",
	"created_at",
	"updated_at",
}

// row строка таблицы как она хранится, со всеми nullable полями
type row struct {
	DayLabel      string
	Category      string
	SlotTime      string
	BookedCount   sql.NullInt64
	TotalCapacity sql.NullInt64
	Active        sql.NullBool
	Available     sql.NullBool
	CreatedAt     sql.NullTime
	UpdatedAt     sql.NullTime
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(s scanner) (*row, error) {
	var r row
	err := s.Scan(
		&r.DayLabel,
		&r.Category,
		&r.SlotTime,
		&r.BookedCount,
		&r.TotalCapacity,
		&r.Active,
		&r.Available,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// isCanonical возвращает true, если все канонические поля заполнены
func (r *row) isCanonical() bool {
	return r.BookedCount.Valid && r.TotalCapacity.Valid && r.Active.Valid
}

// toSlot преобразует каноническую строку в доменный слот
func (r *row) toSlot() (*domain.Slot, error) {
	if !r.isCanonical() {
		return nil, ErrLegacyShape
	}

	return &domain.Slot{
		Key: domain.SlotKey{
			Day:      domain.DayLabel(r.DayLabel),
			Category: domain.Category(r.Category),
			Time:     types.DisplayTime(r.SlotTime),
		},
		BookedCount:   int(r.BookedCount.Int64),
		TotalCapacity: int(r.TotalCapacity.Int64),
		Active:        r.Active.Bool,
		CreatedAt:     r.CreatedAt.Time,
		UpdatedAt:     r.UpdatedAt.Time,
	}, nil
}

func (r *row) toLegacy() *domain.LegacySlot {
	legacy := &domain.LegacySlot{
		DayLabel: r.DayLabel,
		Category: r.Category,
		Time:     r.SlotTime,
	}

	if r.BookedCount.Valid {
		v := int(r.BookedCount.Int64)
		legacy.BookedCount = &v
	}
	if r.TotalCapacity.Valid {
		v := int(r.TotalCapacity.Int64)
		legacy.TotalCapacity = &v
	}
	if r.Active.Valid {
		v := r.Active.Bool
		legacy.Active = &v
	}
	if r.Available.Valid {
		v := r.Available.Bool
		legacy.Available = &v
	}

	return legacy
}

// timeSortKey возвращает минуты от полуночи или nil, если время не разбирается
func timeSortKey(t types.DisplayTime) interface{} {
	if minutes, ok := t.MinutesOfDay(); ok {
		return minutes
	}
	return nil
}
