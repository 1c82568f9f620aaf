package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotInventory/pkg/ptr"
	"github.com/m04kA/SMC-SlotInventory/pkg/types"
)

// Имена дописываемых полей (возвращаются администратору)
const (
	FieldActive        = "active"
	FieldBookedCount   = "bookedCount"
	FieldTotalCapacity = "totalCapacity"
	FieldAvailable     = "available"
)

// ErrNonCanonicalKey возвращается для строк, чей ключ не совпадает с нормализованной формой
var ErrNonCanonicalKey = errors.New("domain: stored slot key is not in canonical form")

// LegacySlot строка как она хранится, поля старых записей могут отсутствовать
// Читается только миграцией
type LegacySlot struct {
	DayLabel      string
	Category      string
	Time          string
	BookedCount   *int
	TotalCapacity *int
	Active        *bool
	Available     *bool // флаг старой схемы, заменен Active и счетчиками
}

// BackfillPlan значения для отсутствующих полей
// nil - оставить как есть
type BackfillPlan struct {
	Key           SlotKey
	BookedCount   *int
	TotalCapacity *int
	Active        *bool
	DropAvailable bool
	Fields        []string
}

func (p *BackfillPlan) IsEmpty() bool {
	return len(p.Fields) == 0
}

// NeedsBackfill нет какого-то из полей или остался флаг старой схемы
func (l *LegacySlot) NeedsBackfill() bool {
	return l.BookedCount == nil || l.TotalCapacity == nil || l.Active == nil || l.Available != nil
}

// Plan считает миграцию строки
// Существующие значения не меняются, значения по умолчанию получают только отсутствующие поля
func (l *LegacySlot) Plan(capacities CapacityTable) (*BackfillPlan, error) {
	key, err := NewSlotKey(l.DayLabel, l.Category, l.Time)
	if err != nil {
		return nil, err
	}
	if string(key.Day) != l.DayLabel || string(key.Category) != l.Category || key.Time != types.DisplayTime(l.Time) {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrNonCanonicalKey, l.DayLabel, l.Category, l.Time)
	}

	plan := &BackfillPlan{Key: key}

	if l.Active == nil {
		plan.Active = ptr.Ptr(DefaultActive)
		plan.Fields = append(plan.Fields, FieldActive)
	}

	if l.BookedCount == nil {
		plan.BookedCount = ptr.Ptr(DefaultBookedCount)
		plan.Fields = append(plan.Fields, FieldBookedCount)
	}

	if l.TotalCapacity == nil {
		capacity, ok := capacities.For(key.Category)
		if !ok {
			return nil, fmt.Errorf("%w: no capacity for %s", ErrUnknownCategory, key.Category)
		}
		plan.TotalCapacity = &capacity
		plan.Fields = append(plan.Fields, FieldTotalCapacity)
	}

	if l.Available != nil {
		plan.DropAvailable = true
		plan.Fields = append(plan.Fields, FieldAvailable)
	}

	return plan, nil
}

// Canonical слот, которым станет строка после применения плана
func (l *LegacySlot) Canonical(plan *BackfillPlan) *Slot {
	slot := &Slot{Key: plan.Key}

	slot.BookedCount = ptr.Deref(l.BookedCount, ptr.Deref(plan.BookedCount, 0))
	slot.TotalCapacity = ptr.Deref(l.TotalCapacity, ptr.Deref(plan.TotalCapacity, 0))
	slot.Active = ptr.Deref(l.Active, ptr.Deref(plan.Active, false))

	return slot
}
