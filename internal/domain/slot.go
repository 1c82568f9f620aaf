package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotInventory/pkg/types"
)

// SlotKey естественный ключ слота
type SlotKey struct {
	Day      DayLabel
	Category Category
	Time     types.DisplayTime
}

// NewSlotKey нормализует ввод в ключ слота
// День и категория приводятся к закрытым перечислениям, время остается в отображаемом виде
func NewSlotKey(day, category, slotTime string) (SlotKey, error) {
	d, err := ParseDayLabel(day)
	if err != nil {
		return SlotKey{}, err
	}

	c, err := ParseCategory(category)
	if err != nil {
		return SlotKey{}, err
	}

	t := types.NewDisplayTime(slotTime)
	if t.IsZero() {
		return SlotKey{}, ErrEmptySlotTime
	}
	if len(t) > MaxSlotTimeLength {
		return SlotKey{}, fmt.Errorf("%w: %d characters max", ErrSlotTimeTooLong, MaxSlotTimeLength)
	}
	if strings.Contains(string(t), SlotKeySeparator) {
		return SlotKey{}, fmt.Errorf("%w: time must not contain %q", ErrInvalidSlotKey, SlotKeySeparator)
	}

	return SlotKey{Day: d, Category: c, Time: t}, nil
}

func (k SlotKey) String() string {
	return string(k.Day) + SlotKeySeparator + string(k.Category) + SlotKeySeparator + string(k.Time)
}

// Slot единица ёмкости (день, категория, время)
type Slot struct {
	Key           SlotKey
	BookedCount   int
	TotalCapacity int
	Active        bool // выключатель администратора, не зависит от ёмкости
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSlot новый слот: без бронирований, активен
func NewSlot(key SlotKey, totalCapacity int) *Slot {
	return &Slot{
		Key:           key,
		BookedCount:   DefaultBookedCount,
		TotalCapacity: totalCapacity,
		Active:        DefaultActive,
	}
}

func (s *Slot) ID() string {
	return s.Key.String()
}

// IsAvailable слот активен и есть свободное место
func (s *Slot) IsAvailable() bool {
	return s.Active && s.BookedCount < s.TotalCapacity
}

func (s *Slot) IsFull() bool {
	return s.BookedCount >= s.TotalCapacity
}

// IsOverCapacity бронирований больше, чем ёмкость
// Такие слоты показываются администратору как есть и не исправляются автоматически
func (s *Slot) IsOverCapacity() bool {
	return s.BookedCount > s.TotalCapacity
}

// Remaining количество свободных мест
func (s *Slot) Remaining() int {
	if s.IsFull() {
		return 0
	}
	return s.TotalCapacity - s.BookedCount
}

// Status статус для отображения
func (s *Slot) Status() string {
	switch {
	case !s.Active:
		return StatusDisabled
	case s.IsOverCapacity():
		return StatusOverCapacity
	case s.IsFull():
		return StatusFull
	default:
		return StatusAvailable
	}
}

// SortSlots сортирует по времени суток, если его удается разобрать, иначе по строке
func SortSlots(slots []*Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return types.Compare(slots[i].Key.Time, slots[j].Key.Time) < 0
	})
}
