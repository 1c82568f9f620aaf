package models

import (
	"time"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// Request модели

// AddSlotRequest запрос на создание слота
type AddSlotRequest struct {
	Category string `json:"category"`
	DayLabel string `json:"dayLabel"`
	Time     string `json:"time"`
}

// SlotKeyRequest ключ слота из пути запроса
type SlotKeyRequest struct {
	DayLabel string
	Category string
	Time     string
}

// Response модели

// SlotResponse данные слота для админки
type SlotResponse struct {
	ID            string    `json:"id"`
	DayLabel      string    `json:"dayLabel"`
	Category      string    `json:"category"`
	Time          string    `json:"time"`
	BookedCount   int       `json:"bookedCount"`
	TotalCapacity int       `json:"totalCapacity"`
	Remaining     int       `json:"remaining"`
	Active        bool      `json:"active"`
	IsAvailable   bool      `json:"isAvailable"`
	OverCapacity  bool      `json:"overCapacity,omitempty"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// CategorySlots слоты одной категории в порядке времени
type CategorySlots struct {
	Category string         `json:"category"`
	Capacity int            `json:"capacity"`
	Slots    []SlotResponse `json:"slots"`
}

// DaySlots слоты одного дня, сгруппированные по категориям
type DaySlots struct {
	DayLabel   string          `json:"dayLabel"`
	Categories []CategorySlots `json:"categories"`
	// Skipped строки, которые нельзя показать (старый формат или неизвестная категория)
	Skipped int `json:"skipped,omitempty"`
}

// SlotsResponse полный снимок слотов
type SlotsResponse struct {
	Days []DaySlots `json:"days"`
}

// CategoryCapacity ёмкость слота категории
type CategoryCapacity struct {
	Category string `json:"category"`
	Capacity int    `json:"capacity"`
}

// CapacitiesResponse таблица ёмкостей и окно дней
type CapacitiesResponse struct {
	Days       []string           `json:"days"`
	Categories []CategoryCapacity `json:"categories"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:            s.ID(),
		DayLabel:      s.Key.Day.String(),
		Category:      s.Key.Category.String(),
		Time:          s.Key.Time.String(),
		BookedCount:   s.BookedCount,
		TotalCapacity: s.TotalCapacity,
		Remaining:     s.Remaining(),
		Active:        s.Active,
		IsAvailable:   s.IsAvailable(),
		OverCapacity:  s.IsOverCapacity(),
		Status:        s.Status(),
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromCapacityTable конвертирует таблицу ёмкостей в DTO в фиксированном порядке категорий
func FromCapacityTable(table domain.CapacityTable) *CapacitiesResponse {
	resp := &CapacitiesResponse{}

	for _, day := range domain.DayLabels() {
		resp.Days = append(resp.Days, day.String())
	}

	for _, category := range domain.Categories() {
		capacity, _ := table.For(category)
		resp.Categories = append(resp.Categories, CategoryCapacity{
			Category: category.String(),
			Capacity: capacity,
		})
	}

	return resp
}
