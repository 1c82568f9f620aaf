package domain

import "errors"

var (
	// ErrUnknownDayLabel возвращается для метки дня вне окна Today/Tomorrow/Day After Tomorrow
	ErrUnknownDayLabel = errors.New("domain: unknown day label")

	// ErrUnknownCategory возвращается для неизвестной категории услуг
	ErrUnknownCategory = errors.New("domain: unknown category")

	// ErrEmptySlotTime возвращается, когда время слота не указано
	ErrEmptySlotTime = errors.New("domain: slot time is required")

	// ErrSlotTimeTooLong возвращается, когда время слота длиннее MaxSlotTimeLength
	ErrSlotTimeTooLong = errors.New("domain: slot time is too long")

	// ErrInvalidSlotKey возвращается, когда время нельзя использовать в ключе слота
	ErrInvalidSlotKey = errors.New("domain: invalid slot key")

	// ErrInvalidCapacity возвращается для ёмкости вне диапазона [MinCapacity, MaxCapacity]
	ErrInvalidCapacity = errors.New("domain: invalid capacity")
)
