package types

import (
	"strconv"
	"strings"
)

// DisplayTime время слота в том виде, в каком его ввёл администратор ("9:00 AM", "14:30")
// Строка не нормализуется до timestamp: она является частью ключа слота
type DisplayTime string

// NewDisplayTime убирает пробелы по краям и схлопывает повторяющиеся пробелы внутри
func NewDisplayTime(s string) DisplayTime {
	return DisplayTime(strings.Join(strings.Fields(s), " "))
}

func (t DisplayTime) String() string {
	return string(t)
}

// IsZero возвращает true для пустого времени
func (t DisplayTime) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// MinutesOfDay возвращает количество минут от полуночи
// Поддерживаются форматы "9", "9:05", "09:05", "9 AM", "9:05pm", "12:00 AM"
// ok = false, если строку не удалось распознать
func (t DisplayTime) MinutesOfDay() (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(string(t)))
	if s == "" {
		return 0, false
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
	}
	if meridiem != "" {
		s = strings.TrimSpace(strings.TrimSuffix(s, meridiem))
	}

	hourPart, minutePart := s, "0"
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		hourPart, minutePart = s[:idx], s[idx+1:]
		if len(minutePart) != 2 {
			return 0, false
		}
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 {
		return 0, false
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	switch meridiem {
	case "":
		if hour > 23 {
			return 0, false
		}
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	}

	return hour*60 + minute, true
}

// Compare сравнивает два времени для сортировки
// Распознанные времена сортируются по минутам от полуночи и идут раньше нераспознанных,
// нераспознанные сравниваются как строки
func Compare(a, b DisplayTime) int {
	am, aok := a.MinutesOfDay()
	bm, bok := b.MinutesOfDay()

	switch {
	case aok && bok:
		if am != bm {
			if am < bm {
				return -1
			}
			return 1
		}
	case aok:
		return -1
	case bok:
		return 1
	}

	return strings.Compare(string(a), string(b))
}
