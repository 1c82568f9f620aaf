package domain

import (
	"fmt"
	"strings"
)

// DayLabels окно дней в порядке отображения
func DayLabels() []DayLabel {
	out := make([]DayLabel, len(dayLabels))
	copy(out, dayLabels)
	return out
}

// ParseDayLabel нормализует регистр и пробелы и приводит ввод к метке дня
func ParseDayLabel(s string) (DayLabel, error) {
	normalized := normalizeToken(s)
	for _, d := range dayLabels {
		if normalizeToken(string(d)) == normalized {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDayLabel, s)
}

func (d DayLabel) String() string {
	return string(d)
}

func (d DayLabel) IsValid() bool {
	for _, known := range dayLabels {
		if d == known {
			return true
		}
	}
	return false
}

// normalizeToken нижний регистр, серии пробелов схлопываются в один
func normalizeToken(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
