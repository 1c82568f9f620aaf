package domain

import "fmt"

// Categories все категории в порядке отображения
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory нормализует регистр и пробелы и приводит ввод к известной категории
func ParseCategory(s string) (Category, error) {
	normalized := normalizeToken(s)
	for _, c := range categories {
		if normalizeToken(string(c)) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}
