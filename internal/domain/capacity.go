package domain

import "fmt"

// CapacityTable сколько бронирований принимает один слот категории
type CapacityTable map[Category]int

// NewCapacityTable DefaultCapacities с переопределениями из конфигурации
// Ключи переопределений нормализуются как в ParseCategory
func NewCapacityTable(overrides map[string]int) (CapacityTable, error) {
	table := make(CapacityTable, len(DefaultCapacities))
	for c, v := range DefaultCapacities {
		table[c] = v
	}

	for name, value := range overrides {
		category, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if value < MinCapacity || value > MaxCapacity {
			return nil, fmt.Errorf("%w: %s=%d (allowed %d..%d)", ErrInvalidCapacity, category, value, MinCapacity, MaxCapacity)
		}
		table[category] = value
	}

	return table, nil
}

func (t CapacityTable) For(c Category) (int, bool) {
	v, ok := t[c]
	return v, ok
}
