package reconcile_legacy_slots

// Request модель запроса на миграцию слотов старого формата
type Request struct {
	DryRun bool // Только посчитать изменения, ничего не записывать
}

// MigratedSlot строка, которой были дописаны поля
type MigratedSlot struct {
	ID     string
	Fields []string // Заполненные поля, например active, totalCapacity
}

// SkippedSlot строка, которую нельзя мигрировать автоматически
type SkippedSlot struct {
	DayLabel string
	Category string
	Time     string
	Reason   string
}

// FailedSlot строка, запись которой завершилась ошибкой
type FailedSlot struct {
	ID  string
	Err error
}

// Response модель ответа
type Response struct {
	DryRun   bool
	Scanned  int            // Всего строк
	Migrated []MigratedSlot // Строки с дописанными полями (при DryRun - план)
	Skipped  []SkippedSlot  // Строки с некорректным ключом
	Failed   []FailedSlot   // Ошибки записи
}
