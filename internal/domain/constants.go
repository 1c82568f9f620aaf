package domain

// DayLabel позиция в скользящем окне из трех дней
type DayLabel string

const (
	DayToday            DayLabel = "Today"
	DayTomorrow         DayLabel = "Tomorrow"
	DayDayAfterTomorrow DayLabel = "Day After Tomorrow"
)

// Category категория услуг
type Category string

const (
	CategoryElectrician    Category = "Electrician"
	CategoryACServices     Category = "AC Services"
	CategoryPlumber        Category = "Plumber"
	CategoryCarpenter      Category = "Carpenter"
	CategoryGardener       Category = "Gardener"
	CategoryHomeAppliances Category = "Home Appliances"
)

// Статусы слота для отображения
const (
	StatusAvailable    = "available"
	StatusFull         = "full"
	StatusDisabled     = "disabled"
	StatusOverCapacity = "over_capacity"
)

// Значения полей для новых слотов и миграции
const (
	DefaultBookedCount = 0
	DefaultActive      = true
)

// Константы бизнес-валидации
const (
	MaxSlotTimeLength = 32
	MinCapacity       = 1
	MaxCapacity       = 100
)

// SlotKeySeparator разделитель частей ключа в строковом виде
const SlotKeySeparator = "/"

var dayLabels = []DayLabel{DayToday, DayTomorrow, DayDayAfterTomorrow}

var categories = []Category{
	CategoryElectrician,
	CategoryACServices,
	CategoryPlumber,
	CategoryCarpenter,
	CategoryGardener,
	CategoryHomeAppliances,
}

// DefaultCapacities ёмкость слота по категориям
var DefaultCapacities = map[Category]int{
	CategoryElectrician:    4,
	CategoryACServices:     2,
	CategoryPlumber:        3,
	CategoryCarpenter:      2,
	CategoryGardener:       1,
	CategoryHomeAppliances: 2,
}
