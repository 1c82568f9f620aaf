package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	slotsRepo "github.com/m04kA/SMC-SlotInventory/internal/infra/storage/slots"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

// Названия операций для метрик
const (
	OperationList      = "list"
	OperationToggle    = "toggle"
	OperationSetActive = "set_active"
	OperationAdd       = "add"
)

// Service сервис управления слотами категорий
type Service struct {
	slotRepo   SlotRepository
	capacities domain.CapacityTable
	metrics    Metrics
	logger     Logger
}

// NewService создает новый экземпляр сервиса слотов
// metrics может быть nil
func NewService(
	slotRepo SlotRepository,
	capacities domain.CapacityTable,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:   slotRepo,
		capacities: capacities,
		metrics:    metrics,
		logger:     logger,
	}
}

// GetSlots возвращает снимок слотов, сгруппированный день -> категория -> время
// Если day == nil, возвращаются все дни окна
func (s *Service) GetSlots(ctx context.Context, day *domain.DayLabel) (resp *models.SlotsResponse, err error) {
	defer func() { s.observe(OperationList, err) }()

	days := domain.DayLabels()
	if day != nil {
		if !day.IsValid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrUnknownDayLabel)
		}
		days = []domain.DayLabel{*day}
	}

	resp = &models.SlotsResponse{Days: make([]models.DaySlots, 0, len(days))}
	for _, d := range days {
		result, err := s.slotRepo.ListByDay(ctx, d)
		if err != nil {
			s.logger.Error("GetSlots: repository error for day=%s: %v", d, err)
			return nil, fmt.Errorf("%w: GetSlots - repository error: %v", ErrInternal, err)
		}

		resp.Days = append(resp.Days, s.groupDay(d, result))
	}

	return resp, nil
}

// ToggleSlot инвертирует флаг active одного слота
func (s *Service) ToggleSlot(ctx context.Context, req *models.SlotKeyRequest) (resp *models.SlotResponse, err error) {
	defer func() { s.observe(OperationToggle, err) }()

	key, err := domain.NewSlotKey(req.DayLabel, req.Category, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("ToggleSlot: toggling slot=%s", key)

	slot, err := s.slotRepo.ToggleActive(ctx, key)
	if err != nil {
		return nil, s.mapRepoError("ToggleSlot", key, err)
	}

	s.logger.Info("ToggleSlot: slot=%s active=%t", key, slot.Active)
	return models.FromDomainSlot(slot), nil
}

// SetActive явно включает или отключает один слот
func (s *Service) SetActive(ctx context.Context, req *models.SlotKeyRequest, active bool) (resp *models.SlotResponse, err error) {
	defer func() { s.observe(OperationSetActive, err) }()

	key, err := domain.NewSlotKey(req.DayLabel, req.Category, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("SetActive: slot=%s active=%t", key, active)

	slot, err := s.slotRepo.SetActive(ctx, key, active)
	if err != nil {
		return nil, s.mapRepoError("SetActive", key, err)
	}

	return models.FromDomainSlot(slot), nil
}

// AddSlot создает слот с ёмкостью категории; существующий слот перезаписывается
func (s *Service) AddSlot(ctx context.Context, req *models.AddSlotRequest) (resp *models.SlotResponse, err error) {
	defer func() { s.observe(OperationAdd, err) }()

	key, err := domain.NewSlotKey(req.DayLabel, req.Category, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	capacity, ok := s.capacities.For(key.Category)
	if !ok {
		return nil, fmt.Errorf("%w: no capacity configured for %s", ErrInvalidInput, key.Category)
	}

	s.logger.Info("AddSlot: creating slot=%s capacity=%d", key, capacity)

	slot, err := s.slotRepo.Upsert(ctx, domain.NewSlot(key, capacity))
	if err != nil {
		s.logger.Error("AddSlot: repository error for slot=%s: %v", key, err)
		return nil, fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddSlot: slot=%s saved", key)
	return models.FromDomainSlot(slot), nil
}

// Capacities возвращает действующую таблицу ёмкостей
func (s *Service) Capacities() *models.CapacitiesResponse {
	return models.FromCapacityTable(s.capacities)
}

func (s *Service) groupDay(day domain.DayLabel, result *slotsRepo.ListResult) models.DaySlots {
	byCategory := make(map[domain.Category][]*domain.Slot, len(domain.Categories()))
	skipped := result.LegacyCount

	for _, slot := range result.Slots {
		if !slot.Key.Category.IsValid() {
			skipped++
			continue
		}
		if slot.IsOverCapacity() {
			s.logger.Warn("GetSlots: slot=%s over capacity booked=%d capacity=%d",
				slot.ID(), slot.BookedCount, slot.TotalCapacity)
		}
		byCategory[slot.Key.Category] = append(byCategory[slot.Key.Category], slot)
	}

	if skipped > 0 {
		s.logger.Warn("GetSlots: day=%s skipped=%d rows that need reconciliation", day, skipped)
	}

	out := models.DaySlots{
		DayLabel:   day.String(),
		Categories: make([]models.CategorySlots, 0, len(domain.Categories())),
		Skipped:    skipped,
	}

	// пустые категории тоже попадают в ответ
	for _, category := range domain.Categories() {
		slots := byCategory[category]
		domain.SortSlots(slots)

		capacity, _ := s.capacities.For(category)
		group := models.CategorySlots{
			Category: category.String(),
			Capacity: capacity,
			Slots:    make([]models.SlotResponse, 0, len(slots)),
		}
		for _, slot := range slots {
			group.Slots = append(group.Slots, *models.FromDomainSlot(slot))
		}
		out.Categories = append(out.Categories, group)
	}

	return out
}

func (s *Service) mapRepoError(op string, key domain.SlotKey, err error) error {
	switch {
	case errors.Is(err, slotsRepo.ErrSlotNotFound):
		s.logger.Warn("%s: slot=%s not found", op, key)
		return ErrSlotNotFound
	case errors.Is(err, slotsRepo.ErrLegacyShape):
		s.logger.Warn("%s: slot=%s is stored in legacy shape", op, key)
		return ErrLegacySlot
	default:
		s.logger.Error("%s: repository error for slot=%s: %v", op, key, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) observe(operation string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveSlotOperation(operation, err)
	}
}
