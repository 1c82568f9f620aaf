package reconcile_legacy_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// UseCase use case для приведения слотов старого формата к каноническому
type UseCase struct {
	slotRepo   SlotRepository
	capacities domain.CapacityTable
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, capacities domain.CapacityTable, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:   slotRepo,
		capacities: capacities,
		logger:     logger,
	}
}

// Execute дописывает отсутствующие поля active, bookedCount, totalCapacity и удаляет флаг available
// Заполненные значения не меняются, поэтому повторный запуск ничего не пишет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReconcileLegacySlots: dryRun=%t", req.DryRun)

	// 1. Читаем все строки как есть
	rows, err := uc.slotRepo.ListAllRaw(ctx)
	if err != nil {
		uc.logger.Error("ReconcileLegacySlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	resp := &Response{DryRun: req.DryRun, Scanned: len(rows)}

	for _, row := range rows {
		if !row.NeedsBackfill() {
			continue
		}

		// 2. Строим план; строки с неразбираемым ключом не трогаем
		plan, err := row.Plan(uc.capacities)
		if err != nil {
			uc.logger.Warn("ReconcileLegacySlots: skip day=%q category=%q time=%q: %v",
				row.DayLabel, row.Category, row.Time, err)
			resp.Skipped = append(resp.Skipped, SkippedSlot{
				DayLabel: row.DayLabel,
				Category: row.Category,
				Time:     row.Time,
				Reason:   err.Error(),
			})
			continue
		}

		id := plan.Key.String()

		// 3. Каждая строка пишется отдельно
		if !req.DryRun {
			if err := uc.slotRepo.Backfill(ctx, plan); err != nil {
				uc.logger.Error("ReconcileLegacySlots: failed to backfill slot=%s: %v", id, err)
				resp.Failed = append(resp.Failed, FailedSlot{ID: id, Err: err})
				continue
			}
		}

		resp.Migrated = append(resp.Migrated, MigratedSlot{ID: id, Fields: plan.Fields})
	}

	uc.logger.Info("ReconcileLegacySlots: scanned=%d migrated=%d skipped=%d failed=%d dryRun=%t",
		resp.Scanned, len(resp.Migrated), len(resp.Skipped), len(resp.Failed), req.DryRun)

	if len(resp.Failed) > 0 {
		return resp, &PartialFailureError{Scanned: resp.Scanned, Failed: resp.Failed}
	}

	return resp, nil
}
