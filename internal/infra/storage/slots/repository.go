package slots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	"github.com/m04kA/SMC-SlotInventory/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotInventory/pkg/types"
)

// ListResult результат выборки слотов за день
type ListResult struct {
	Slots []*domain.Slot
	// LegacyCount количество строк в старом формате, пропущенных при чтении
	LegacyCount int
}

// Repository репозиторий слотов категорий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает слот или полностью перезаписывает существующий (last write wins)
func (r *Repository) Upsert(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	query, args, err := upsertQuery(slot).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	stored, err := scanRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return stored.toSlot()
}

// ListByDay получает все канонические слоты дня
// Строки в старом формате пропускаются и учитываются в LegacyCount
func (r *Repository) ListByDay(ctx context.Context, day domain.DayLabel) (*ListResult, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{colDayLabel: string(day)}).
		OrderBy(colCategory, "time_sort_key NULLS LAST", colSlotTime).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.listRows(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("ListByDay: %w", err)
	}

	result := &ListResult{Slots: make([]*domain.Slot, 0, len(rows))}
	for _, stored := range rows {
		slot, err := stored.toSlot()
		if err != nil {
			result.LegacyCount++
			continue
		}
		result.Slots = append(result.Slots, slot)
	}

	return result, nil
}

// ListKeysByDay получает ключи всех слотов дня, включая строки в старом формате
// Запись в строку старого формата отклоняется самой записью (ErrLegacyShape)
func (r *Repository) ListKeysByDay(ctx context.Context, day domain.DayLabel) ([]domain.SlotKey, error) {
	query, args, err := psqlbuilder.Select(colDayLabel, colCategory, colSlotTime).
		From(tableName).
		Where(squirrel.Eq{colDayLabel: string(day)}).
		OrderBy(colCategory, "time_sort_key NULLS LAST", colSlotTime).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListKeysByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListKeysByDay - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var keys []domain.SlotKey
	for rows.Next() {
		var day, category, slotTime string
		if err := rows.Scan(&day, &category, &slotTime); err != nil {
			return nil, fmt.Errorf("%w: ListKeysByDay - scan key: %v", ErrScanRow, err)
		}
		// ключ берется как есть: запись должна попасть в ту же строку
		keys = append(keys, domain.SlotKey{
			Day:      domain.DayLabel(day),
			Category: domain.Category(category),
			Time:     types.DisplayTime(slotTime),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListKeysByDay - iterate rows: %v", ErrScanRow, err)
	}

	return keys, nil
}

// ListAllRaw получает все строки таблицы как есть (вход для миграции старого формата)
func (r *Repository) ListAllRaw(ctx context.Context) ([]*domain.LegacySlot, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy(colDayLabel, colCategory, colSlotTime).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllRaw - build select query: %v", ErrBuildQuery, err)
	}

	return r.listLegacy(ctx, "ListAllRaw", query, args)
}

// SetActive включает или отключает один слот
// Строка в старом формате не изменяется: ErrLegacyShape
func (r *Repository) SetActive(ctx context.Context, key domain.SlotKey, active bool) (*domain.Slot, error) {
	query, args, err := setActiveQuery(key, active).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	stored, err := scanRow(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classify(ctx, key, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	return stored.toSlot()
}

// ToggleActive атомарно инвертирует флаг active одним UPDATE
func (r *Repository) ToggleActive(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	query, args, err := toggleQuery(key).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleActive - build update query: %v", ErrBuildQuery, err)
	}

	stored, err := scanRow(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classify(ctx, key, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleActive - execute update: %v", ErrExecQuery, err)
	}

	return stored.toSlot()
}

// Reserve атомарно занимает одно место в слоте
// Обновление применяется только если слот активен и не заполнен, иначе причина определяется повторным чтением
func (r *Repository) Reserve(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	query, args, err := reserveQuery(key).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	stored, err := scanRow(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classify(ctx, key, func(current *row) error {
			if !current.Active.Bool {
				return ErrSlotDisabled
			}
			if current.BookedCount.Int64 >= current.TotalCapacity.Int64 {
				return ErrSlotFull
			}
			return nil
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	return stored.toSlot()
}

// Release атомарно освобождает одно место в слоте
func (r *Repository) Release(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	query, args, err := releaseQuery(key).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	stored, err := scanRow(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.classify(ctx, key, func(current *row) error {
			if current.BookedCount.Int64 <= 0 {
				return ErrNothingToRelease
			}
			return nil
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return stored.toSlot()
}

// Backfill дописывает отсутствующие поля строки и удаляет устаревший флаг available
// Уже заполненные значения не перезаписываются (COALESCE)
func (r *Repository) Backfill(ctx context.Context, plan *domain.BackfillPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	query, args, err := backfillQuery(plan).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Backfill - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Backfill - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Backfill - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func (r *Repository) getRow(ctx context.Context, key domain.SlotKey) (*row, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(keyCondition(key)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getRow - build select query: %v", ErrBuildQuery, err)
	}

	stored, err := scanRow(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getRow - scan slot: %v", ErrScanRow, err)
	}

	return stored, nil
}

// classify определяет, почему условный UPDATE не затронул ни одной строки
func (r *Repository) classify(ctx context.Context, key domain.SlotKey, reason func(current *row) error) error {
	current, err := r.getRow(ctx, key)
	if err != nil {
		return err
	}
	if !current.isCanonical() {
		return ErrLegacyShape
	}
	if reason != nil {
		if err := reason(current); err != nil {
			return err
		}
	}
	return ErrConcurrentUpdate
}

func (r *Repository) listRows(ctx context.Context, query string, args []interface{}) ([]*row, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []*row
	for rows.Next() {
		stored, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan slot: %v", ErrScanRow, err)
		}
		result = append(result, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) listLegacy(ctx context.Context, op, query string, args []interface{}) ([]*domain.LegacySlot, error) {
	rows, err := r.listRows(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*domain.LegacySlot, 0, len(rows))
	for _, stored := range rows {
		result = append(result, stored.toLegacy())
	}
	return result, nil
}

func keyCondition(key domain.SlotKey) squirrel.Eq {
	return squirrel.Eq{
		colDayLabel: string(key.Day),
		colCategory: string(key.Category),
		colSlotTime: string(key.Time),
	}
}

// canonicalCondition строка содержит все канонические поля
var canonicalCondition = squirrel.And{
	squirrel.NotEq{"booked_count": nil},
	squirrel.NotEq{"total_capacity": nil},
	squirrel.NotEq{"active": nil},
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func upsertQuery(slot *domain.Slot) squirrel.InsertBuilder {
	return psqlbuilder.Insert(tableName).
		Columns(
			colDayLabel,
			colCategory,
			colSlotTime,
			"time_sort_key",
			"booked_count",
			"total_capacity",
			"active",
		).
		Values(
			string(slot.Key.Day),
			string(slot.Key.Category),
			string(slot.Key.Time),
			timeSortKey(slot.Key.Time),
			slot.BookedCount,
			slot.TotalCapacity,
			slot.Active,
		).
		Suffix("ON CONFLICT (day_label, category, slot_time) DO UPDATE SET " +
			"time_sort_key = EXCLUDED.time_sort_key, " +
			"booked_count = EXCLUDED.booked_count, " +
			"total_capacity = EXCLUDED.total_capacity, " +
			"active = EXCLUDED.active, " +
			"available = NULL, " +
			"updated_at = NOW() " +
			returning())
}

func setActiveQuery(key domain.SlotKey, active bool) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyCondition(key)).
		Where(canonicalCondition).
		Suffix(returning())
}

func toggleQuery(key domain.SlotKey) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("active", squirrel.Expr("NOT active")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyCondition(key)).
		Where(canonicalCondition).
		Suffix(returning())
}

func reserveQuery(key domain.SlotKey) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyCondition(key)).
		Where(squirrel.Eq{"active": true}).
		Where("booked_count < total_capacity").
		Suffix(returning())
}

func releaseQuery(key domain.SlotKey) squirrel.UpdateBuilder {
	return psqlbuilder.Update(tableName).
		Set("booked_count", squirrel.Expr("booked_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyCondition(key)).
		Where(canonicalCondition).
		Where(squirrel.Gt{"booked_count": 0}).
		Suffix(returning())
}

func backfillQuery(plan *domain.BackfillPlan) squirrel.UpdateBuilder {
	update := psqlbuilder.Update(tableName).
		Set("time_sort_key", timeSortKey(plan.Key.Time))

	if plan.Active != nil {
		update = update.Set("active", squirrel.Expr("COALESCE(active, ?)", *plan.Active))
	}
	if plan.BookedCount != nil {
		update = update.Set("booked_count", squirrel.Expr("COALESCE(booked_count, ?)", *plan.BookedCount))
	}
	if plan.TotalCapacity != nil {
		update = update.Set("total_capacity", squirrel.Expr("COALESCE(total_capacity, ?)", *plan.TotalCapacity))
	}
	if plan.DropAvailable {
		update = update.Set("available", nil)
	}

	return update.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyCondition(plan.Key))
}
