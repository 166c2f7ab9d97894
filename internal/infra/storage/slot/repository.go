package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

var slotColumns = []string{
	"s.id",
	"s.resource_id",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"s.price",
	"s.status",
	"s.created_at",
	"s.updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот. Пересечение с существующим слотом отсекается ограничением slots_no_overlap.
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	status := slot.Status
	if status == "" {
		status = domain.SlotOpen
	}

	query, args, err := psqlbuilder.Insert("slots").
		Columns("resource_id", "slot_date", "start_time", "end_time", "price", "status").
		Values(
			slot.ResourceID,
			slot.Date.Format(domain.DateFormat),
			slot.StartTime,
			slot.EndTime,
			slot.Price,
			status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return nil, classifyWriteError("Create - execute insert", err)
	}

	slot.Status = status
	return slot, nil
}

// Update обновляет дату, интервал и цену слота
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("slot_date", slot.Date.Format(domain.DateFormat)).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("price", slot.Price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("Update - execute update", err)
	}

	return expectOneRow(result, "Update", ErrSlotNotFound)
}

// Delete удаляет слот вместе с бронированиями (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return expectOneRow(result, "Delete", ErrSlotNotFound)
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(slotDest(&slot)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return &slot, nil
}

// GetOwnership получает слот с цепочкой владения пространство -> центр -> менеджер
func (r *Repository) GetOwnership(ctx context.Context, id int64) (*domain.SlotOwnership, error) {
	return r.getOwnership(ctx, id, "GetOwnership", false)
}

// LockOwnership как GetOwnership, но блокирует строку слота до конца транзакции
func (r *Repository) LockOwnership(ctx context.Context, id int64) (*domain.SlotOwnership, error) {
	return r.getOwnership(ctx, id, "LockOwnership", dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getOwnership(ctx context.Context, id int64, op string, lock bool) (*domain.SlotOwnership, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(append(slotColumns,
		"res.name",
		"res.category",
		"v.id",
		"v.name",
		"v.manager_id",
	)...).
		From("slots s").
		Join("resources res ON res.id = s.resource_id").
		Join("venues v ON v.id = res.venue_id").
		Where(squirrel.Eq{"s.id": id})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var own domain.SlotOwnership
	dest := append(slotDest(&own.Slot),
		&own.ResourceName,
		&own.Category,
		&own.VenueID,
		&own.VenueName,
		&own.ManagerID,
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %w", ErrScanRow, op, err)
	}

	return &own, nil
}

// ListByResourceAndDate слоты пространства на дату, по времени начала.
// В транзакции строки блокируются (FOR UPDATE) для проверки пересечений.
func (r *Repository) ListByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Where(squirrel.Eq{"s.resource_id": resourceID}).
		Where(squirrel.Eq{"s.slot_date": date.Format(domain.DateFormat)}).
		OrderBy("s.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResourceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResourceAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListAvailable открытые слоты пространства на дату без оплаченного бронирования
func (r *Repository) ListAvailable(ctx context.Context, resourceID int64, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Where(squirrel.Eq{"s.resource_id": resourceID}).
		Where(squirrel.Eq{"s.slot_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"s.status": domain.SlotOpen}).
		Where("NOT EXISTS (SELECT 1 FROM reservations rv WHERE rv.slot_id = s.id AND rv.status = ?)", domain.ReservationPaid).
		OrderBy("s.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// List слоты по фильтру, по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots s").
		OrderBy("s.slot_date ASC", "s.start_time ASC")

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.resource_id": *filter.ResourceID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.slot_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ClaimOpen атомарно переводит слот open -> unavailable.
// Если слот уже не открыт, возвращает ErrSlotNotOpen: из нескольких конкурентов выигрывает один.
func (r *Repository) ClaimOpen(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotUnavailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.SlotOpen}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClaimOpen - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClaimOpen - execute update: %w", ErrExecQuery, err)
	}

	return expectOneRow(result, "ClaimOpen", ErrSlotNotOpen)
}

// SetStatus устанавливает статус слота (освобождение при отмене, ручное обслуживание)
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("SetStatus - execute update", err)
	}

	return expectOneRow(result, "SetStatus", ErrSlotNotFound)
}

// Release возвращает слот в open
func (r *Repository) Release(ctx context.Context, id int64) error {
	return r.SetStatus(ctx, id, domain.SlotOpen)
}

func slotDest(slot *domain.Slot) []interface{} {
	return []interface{}{
		&slot.ID,
		&slot.ResourceID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Price,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	}
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(slotDest(&slot)...); err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

func classifyWriteError(op string, err error) error {
	switch {
	case pgerrors.IsExclusionViolation(err):
		return ErrSlotOverlap
	case pgerrors.IsCheckViolation(err):
		return ErrInvalidRange
	case pgerrors.IsForeignKeyViolation(err):
		return ErrResourceNotFound
	default:
		return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
	}
}

func expectOneRow(result sql.Result, op string, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
