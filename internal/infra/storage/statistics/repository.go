package statistics

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

// Repository выборка фактов для статистики менеджера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListFacts все бронирования центров менеджера (центр -> пространство -> слот -> бронирование)
func (r *Repository) ListFacts(ctx context.Context, managerID int64) ([]domain.ReservationFact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"rv.id",
		"rv.status",
		"rv.created_at",
		"res.id",
		"res.name",
		"res.category",
		"s.slot_date",
		"s.start_time",
		"s.end_time",
		"s.price",
		"u.full_name",
	).
		From("reservations rv").
		Join("slots s ON s.id = rv.slot_id").
		Join("resources res ON res.id = s.resource_id").
		Join("venues v ON v.id = res.venue_id").
		Join("users u ON u.id = rv.organizer_id").
		Where(squirrel.Eq{"v.manager_id": managerID}).
		OrderBy("rv.created_at DESC", "rv.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFacts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFacts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	facts := make([]domain.ReservationFact, 0)
	for rows.Next() {
		var f domain.ReservationFact
		err := rows.Scan(
			&f.ReservationID,
			&f.Status,
			&f.CreatedAt,
			&f.ResourceID,
			&f.ResourceName,
			&f.Category,
			&f.Date,
			&f.StartTime,
			&f.EndTime,
			&f.Price,
			&f.OrganizerName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListFacts - scan row: %w", ErrScanRow, err)
		}
		facts = append(facts, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFacts - rows error: %w", ErrScanRow, err)
	}

	return facts, nil
}
