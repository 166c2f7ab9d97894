package reservation

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

var reservationColumns = []string{
	"r.id",
	"r.organizer_id",
	"r.slot_id",
	"r.status",
	"r.service_rating",
	"r.facility_rating",
	"r.cleanliness_rating",
	"r.comment",
	"r.created_at",
	"r.cancelled_at",
}

var detailsColumns = append(append([]string{}, reservationColumns...),
	"s.id",
	"s.resource_id",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"s.price",
	"s.status",
	"s.created_at",
	"s.updated_at",
	"res.name",
	"res.category",
	"v.id",
	"v.name",
	"v.manager_id",
	"u.full_name",
	"p.id",
	"p.amount",
	"p.paid_at",
	"p.confirmed",
	"p.receipt_ref",
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Второе активное бронирование того же слота отсекается частичным уникальным индексом.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	status := reservation.Status
	if status == "" {
		status = domain.ReservationPending
	}

	insert := psqlbuilder.Insert("reservations").
		Columns("organizer_id", "slot_id", "status")
	if reservation.CreatedAt.IsZero() {
		insert = insert.Values(reservation.OrganizerID, reservation.SlotID, status).
			Suffix("RETURNING id, created_at")
	} else {
		insert = insert.Columns("created_at").
			Values(reservation.OrganizerID, reservation.SlotID, status, reservation.CreatedAt).
			Suffix("RETURNING id, created_at")
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &reservation.CreatedAt)
	switch {
	case err == nil:
	case pgerrors.IsUniqueViolation(err):
		return nil, ErrSlotAlreadyReserved
	case pgerrors.IsForeignKeyViolation(err):
		return nil, ErrReferenceNotFound
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	reservation.Status = status
	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	err = executor.QueryRowContext(ctx, query, args...).Scan(reservationDest(&reservation)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return &reservation, nil
}

// GetDetails получает бронирование со слотом, цепочкой владения, организатором и платежом
func (r *Repository) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - scan reservation: %w", ErrScanRow, err)
	}

	return details, nil
}

// ListByOrganizer бронирования организатора, новые первыми
func (r *Repository) ListByOrganizer(ctx context.Context, organizerID int64) ([]*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.organizer_id": organizerID}).
		OrderBy("r.created_at DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganizer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganizer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// ListManaged бронирования центров менеджера с фильтрами панели
func (r *Repository) ListManaged(ctx context.Context, filter domain.ManagedReservationsFilter) ([]*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := detailsSelect().
		Where(squirrel.Eq{"v.manager_id": filter.ManagerID}).
		OrderBy("r.created_at DESC", "r.id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	}
	if filter.OrganizerName != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"u.full_name": psqlbuilder.Contains(*filter.OrganizerName)})
	}
	if filter.ResourceName != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"res.name": psqlbuilder.Contains(*filter.ResourceName)})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"res.category": *filter.Category})
	}
	if filter.CreatedFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"r.created_at": startOfDay(*filter.CreatedFrom)})
	}
	if filter.CreatedTo != nil {
		// до конца указанного дня
		selectBuilder = selectBuilder.Where(squirrel.Lt{"r.created_at": startOfDay(*filter.CreatedTo).AddDate(0, 0, 1)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListManaged - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListManaged - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// MarkCancelled условно отменяет бронирование: WHERE status <> 'cancelled'.
// Повторная (или конкурентная) отмена получает ErrAlreadyCancelled.
func (r *Repository) MarkCancelled(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationCancelled).
		Set("cancelled_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.ReservationCancelled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - execute update: %w", ErrExecQuery, err)
	}

	return expectOneRow(result, "MarkCancelled", ErrAlreadyCancelled)
}

// MarkPaid условно переводит pending -> paid
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationPaid).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ReservationPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}

	return expectOneRow(result, "MarkPaid", ErrStatusChanged)
}

// SetRating сохраняет оценки и комментарий. Оценивать можно только оплаченное бронирование.
func (r *Repository) SetRating(ctx context.Context, id int64, rating domain.Rating) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("service_rating", rating.Service).
		Set("facility_rating", rating.Facility).
		Set("cleanliness_rating", rating.Cleanliness).
		Set("comment", rating.Comment).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ReservationPaid}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetRating - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetRating - execute update: %w", ErrExecQuery, err)
	}

	return expectOneRow(result, "SetRating", ErrStatusChanged)
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("reservations r").
		Join("slots s ON s.id = r.slot_id").
		Join("resources res ON res.id = s.resource_id").
		Join("venues v ON v.id = res.venue_id").
		Join("users u ON u.id = r.organizer_id").
		LeftJoin("payments p ON p.reservation_id = r.id")
}

func reservationDest(res *domain.Reservation) []interface{} {
	return []interface{}{
		&res.ID,
		&res.OrganizerID,
		&res.SlotID,
		&res.Status,
		&res.ServiceRating,
		&res.FacilityRating,
		&res.CleanlinessRating,
		&res.Comment,
		&res.CreatedAt,
		&res.CancelledAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row rowScanner) (*domain.ReservationDetails, error) {
	var details domain.ReservationDetails
	var payment struct {
		ID         *int64
		Amount     sql.NullString
		PaidAt     *time.Time
		Confirmed  *bool
		ReceiptRef *string
	}

	slot := &details.Slot
	dest := append(reservationDest(&details.Reservation),
		&slot.ID,
		&slot.ResourceID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Price,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
		&slot.ResourceName,
		&slot.Category,
		&slot.VenueID,
		&slot.VenueName,
		&slot.ManagerID,
		&details.OrganizerName,
		&payment.ID,
		&payment.Amount,
		&payment.PaidAt,
		&payment.Confirmed,
		&payment.ReceiptRef,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if payment.ID != nil {
		p := &domain.Payment{
			ID:            *payment.ID,
			ReservationID: details.ID,
			ReceiptRef:    payment.ReceiptRef,
		}
		if err := p.Amount.Scan(payment.Amount.String); err != nil {
			return nil, err
		}
		if payment.PaidAt != nil {
			p.PaidAt = *payment.PaidAt
		}
		if payment.Confirmed != nil {
			p.Confirmed = *payment.Confirmed
		}
		details.Payment = p
	}

	return &details, nil
}

// scanDetailsRows сканирует результаты запроса в слайс бронирований
func scanDetailsRows(rows *sql.Rows) ([]*domain.ReservationDetails, error) {
	list := make([]*domain.ReservationDetails, 0)

	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetailsRows - scan row: %w", ErrScanRow, err)
		}
		list = append(list, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %w", ErrScanRow, err)
	}

	return list, nil
}

func expectOneRow(result sql.Result, op string, noRows error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return noRows
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
