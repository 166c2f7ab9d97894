package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"reservation_id",
	"amount",
	"paid_at",
	"confirmed",
	"receipt_ref",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж. У бронирования может быть только один платеж.
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("reservation_id", "amount", "paid_at", "confirmed", "receipt_ref").
		Values(
			payment.ReservationID,
			payment.Amount,
			payment.PaidAt,
			payment.Confirmed,
			payment.ReceiptRef,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID)
	switch {
	case err == nil:
		return payment, nil
	case pgerrors.IsUniqueViolation(err):
		return nil, ErrDuplicatePayment
	case pgerrors.IsForeignKeyViolation(err):
		return nil, ErrReservationNotFound
	case pgerrors.IsCheckViolation(err):
		return nil, ErrInvalidAmount
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReservationID получает платеж бронирования
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByReservationID", squirrel.Eq{"reservation_id": reservationID})
}

// GetByReceiptRef получает платеж по ссылке на чек
func (r *Repository) GetByReceiptRef(ctx context.Context, ref string) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByReceiptRef", squirrel.Eq{"receipt_ref": ref})
}

// ExistsForReservation проверяет, есть ли у бронирования платеж
func (r *Repository) ExistsForReservation(ctx context.Context, reservationID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForReservation - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForReservation - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// Confirm отмечает платеж подтвержденным. Статус бронирования не меняется.
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("confirmed", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var payment domain.Payment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.Amount,
		&payment.PaidAt,
		&payment.Confirmed,
		&payment.ReceiptRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %w", ErrScanRow, op, err)
	}

	return &payment, nil
}
