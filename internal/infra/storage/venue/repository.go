package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

var venueColumns = []string{
	"v.id",
	"v.manager_id",
	"v.name",
	"v.description",
	"v.latitude",
	"v.longitude",
	"v.city",
	"v.region",
	"v.average_rating",
	"v.profile_image",
	"v.cover_image",
	"v.created_at",
	"v.updated_at",
}

const (
	minOpenPriceColumn = `(SELECT MIN(s.price) FROM slots s JOIN resources r ON r.id = s.resource_id
		WHERE r.venue_id = v.id AND s.status = 'open') AS min_open_price`

	ratingsCountColumn = `(SELECT COUNT(*) FROM reservations rv
		JOIN slots s ON s.id = rv.slot_id
		JOIN resources r ON r.id = s.resource_id
		WHERE r.venue_id = v.id AND (rv.service_rating IS NOT NULL
			OR rv.facility_rating IS NOT NULL
			OR rv.cleanliness_rating IS NOT NULL)) AS ratings_count`

	// среднее по всем непустым оценкам бронирований центра, до одного знака
	averageRatingExpr = `COALESCE((SELECT ROUND(AVG(scores.score)::numeric, 1)
		FROM reservations rv
		JOIN slots s ON s.id = rv.slot_id
		JOIN resources r ON r.id = s.resource_id
		CROSS JOIN LATERAL (VALUES (rv.service_rating), (rv.facility_rating), (rv.cleanliness_rating)) AS scores(score)
		WHERE r.venue_id = ? AND scores.score IS NOT NULL), 0)`
)

// Repository репозиторий для работы со спортивными центрами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория центров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает центр
func (r *Repository) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venues").
		Columns(
			"manager_id",
			"name",
			"description",
			"latitude",
			"longitude",
			"city",
			"region",
			"profile_image",
			"cover_image",
		).
		Values(
			venue.ManagerID,
			venue.Name,
			venue.Description,
			venue.Latitude,
			venue.Longitude,
			venue.City,
			venue.Region,
			venue.ProfileImage,
			venue.CoverImage,
		).
		Suffix("RETURNING id, average_rating, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&venue.ID,
		&venue.AverageRating,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, classifyWriteError("Create - execute insert", err)
	}

	return venue, nil
}

// Update обновляет редактируемые поля центра
func (r *Repository) Update(ctx context.Context, venue *domain.Venue) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("name", venue.Name).
		Set("description", venue.Description).
		Set("latitude", venue.Latitude).
		Set("longitude", venue.Longitude).
		Set("city", venue.City).
		Set("region", venue.Region).
		Set("profile_image", venue.ProfileImage).
		Set("cover_image", venue.CoverImage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": venue.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("Update - execute update", err)
	}

	return expectOneRow(result, "Update")
}

// Delete удаляет центр. Пространства, слоты, бронирования и платежи удаляются каскадно.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return expectOneRow(result, "Delete")
}

// GetByID получает центр по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues v").
		Where(squirrel.Eq{"v.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var venue domain.Venue
	err = executor.QueryRowContext(ctx, query, args...).Scan(venueDest(&venue)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %w", ErrScanRow, err)
	}

	return &venue, nil
}

// GetSummary получает центр с минимальной ценой открытого слота и числом оценок
func (r *Repository) GetSummary(ctx context.Context, id int64) (*domain.VenueSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := summarySelect().
		Where(squirrel.Eq{"v.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSummary - build select query: %v", ErrBuildQuery, err)
	}

	var summary domain.VenueSummary
	err = executor.QueryRowContext(ctx, query, args...).Scan(summaryDest(&summary)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSummary - scan venue: %w", ErrScanRow, err)
	}

	return &summary, nil
}

// List центры по фильтру, по имени
func (r *Repository) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.VenueSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := summarySelect().OrderBy("v.name ASC", "v.id ASC")

	if filter.Name != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"v.name": psqlbuilder.Contains(*filter.Name)})
	}
	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"v.city": psqlbuilder.Contains(*filter.City)})
	}
	if filter.Region != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"v.region": strings.ToUpper(*filter.Region)})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(
			"EXISTS (SELECT 1 FROM resources rc WHERE rc.venue_id = v.id AND rc.category = ?)", *filter.Category,
		)
	}
	if filter.ManagerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"v.manager_id": *filter.ManagerID})
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

	venues := make([]*domain.VenueSummary, 0)
	for rows.Next() {
		var summary domain.VenueSummary
		if err := rows.Scan(summaryDest(&summary)...); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		venues = append(venues, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return venues, nil
}

// RecalculateRating пересчитывает средний рейтинг центра и возвращает новое значение
func (r *Repository) RecalculateRating(ctx context.Context, venueID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("average_rating", squirrel.Expr(averageRatingExpr, venueID)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": venueID}).
		Suffix("RETURNING average_rating").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RecalculateRating - build update query: %v", ErrBuildQuery, err)
	}

	var rating float64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrVenueNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: RecalculateRating - execute update: %w", ErrExecQuery, err)
	}

	return rating, nil
}

func summarySelect() squirrel.SelectBuilder {
	columns := append(append([]string{}, venueColumns...), minOpenPriceColumn, ratingsCountColumn)
	return psqlbuilder.Select(columns...).From("venues v")
}

func venueDest(venue *domain.Venue) []interface{} {
	return []interface{}{
		&venue.ID,
		&venue.ManagerID,
		&venue.Name,
		&venue.Description,
		&venue.Latitude,
		&venue.Longitude,
		&venue.City,
		&venue.Region,
		&venue.AverageRating,
		&venue.ProfileImage,
		&venue.CoverImage,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	}
}

func summaryDest(summary *domain.VenueSummary) []interface{} {
	return append(venueDest(&summary.Venue), &summary.MinOpenPrice, &summary.RatingsCount)
}

func classifyWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return ErrVenueAlreadyExists
	case pgerrors.IsForeignKeyViolation(err):
		return ErrManagerNotFound
	default:
		return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
	}
}

func expectOneRow(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}
