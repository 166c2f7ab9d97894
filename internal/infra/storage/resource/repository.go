package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

var resourceColumns = []string{
	"res.id",
	"res.venue_id",
	"res.name",
	"res.category",
	"res.profile_image",
	"res.cover_image",
	"res.photos",
	"res.created_at",
	"res.updated_at",
}

var summaryColumns = append(append([]string{}, resourceColumns...),
	"v.id",
	"v.manager_id",
	"v.name",
	"v.city",
	"v.region",
	"v.average_rating",
	`(SELECT MIN(s.price) FROM slots s WHERE s.resource_id = res.id AND s.status = 'open') AS min_open_price`,
	`(SELECT COUNT(*) FROM reservations rv JOIN slots s ON s.id = rv.slot_id
		WHERE s.resource_id = res.id AND (rv.service_rating IS NOT NULL
			OR rv.facility_rating IS NOT NULL
			OR rv.cleanliness_rating IS NOT NULL)) AS ratings_count`,
)

// Repository репозиторий для работы с пространствами (корты, поля, бассейны)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пространств
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пространство
func (r *Repository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	photos := resource.Photos
	if photos == nil {
		photos = []string{}
	}

	query, args, err := psqlbuilder.Insert("resources").
		Columns("venue_id", "name", "category", "profile_image", "cover_image", "photos").
		Values(
			resource.VenueID,
			resource.Name,
			resource.Category,
			resource.ProfileImage,
			resource.CoverImage,
			pq.Array(photos),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		return nil, classifyWriteError("Create - execute insert", err)
	}

	resource.Photos = photos
	return resource, nil
}

// Update обновляет пространство
func (r *Repository) Update(ctx context.Context, resource *domain.Resource) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	photos := resource.Photos
	if photos == nil {
		photos = []string{}
	}

	query, args, err := psqlbuilder.Update("resources").
		Set("name", resource.Name).
		Set("category", resource.Category).
		Set("profile_image", resource.ProfileImage).
		Set("cover_image", resource.CoverImage).
		Set("photos", pq.Array(photos)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": resource.ID}).
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

// Delete удаляет пространство вместе со слотами и бронированиями
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resources").
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

// GetSummary получает пространство с центром, минимальной ценой открытого слота и числом оценок
func (r *Repository) GetSummary(ctx context.Context, id int64) (*domain.ResourceSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := summarySelect().
		Where(squirrel.Eq{"res.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSummary - build select query: %v", ErrBuildQuery, err)
	}

	var summary domain.ResourceSummary
	err = executor.QueryRowContext(ctx, query, args...).Scan(summaryDest(&summary)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSummary - scan resource: %w", ErrScanRow, err)
	}

	return &summary, nil
}

// Exists проверяет, существует ли пространство
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("resources").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}

// List пространства по фильтру, по имени
func (r *Repository) List(ctx context.Context, filter domain.ResourceFilter) ([]*domain.ResourceSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := summarySelect().OrderBy("res.name ASC", "res.id ASC")

	if filter.VenueID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"res.venue_id": *filter.VenueID})
	}
	if filter.Name != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"res.name": psqlbuilder.Contains(*filter.Name)})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"res.category": *filter.Category})
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

	resources := make([]*domain.ResourceSummary, 0)
	for rows.Next() {
		var summary domain.ResourceSummary
		if err := rows.Scan(summaryDest(&summary)...); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		resources = append(resources, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return resources, nil
}

func summarySelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(summaryColumns...).
		From("resources res").
		Join("venues v ON v.id = res.venue_id")
}

func summaryDest(summary *domain.ResourceSummary) []interface{} {
	res := &summary.Resource
	return []interface{}{
		&res.ID,
		&res.VenueID,
		&res.Name,
		&res.Category,
		&res.ProfileImage,
		&res.CoverImage,
		pq.Array(&res.Photos),
		&res.CreatedAt,
		&res.UpdatedAt,
		&summary.Venue.ID,
		&summary.Venue.ManagerID,
		&summary.Venue.Name,
		&summary.Venue.City,
		&summary.Venue.Region,
		&summary.Venue.AverageRating,
		&summary.MinOpenPrice,
		&summary.RatingsCount,
	}
}

func classifyWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return ErrResourceAlreadyExists
	case pgerrors.IsForeignKeyViolation(err):
		return ErrVenueNotFound
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
		return ErrResourceNotFound
	}
	return nil
}
