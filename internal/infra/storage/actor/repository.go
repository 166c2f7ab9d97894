package actor

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

// Repository репозиторий пользователей (менеджеры и организаторы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует пользователя. Email и ИНН (CPF) уникальны.
func (r *Repository) Create(ctx context.Context, actor *domain.Actor) (*domain.Actor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "tax_id", "full_name", "role").
		Values(strings.ToLower(actor.Email), actor.TaxID, actor.FullName, actor.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&actor.ID, &actor.CreatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			if pgerrors.Constraint(err) == "users_tax_id_key" {
				return nil, ErrTaxIDTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	actor.Email = strings.ToLower(actor.Email)
	return actor, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Actor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "role", "email", "tax_id", "full_name", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var actor domain.Actor
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&actor.ID,
		&actor.Role,
		&actor.Email,
		&actor.TaxID,
		&actor.FullName,
		&actor.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan actor: %w", ErrScanRow, err)
	}

	return &actor, nil
}

// ExistsByEmail проверяет, занят ли email (без учета регистра)
func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByEmail - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}
