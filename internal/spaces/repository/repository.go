package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"

	"later_backend/platform/apperr"
)

const spaceNotFoundMessage = "space not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new spaces repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create creates a new space.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Space, error) {
	query := `
		INSERT INTO spaces (user_id, name, icon)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, icon, created_at, updated_at`

	return r.scanOne(r.pool.QueryRow(ctx, query, params.UserID, params.Name, params.Icon), "create space")
}

// GetByID retrieves a space by its ID.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (Space, error) {
	query := `
		SELECT id, user_id, name, icon, created_at, updated_at
		FROM spaces
		WHERE id = $1 AND user_id = $2`

	return r.scanOne(r.pool.QueryRow(ctx, query, id, userID), "get space by id")
}

// List retrieves all spaces for a user ordered by name.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]Space, error) {
	query := `
		SELECT id, user_id, name, icon, created_at, updated_at
		FROM spaces
		WHERE user_id = $1
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	var results []Space
	for rows.Next() {
		var sp Space
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&sp.ID, &sp.UserID, &sp.Name, &sp.Icon, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		sp.CreatedAt = createdAt.Format(time.RFC3339)
		sp.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spaces: %w", err)
	}

	return results, nil
}

// Update updates an existing space.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Space, error) {
	query := `
		UPDATE spaces SET
			name = COALESCE($3, name),
			icon = COALESCE($4, icon),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, icon, created_at, updated_at`

	return r.scanOne(r.pool.QueryRow(ctx, query, params.ID, params.UserID, params.Name, params.Icon), "update space")
}

// Delete removes a space. Content in the space cascades at the schema
// level.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM spaces WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(spaceNotFoundMessage)
	}

	return nil
}

func (r *Repo) scanOne(row pgx.Row, op string) (Space, error) {
	var sp Space
	var createdAt, updatedAt time.Time

	err := row.Scan(&sp.ID, &sp.UserID, &sp.Name, &sp.Icon, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Space{}, apperr.NotFound(spaceNotFoundMessage)
		}
		return Space{}, fmt.Errorf("%s: %w", op, err)
	}

	sp.CreatedAt = createdAt.Format(time.RFC3339)
	sp.UpdatedAt = updatedAt.Format(time.RFC3339)

	return sp, nil
}
