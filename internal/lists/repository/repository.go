package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"later_backend/platform/apperr"
)

const (
	listNotFoundMessage = "list not found"
	itemNotFoundMessage = "list item not found"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lists repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateList creates a new list.
func (r *Repo) CreateList(ctx context.Context, params CreateListParams) (List, error) {
	query := `
		INSERT INTO lists (user_id, space_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, space_id, name, description, created_at, updated_at`

	return scanList(r.pool.QueryRow(ctx, query, params.UserID, params.SpaceID, params.Name, params.Description), "create list")
}

// GetListByID retrieves a list by its ID.
func (r *Repo) GetListByID(ctx context.Context, userID, id uuid.UUID) (List, error) {
	query := `
		SELECT id, user_id, space_id, name, description, created_at, updated_at
		FROM lists
		WHERE id = $1 AND user_id = $2`

	return scanList(r.pool.QueryRow(ctx, query, id, userID), "get list by id")
}

// ListsBySpace retrieves all lists in a space, most recently updated
// first.
func (r *Repo) ListsBySpace(ctx context.Context, userID, spaceID uuid.UUID) ([]List, error) {
	query := `
		SELECT id, user_id, space_id, name, description, created_at, updated_at
		FROM lists
		WHERE user_id = $1 AND space_id = $2
		ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var results []List
	for rows.Next() {
		var l List
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&l.ID, &l.UserID, &l.SpaceID, &l.Name, &l.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		l.CreatedAt = createdAt.Format(time.RFC3339)
		l.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	return results, nil
}

// UpdateList updates an existing list.
func (r *Repo) UpdateList(ctx context.Context, params UpdateListParams) (List, error) {
	query := `
		UPDATE lists SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, space_id, name, description, created_at, updated_at`

	return scanList(r.pool.QueryRow(ctx, query, params.ID, params.UserID, params.Name, params.Description), "update list")
}

// DeleteList removes a list. Its items cascade at the schema level.
func (r *Repo) DeleteList(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM lists WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(listNotFoundMessage)
	}

	return nil
}

// CreateItem creates a new list item.
func (r *Repo) CreateItem(ctx context.Context, params CreateItemParams) (ListItem, error) {
	query := `
		INSERT INTO list_items (user_id, list_id, title, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, list_id, title, note, created_at, updated_at`

	return scanItem(r.pool.QueryRow(ctx, query, params.UserID, params.ListID, params.Title, params.Note), "create list item")
}

// GetItemByID retrieves a list item by its ID.
func (r *Repo) GetItemByID(ctx context.Context, userID, id uuid.UUID) (ListItem, error) {
	query := `
		SELECT id, user_id, list_id, title, note, created_at, updated_at
		FROM list_items
		WHERE id = $1 AND user_id = $2`

	return scanItem(r.pool.QueryRow(ctx, query, id, userID), "get list item by id")
}

// ItemsByList retrieves all items in a list, most recently updated first.
func (r *Repo) ItemsByList(ctx context.Context, userID, listID uuid.UUID) ([]ListItem, error) {
	query := `
		SELECT id, user_id, list_id, title, note, created_at, updated_at
		FROM list_items
		WHERE user_id = $1 AND list_id = $2
		ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, listID)
	if err != nil {
		return nil, fmt.Errorf("list list items: %w", err)
	}
	defer rows.Close()

	var results []ListItem
	for rows.Next() {
		var li ListItem
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&li.ID, &li.UserID, &li.ListID, &li.Title, &li.Note, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan list item: %w", err)
		}
		li.CreatedAt = createdAt.Format(time.RFC3339)
		li.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list items: %w", err)
	}

	return results, nil
}

// UpdateItem updates an existing list item.
func (r *Repo) UpdateItem(ctx context.Context, params UpdateItemParams) (ListItem, error) {
	query := `
		UPDATE list_items SET
			title = COALESCE($3, title),
			note = COALESCE($4, note),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, list_id, title, note, created_at, updated_at`

	return scanItem(r.pool.QueryRow(ctx, query, params.ID, params.UserID, params.Title, params.Note), "update list item")
}

// DeleteItem removes a list item.
func (r *Repo) DeleteItem(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM list_items WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete list item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMessage)
	}

	return nil
}

func scanList(row pgx.Row, op string) (List, error) {
	var l List
	var createdAt, updatedAt time.Time

	err := row.Scan(&l.ID, &l.UserID, &l.SpaceID, &l.Name, &l.Description, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return List{}, apperr.NotFound(listNotFoundMessage)
		}
		return List{}, fmt.Errorf("%s: %w", op, err)
	}

	l.CreatedAt = createdAt.Format(time.RFC3339)
	l.UpdatedAt = updatedAt.Format(time.RFC3339)

	return l, nil
}

func scanItem(row pgx.Row, op string) (ListItem, error) {
	var li ListItem
	var createdAt, updatedAt time.Time

	err := row.Scan(&li.ID, &li.UserID, &li.ListID, &li.Title, &li.Note, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ListItem{}, apperr.NotFound(itemNotFoundMessage)
		}
		return ListItem{}, fmt.Errorf("%s: %w", op, err)
	}

	li.CreatedAt = createdAt.Format(time.RFC3339)
	li.UpdatedAt = updatedAt.Format(time.RFC3339)

	return li, nil
}
