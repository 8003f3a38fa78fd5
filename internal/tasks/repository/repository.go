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
	listNotFoundMessage = "todo list not found"
	itemNotFoundMessage = "todo item not found"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tasks repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateList creates a new todo list.
func (r *Repo) CreateList(ctx context.Context, params CreateListParams) (TodoList, error) {
	query := `
		INSERT INTO todo_lists (user_id, space_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, space_id, name, description, created_at, updated_at`

	return scanList(r.pool.QueryRow(ctx, query, params.UserID, params.SpaceID, params.Name, params.Description), "create todo list")
}

// GetListByID retrieves a todo list by its ID.
func (r *Repo) GetListByID(ctx context.Context, userID, id uuid.UUID) (TodoList, error) {
	query := `
		SELECT id, user_id, space_id, name, description, created_at, updated_at
		FROM todo_lists
		WHERE id = $1 AND user_id = $2`

	return scanList(r.pool.QueryRow(ctx, query, id, userID), "get todo list by id")
}

// ListsBySpace retrieves all todo lists in a space, most recently updated
// first.
func (r *Repo) ListsBySpace(ctx context.Context, userID, spaceID uuid.UUID) ([]TodoList, error) {
	query := `
		SELECT id, user_id, space_id, name, description, created_at, updated_at
		FROM todo_lists
		WHERE user_id = $1 AND space_id = $2
		ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list todo lists: %w", err)
	}
	defer rows.Close()

	var results []TodoList
	for rows.Next() {
		var tl TodoList
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&tl.ID, &tl.UserID, &tl.SpaceID, &tl.Name, &tl.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan todo list: %w", err)
		}
		tl.CreatedAt = createdAt.Format(time.RFC3339)
		tl.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, tl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todo lists: %w", err)
	}

	return results, nil
}

// UpdateList updates an existing todo list.
func (r *Repo) UpdateList(ctx context.Context, params UpdateListParams) (TodoList, error) {
	query := `
		UPDATE todo_lists SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, space_id, name, description, created_at, updated_at`

	return scanList(r.pool.QueryRow(ctx, query, params.ID, params.UserID, params.Name, params.Description), "update todo list")
}

// DeleteList removes a todo list. Its items cascade at the schema level.
func (r *Repo) DeleteList(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM todo_lists WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(listNotFoundMessage)
	}

	return nil
}

// CreateItem creates a new todo item.
func (r *Repo) CreateItem(ctx context.Context, params CreateItemParams) (TodoItem, error) {
	query := `
		INSERT INTO todo_items (user_id, list_id, title, note, tags, remind_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, list_id, title, note, tags, done, remind_at, created_at, updated_at`

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return scanItem(r.pool.QueryRow(ctx, query, params.UserID, params.ListID, params.Title, params.Note, tags, params.RemindAt), "create todo item")
}

// GetItemByID retrieves a todo item by its ID.
func (r *Repo) GetItemByID(ctx context.Context, userID, id uuid.UUID) (TodoItem, error) {
	query := `
		SELECT id, user_id, list_id, title, note, tags, done, remind_at, created_at, updated_at
		FROM todo_items
		WHERE id = $1 AND user_id = $2`

	return scanItem(r.pool.QueryRow(ctx, query, id, userID), "get todo item by id")
}

// ItemsByList retrieves all items in a todo list, open items first, each
// group most recently updated first.
func (r *Repo) ItemsByList(ctx context.Context, userID, listID uuid.UUID) ([]TodoItem, error) {
	query := `
		SELECT id, user_id, list_id, title, note, tags, done, remind_at, created_at, updated_at
		FROM todo_items
		WHERE user_id = $1 AND list_id = $2
		ORDER BY done ASC, updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, listID)
	if err != nil {
		return nil, fmt.Errorf("list todo items: %w", err)
	}
	defer rows.Close()

	var results []TodoItem
	for rows.Next() {
		ti, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, ti)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todo items: %w", err)
	}

	return results, nil
}

// UpdateItem updates an existing todo item.
func (r *Repo) UpdateItem(ctx context.Context, params UpdateItemParams) (TodoItem, error) {
	query := `
		UPDATE todo_items SET
			title = COALESCE($3, title),
			note = COALESCE($4, note),
			tags = COALESCE($5, tags),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, list_id, title, note, tags, done, remind_at, created_at, updated_at`

	// nil means "unchanged" so COALESCE keeps the current tags.
	var tags interface{}
	if params.Tags != nil {
		t := *params.Tags
		if t == nil {
			t = []string{}
		}
		tags = t
	}

	return scanItem(r.pool.QueryRow(ctx, query, params.ID, params.UserID, params.Title, params.Note, tags), "update todo item")
}

// SetItemDone marks a todo item complete or open.
func (r *Repo) SetItemDone(ctx context.Context, userID, id uuid.UUID, done bool) (TodoItem, error) {
	query := `
		UPDATE todo_items SET done = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, list_id, title, note, tags, done, remind_at, created_at, updated_at`

	return scanItem(r.pool.QueryRow(ctx, query, id, userID, done), "set todo item done")
}

// SetItemReminder sets or clears a todo item's reminder time.
func (r *Repo) SetItemReminder(ctx context.Context, userID, id uuid.UUID, remindAt *time.Time) (TodoItem, error) {
	query := `
		UPDATE todo_items SET remind_at = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, list_id, title, note, tags, done, remind_at, created_at, updated_at`

	return scanItem(r.pool.QueryRow(ctx, query, id, userID, remindAt), "set todo item reminder")
}

// DeleteItem removes a todo item.
func (r *Repo) DeleteItem(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM todo_items WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMessage)
	}

	return nil
}

func scanList(row pgx.Row, op string) (TodoList, error) {
	var tl TodoList
	var createdAt, updatedAt time.Time

	err := row.Scan(&tl.ID, &tl.UserID, &tl.SpaceID, &tl.Name, &tl.Description, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TodoList{}, apperr.NotFound(listNotFoundMessage)
		}
		return TodoList{}, fmt.Errorf("%s: %w", op, err)
	}

	tl.CreatedAt = createdAt.Format(time.RFC3339)
	tl.UpdatedAt = updatedAt.Format(time.RFC3339)

	return tl, nil
}

func scanItem(row pgx.Row, op string) (TodoItem, error) {
	var ti TodoItem
	var createdAt, updatedAt time.Time

	err := row.Scan(&ti.ID, &ti.UserID, &ti.ListID, &ti.Title, &ti.Note, &ti.Tags, &ti.Done, &ti.RemindAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TodoItem{}, apperr.NotFound(itemNotFoundMessage)
		}
		return TodoItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if ti.Tags == nil {
		ti.Tags = []string{}
	}
	ti.CreatedAt = createdAt.Format(time.RFC3339)
	ti.UpdatedAt = updatedAt.Format(time.RFC3339)

	return ti, nil
}

func scanItemRow(rows pgx.Rows) (TodoItem, error) {
	var ti TodoItem
	var createdAt, updatedAt time.Time

	err := rows.Scan(&ti.ID, &ti.UserID, &ti.ListID, &ti.Title, &ti.Note, &ti.Tags, &ti.Done, &ti.RemindAt, &createdAt, &updatedAt)
	if err != nil {
		return TodoItem{}, fmt.Errorf("scan todo item: %w", err)
	}

	if ti.Tags == nil {
		ti.Tags = []string{}
	}
	ti.CreatedAt = createdAt.Format(time.RFC3339)
	ti.UpdatedAt = updatedAt.Format(time.RFC3339)

	return ti, nil
}
