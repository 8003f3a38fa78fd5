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

const noteNotFoundMessage = "note not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notes repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create creates a new note.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Note, error) {
	query := `
		INSERT INTO notes (user_id, space_id, title, body, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, space_id, title, body, tags, created_at, updated_at`

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return scanNote(r.pool.QueryRow(ctx, query, params.UserID, params.SpaceID, params.Title, params.Body, tags), "create note")
}

// GetByID retrieves a note by its ID.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (Note, error) {
	query := `
		SELECT id, user_id, space_id, title, body, tags, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2`

	return scanNote(r.pool.QueryRow(ctx, query, id, userID), "get note by id")
}

// ListBySpace retrieves all notes in a space, most recently updated first.
func (r *Repo) ListBySpace(ctx context.Context, userID, spaceID uuid.UUID) ([]Note, error) {
	query := `
		SELECT id, user_id, space_id, title, body, tags, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND space_id = $2
		ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var results []Note
	for rows.Next() {
		n, err := scanNoteRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return results, nil
}

// Update updates an existing note.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Note, error) {
	query := `
		UPDATE notes SET
			title = COALESCE($3, title),
			body = COALESCE($4, body),
			tags = COALESCE($5, tags),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, space_id, title, body, tags, created_at, updated_at`

	// nil means "unchanged" so COALESCE keeps the current tags.
	var tags interface{}
	if params.Tags != nil {
		t := *params.Tags
		if t == nil {
			t = []string{}
		}
		tags = t
	}

	return scanNote(r.pool.QueryRow(ctx, query, params.ID, params.UserID, params.Title, params.Body, tags), "update note")
}

// Delete removes a note.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(noteNotFoundMessage)
	}

	return nil
}

func scanNote(row pgx.Row, op string) (Note, error) {
	var n Note
	var createdAt, updatedAt time.Time

	err := row.Scan(&n.ID, &n.UserID, &n.SpaceID, &n.Title, &n.Body, &n.Tags, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Note{}, apperr.NotFound(noteNotFoundMessage)
		}
		return Note{}, fmt.Errorf("%s: %w", op, err)
	}

	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = createdAt.Format(time.RFC3339)
	n.UpdatedAt = updatedAt.Format(time.RFC3339)

	return n, nil
}

func scanNoteRow(rows pgx.Rows) (Note, error) {
	var n Note
	var createdAt, updatedAt time.Time

	err := rows.Scan(&n.ID, &n.UserID, &n.SpaceID, &n.Title, &n.Body, &n.Tags, &createdAt, &updatedAt)
	if err != nil {
		return Note{}, fmt.Errorf("scan note: %w", err)
	}

	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = createdAt.Format(time.RFC3339)
	n.UpdatedAt = updatedAt.Format(time.RFC3339)

	return n, nil
}
