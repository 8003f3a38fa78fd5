package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"later_backend/internal/search/transport"
	"later_backend/platform/apperr"
)

// perTypeLimit caps each per-type query; the merged list is at most
// five times this size.
const perTypeLimit = 50

const headlineOpts = "MaxFragments=2, MaxWords=30, MinWords=10, StartSel=**, StopSel=**"

// Repo implements the Searcher interface with PostgreSQL full-text search.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new search repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Searcher.
var _ Searcher = (*Repo)(nil)

// Search runs one full-text query per requested content type. The per-type
// queries run concurrently; the merged list is sorted by updated_at
// descending with id ascending as the tie-break so the ordering is total.
func (r *Repo) Search(ctx context.Context, q Query) ([]SearchResult, error) {
	perType := make([][]SearchResult, len(q.Types))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, ct := range q.Types {
		g.Go(func() error {
			results, err := r.searchType(gctx, q, ct)
			if err != nil {
				return err
			}
			mu.Lock()
			perType[i] = results
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]SearchResult, 0)
	for _, results := range perType {
		merged = append(merged, results...)
	}
	sortResults(merged)

	return merged, nil
}

func (r *Repo) searchType(ctx context.Context, q Query, ct transport.ContentType) ([]SearchResult, error) {
	switch ct {
	case transport.ContentTypeNote:
		return r.searchNotes(ctx, q)
	case transport.ContentTypeTodoList:
		return r.searchTodoLists(ctx, q)
	case transport.ContentTypeList:
		return r.searchLists(ctx, q)
	case transport.ContentTypeTodoItem:
		return r.searchTodoItems(ctx, q)
	case transport.ContentTypeListItem:
		return r.searchListItems(ctx, q)
	default:
		return nil, apperr.BadRequest(fmt.Sprintf("unknown content type %q", ct))
	}
}

// searchNotes queries the notes table. Notes carry tags, so the tag filter
// applies here.
func (r *Repo) searchNotes(ctx context.Context, q Query) ([]SearchResult, error) {
	query := `
		SELECT n.id, n.title,
			ts_headline('english', n.body, websearch_to_tsquery('english', $3), $4) AS preview,
			n.tags, n.updated_at,
			CASE WHEN $6 THEN n.body END AS content
		FROM notes n
		WHERE n.user_id = $1 AND n.space_id = $2
			AND n.search_vector @@ websearch_to_tsquery('english', $3)
			AND ($5::text[] IS NULL OR n.tags && $5)
		ORDER BY ts_rank(n.search_vector, websearch_to_tsquery('english', $3)) DESC, n.updated_at DESC
		LIMIT ` + fmt.Sprint(perTypeLimit)

	rows, err := r.pool.Query(ctx, query, q.UserID, q.SpaceID, q.Text, headlineOpts, tagsParam(q.Tags), q.IncludeContent)
	if err != nil {
		return nil, mapBackendError("search notes", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		res := SearchResult{Type: transport.ContentTypeNote}
		if err := rows.Scan(&res.ID, &res.Title, &res.Preview, &res.Tags, &res.UpdatedAt, &res.Content); err != nil {
			return nil, fmt.Errorf("scan note result: %w", err)
		}
		if res.Tags == nil {
			res.Tags = []string{}
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, mapBackendError("search notes", err)
	}

	return results, nil
}

// searchTodoLists queries the todo_lists table. No tags column, so the tag
// filter does not apply.
func (r *Repo) searchTodoLists(ctx context.Context, q Query) ([]SearchResult, error) {
	return r.searchContainers(ctx, q, "todo_lists", transport.ContentTypeTodoList)
}

// searchLists queries the lists table. No tags column, so the tag filter
// does not apply.
func (r *Repo) searchLists(ctx context.Context, q Query) ([]SearchResult, error) {
	return r.searchContainers(ctx, q, "lists", transport.ContentTypeList)
}

// searchContainers covers the two parent container tables, which share a
// name + description shape.
func (r *Repo) searchContainers(ctx context.Context, q Query, table string, ct transport.ContentType) ([]SearchResult, error) {
	query := `
		SELECT c.id, c.name,
			ts_headline('english', coalesce(c.description, ''), websearch_to_tsquery('english', $3), $4) AS preview,
			c.updated_at,
			CASE WHEN $5 THEN c.description END AS content
		FROM ` + table + ` c
		WHERE c.user_id = $1 AND c.space_id = $2
			AND c.search_vector @@ websearch_to_tsquery('english', $3)
		ORDER BY ts_rank(c.search_vector, websearch_to_tsquery('english', $3)) DESC, c.updated_at DESC
		LIMIT ` + fmt.Sprint(perTypeLimit)

	op := "search " + table
	rows, err := r.pool.Query(ctx, query, q.UserID, q.SpaceID, q.Text, headlineOpts, q.IncludeContent)
	if err != nil {
		return nil, mapBackendError(op, err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		res := SearchResult{Type: ct, Tags: []string{}}
		if err := rows.Scan(&res.ID, &res.Title, &res.Preview, &res.UpdatedAt, &res.Content); err != nil {
			return nil, fmt.Errorf("scan %s result: %w", table, err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, mapBackendError(op, err)
	}

	return results, nil
}

// searchTodoItems queries todo_items joined to their parent todo list for
// display context. Todo items carry tags, so the tag filter applies.
func (r *Repo) searchTodoItems(ctx context.Context, q Query) ([]SearchResult, error) {
	query := `
		SELECT ti.id, ti.title,
			ts_headline('english', coalesce(ti.note, ''), websearch_to_tsquery('english', $3), $4) AS preview,
			ti.tags, ti.updated_at, tl.id, tl.name,
			CASE WHEN $6 THEN ti.note END AS content
		FROM todo_items ti
		JOIN todo_lists tl ON tl.id = ti.list_id
		WHERE ti.user_id = $1 AND tl.space_id = $2
			AND ti.search_vector @@ websearch_to_tsquery('english', $3)
			AND ($5::text[] IS NULL OR ti.tags && $5)
		ORDER BY ts_rank(ti.search_vector, websearch_to_tsquery('english', $3)) DESC, ti.updated_at DESC
		LIMIT ` + fmt.Sprint(perTypeLimit)

	rows, err := r.pool.Query(ctx, query, q.UserID, q.SpaceID, q.Text, headlineOpts, tagsParam(q.Tags), q.IncludeContent)
	if err != nil {
		return nil, mapBackendError("search todo items", err)
	}
	defer rows.Close()

	return scanChildResults(rows, transport.ContentTypeTodoItem, true)
}

// searchListItems queries list_items joined to their parent list. No tags
// column, so the tag filter does not apply.
func (r *Repo) searchListItems(ctx context.Context, q Query) ([]SearchResult, error) {
	query := `
		SELECT li.id, li.title,
			ts_headline('english', coalesce(li.note, ''), websearch_to_tsquery('english', $3), $4) AS preview,
			li.updated_at, l.id, l.name,
			CASE WHEN $5 THEN li.note END AS content
		FROM list_items li
		JOIN lists l ON l.id = li.list_id
		WHERE li.user_id = $1 AND l.space_id = $2
			AND li.search_vector @@ websearch_to_tsquery('english', $3)
		ORDER BY ts_rank(li.search_vector, websearch_to_tsquery('english', $3)) DESC, li.updated_at DESC
		LIMIT ` + fmt.Sprint(perTypeLimit)

	rows, err := r.pool.Query(ctx, query, q.UserID, q.SpaceID, q.Text, headlineOpts, q.IncludeContent)
	if err != nil {
		return nil, mapBackendError("search list items", err)
	}
	defer rows.Close()

	return scanChildResults(rows, transport.ContentTypeListItem, false)
}

// scanChildResults scans rows from a child-type query, which carry the
// parent container's id and name after the item columns.
func scanChildResults(rows pgx.Rows, ct transport.ContentType, hasTags bool) ([]SearchResult, error) {
	var results []SearchResult
	for rows.Next() {
		res := SearchResult{Type: ct, Tags: []string{}}

		var err error
		if hasTags {
			err = rows.Scan(&res.ID, &res.Title, &res.Preview, &res.Tags, &res.UpdatedAt, &res.ParentID, &res.ParentName, &res.Content)
		} else {
			err = rows.Scan(&res.ID, &res.Title, &res.Preview, &res.UpdatedAt, &res.ParentID, &res.ParentName, &res.Content)
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s result: %w", ct, err)
		}
		if res.Tags == nil {
			res.Tags = []string{}
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, mapBackendError("scan "+string(ct), err)
	}

	return results, nil
}

// sortResults orders merged results by updated_at descending. Ties fall
// back to id ascending so the ordering is total and reproducible.
func sortResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].UpdatedAt.Equal(results[j].UpdatedAt) {
			return results[i].UpdatedAt.After(results[j].UpdatedAt)
		}
		return strings.Compare(results[i].ID.String(), results[j].ID.String()) < 0
	})
}

// tagsParam returns nil for "no filter" so the SQL NULL check disables the
// tags predicate.
func tagsParam(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// mapBackendError classifies backend failures so callers can distinguish
// retryable outages from everything else. Unclassified errors are wrapped
// plain; the service layer normalizes those.
func mapBackendError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindTimeout, "search timed out", err).WithOp(op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 42501 insufficient_privilege, class 08 connection exceptions
		if pgErr.Code == "42501" {
			return apperr.Wrap(apperr.KindForbidden, "search not permitted", err).WithOp(op)
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return apperr.Wrap(apperr.KindUnavailable, "search backend unavailable", err).WithOp(op)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
