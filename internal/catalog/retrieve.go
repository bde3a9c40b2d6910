// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Text matches notes whose title, content or checklist contains it
	// (case-insensitive for ASCII).
	Text string

	// Tags filters by one or more tag names with AND semantics.
	Tags []string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Text == "" && len(q.Tags) == 0
}

// NoteRecord is a catalogued note with its tag names resolved.
type NoteRecord struct {
	types.Note `yaml:",inline"`
	TagNames   []string `json:"tagNames" yaml:"tag_names"`
}

// Retrieve returns notes matching opts, ordered by note id.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]NoteRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT n.id, n.title, n.content, n.creation_date, n.modified_date, n.color,
			n.is_archived, n.is_pinned, n.is_deleted, n.is_list, n.tasks, n.attachments,
			(SELECT json_group_array(t.name) FROM joins j JOIN tags t ON t.id = j.tag_id
			 WHERE j.note_id = n.id)
		FROM notes n
		WHERE 1=1`)

	if opts.Text != "" {
		pattern := "%" + opts.Text + "%"
		qb.WriteString(` AND (n.title LIKE ? OR n.content LIKE ? OR EXISTS (
			SELECT 1 FROM json_each(n.tasks) item
			WHERE json_extract(item.value, '$.content') LIKE ?))`)
		args = append(args, pattern, pattern, pattern)
	}

	for _, tag := range opts.Tags {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM joins j JOIN tags t ON t.id = j.tag_id
			WHERE j.note_id = n.id AND t.name = ?)`)
		args = append(args, tag)
	}

	qb.WriteString(` ORDER BY n.id LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []NoteRecord
	for rows.Next() {
		var (
			r               NoteRecord
			title, color    sql.NullString
			content         sql.NullString
			tasksJSON       sql.NullString
			attachmentsJSON sql.NullString
			tagsJSON        sql.NullString
		)
		if err := rows.Scan(
			&r.ID, &title, &content, &r.CreationDate, &r.ModifiedDate, &color,
			&r.IsArchived, &r.IsPinned, &r.IsDeleted, &r.IsList,
			&tasksJSON, &attachmentsJSON, &tagsJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.NotebookID = types.ImportNotebookID
		r.Title = title.String
		r.Color = color.String
		if content.Valid {
			c := content.String
			r.Content = &c
		}
		if tasksJSON.Valid {
			json.Unmarshal([]byte(tasksJSON.String), &r.TaskList)
		}
		if attachmentsJSON.Valid {
			json.Unmarshal([]byte(attachmentsJSON.String), &r.Attachments)
		}
		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &r.TagNames)
		}
		sort.Strings(r.TagNames)

		results = append(results, r)
	}

	return results, rows.Err()
}

// TagCount is the number of notes carrying a tag.
type TagCount struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Notes int    `json:"notes" yaml:"notes"`
}

// TagCounts returns every tag with the number of distinct notes joined to
// it, in tag id order. Tags without notes are included with a zero count.
func (s *Store) TagCounts(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.name, COUNT(DISTINCT j.note_id)
		FROM tags t
		LEFT JOIN joins j ON j.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("counting tags: %w", err)
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		var c TagCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Notes); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Source returns the path and format version of the indexed backup.
func (s *Store) Source(ctx context.Context) (path string, version int, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT path, version FROM source WHERE id = 1`).Scan(&path, &version)
	if err == sql.ErrNoRows {
		return "", 0, fmt.Errorf("catalog is empty: run catalog index first")
	}
	if err != nil {
		return "", 0, fmt.Errorf("reading catalog source: %w", err)
	}
	return path, version, nil
}
