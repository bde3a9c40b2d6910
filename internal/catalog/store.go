// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes a Quillpad backup into a SQLite database so a
// conversion can be inspected before it is imported: notes by tag, text
// search, per-tag counts, and YAML/JSON export.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// DefaultDB is the catalog database used when none is configured.
const DefaultDB = "keep2quillpad.db"

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog database at cfg.DBPath and creates
// the schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = DefaultDB
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY,
			title TEXT,
			content TEXT,
			creation_date INTEGER NOT NULL,
			modified_date INTEGER NOT NULL,
			color TEXT,
			is_archived INTEGER NOT NULL DEFAULT 0,
			is_pinned INTEGER NOT NULL DEFAULT 0,
			is_deleted INTEGER NOT NULL DEFAULT 0,
			is_list INTEGER NOT NULL DEFAULT 0,
			tasks TEXT,
			attachments TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS joins (
			tag_id INTEGER NOT NULL REFERENCES tags(id),
			note_id INTEGER NOT NULL REFERENCES notes(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_joins_note_id ON joins(note_id)`,
		`CREATE INDEX IF NOT EXISTS idx_joins_tag_id ON joins(tag_id)`,
		`CREATE TABLE IF NOT EXISTS source (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			path TEXT NOT NULL,
			version INTEGER NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Notes int
	Tags  int
	Joins int
}

// Index replaces the catalog contents with backup, recording path as its
// source. The replacement happens in one transaction.
func (s *Store) Index(ctx context.Context, backup types.Backup, path string, w io.Writer) (IndexSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"joins", "notes", "tags", "source"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return IndexSummary{}, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO source (id, path, version) VALUES (1, ?, ?)`, path, backup.Version,
	); err != nil {
		return IndexSummary{}, fmt.Errorf("recording source: %w", err)
	}

	tagStmt, err := tx.PrepareContext(ctx, `INSERT INTO tags (id, name) VALUES (?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing tag insert: %w", err)
	}
	defer tagStmt.Close()
	for _, t := range backup.Tags {
		if _, err := tagStmt.ExecContext(ctx, t.ID, t.Name); err != nil {
			return IndexSummary{}, fmt.Errorf("inserting tag %d: %w", t.ID, err)
		}
	}

	noteStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO notes (id, title, content, creation_date, modified_date, color,
			is_archived, is_pinned, is_deleted, is_list, tasks, attachments)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing note insert: %w", err)
	}
	defer noteStmt.Close()
	for _, n := range backup.Notes {
		tasksJSON, _ := json.Marshal(n.TaskList)
		attachmentsJSON, _ := json.Marshal(n.Attachments)
		var content sql.NullString
		if n.Content != nil {
			content = sql.NullString{String: *n.Content, Valid: true}
		}
		_, err := noteStmt.ExecContext(ctx,
			n.ID, n.Title, content, n.CreationDate, n.ModifiedDate, n.Color,
			n.IsArchived, n.IsPinned, n.IsDeleted, n.IsList,
			string(tasksJSON), string(attachmentsJSON),
		)
		if err != nil {
			return IndexSummary{}, fmt.Errorf("inserting note %d: %w", n.ID, err)
		}
	}

	joinStmt, err := tx.PrepareContext(ctx, `INSERT INTO joins (tag_id, note_id) VALUES (?, ?)`)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("preparing join insert: %w", err)
	}
	defer joinStmt.Close()
	for _, j := range backup.Joins {
		if _, err := joinStmt.ExecContext(ctx, j.TagID, j.NoteID); err != nil {
			return IndexSummary{}, fmt.Errorf("inserting join %d/%d: %w", j.TagID, j.NoteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return IndexSummary{}, fmt.Errorf("committing index: %w", err)
	}

	summary := IndexSummary{Notes: len(backup.Notes), Tags: len(backup.Tags), Joins: len(backup.Joins)}
	fmt.Fprintf(w, "indexed %s: %d notes, %d tags, %d joins\n", path, summary.Notes, summary.Tags, summary.Joins)
	return summary, nil
}
