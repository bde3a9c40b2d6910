// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// Result holds the outcome of converting a whole export.
type Result struct {
	Backup types.Backup
	// Attachments lists the attachment paths of all notes, in note order,
	// relative to the Keep directory.
	Attachments []string
}

// NoteCount returns the number of converted notes.
func (r Result) NoteCount() int { return len(r.Backup.Notes) }

// TagCount returns the number of tags in the backup.
func (r Result) TagCount() int { return len(r.Backup.Tags) }

// AttachmentCount returns the number of attachment files to copy.
func (r Result) AttachmentCount() int { return len(r.Attachments) }

// ConvertAll converts files in order, numbering notes from 1, and resolves
// every note's labels against tags. The first failing note aborts the
// conversion; no partial result is returned.
func (c *Converter) ConvertAll(files []NoteFile, tags []types.Tag) (Result, error) {
	backup := types.NewBackup(tags)
	var attachments []string

	for i, f := range files {
		id := i + 1

		nr, err := c.ConvertNote(id, f)
		if err != nil {
			return Result{}, err
		}
		backup.Notes = append(backup.Notes, nr.Note)

		joins, err := BuildJoins(id, nr.Labels, backup.Tags)
		if err != nil {
			return Result{}, fmt.Errorf("resolving labels of %s: %w", f.Stem(), err)
		}
		backup.Joins = append(backup.Joins, joins...)

		attachments = append(attachments, nr.Attachments...)
	}

	return Result{Backup: backup, Attachments: attachments}, nil
}
