// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert maps Google Keep notes onto Quillpad notes and resolves
// their labels into tag joins.
//
// Everything here is pure: notes arrive already decoded and ids are handed
// in by the caller, so the same input always yields the same output.
package convert

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// untitledPattern matches the file name stem Takeout gives notes that
// never had a title, e.g. 2021-03-04T05_06_07.890+01_00.
var untitledPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}_\d{2}_\d{2}.\d{3}\+\d{2}_\d{2}$`)

// IsUntitled reports whether a note file name stem is an auto-generated
// timestamp rather than a user-supplied title.
func IsUntitled(stem string) bool {
	return untitledPattern.MatchString(stem)
}

// NoteFile is a decoded Keep note together with the name of the file it
// came from. Name may be a bare file name or a path; only the stem is used.
type NoteFile struct {
	Name string
	Note types.KeepNote
}

// Stem returns the file name without directory and extension.
func (f NoteFile) Stem() string {
	base := filepath.Base(f.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NoteResult is a converted note plus the references the caller still has
// to deal with: raw label names to resolve into joins, and attachment
// paths to copy into the bundle.
type NoteResult struct {
	Note        types.Note
	Labels      []string
	Attachments []string
}

// Converter turns Keep notes into Quillpad notes. Build one with New.
type Converter struct {
	colors      ColorTable
	attachments bool
	titles      types.TitlePolicy
}

// New builds a Converter from cfg. An empty title policy means
// types.TitleUntitled.
func New(cfg types.ConversionConfig) (*Converter, error) {
	policy := cfg.TitlePolicy
	if policy == "" {
		policy = types.TitleUntitled
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown title policy %q: use %s or %s", policy, types.TitleUntitled, types.TitleFilename)
	}

	colors, err := NewColorTable(cfg.ExtraColors, cfg.ColorMap)
	if err != nil {
		return nil, err
	}

	return &Converter{
		colors:      colors,
		attachments: cfg.Attachments,
		titles:      policy,
	}, nil
}

// ConvertNote maps a single Keep note onto a Quillpad note with the given
// id. It fails with an *InputError when a required field is missing.
func (c *Converter) ConvertNote(id int, f NoteFile) (NoteResult, error) {
	src := f.Note
	if err := checkRequired(f); err != nil {
		return NoteResult{}, err
	}

	n := types.Note{
		ID:           id,
		CreationDate: src.CreatedTimestampUsec.Seconds(),
		ModifiedDate: src.UserEditedTimestampUsec.Seconds(),
		NotebookID:   types.ImportNotebookID,
		IsArchived:   *src.IsArchived,
		IsPinned:     *src.IsPinned,
		IsDeleted:    *src.IsTrashed,
	}

	stem := f.Stem()
	if c.titles == types.TitleFilename || !IsUntitled(stem) {
		n.Title = stem
	}

	if color, ok := c.colors.Lookup(*src.Color); ok {
		n.Color = color
	}

	if src.TextContent != nil {
		content := *src.TextContent
		n.Content = &content
	}

	if src.ListContent != nil {
		n.IsList = true
		n.TaskList = make([]types.TaskItem, len(*src.ListContent))
		for j, item := range *src.ListContent {
			n.TaskList[j] = types.TaskItem{
				ID:      j,
				IsDone:  item.IsChecked,
				Content: item.Text,
			}
		}
	}

	var labels []string
	for _, l := range src.Labels {
		labels = append(labels, l.Name)
	}

	var attachments []string
	if c.attachments && src.Attachments != nil {
		n.Attachments = make([]types.Attachment, len(*src.Attachments))
		for j, a := range *src.Attachments {
			n.Attachments[j] = types.Attachment{
				Description: a.FilePath,
				FileName:    a.FilePath,
			}
			attachments = append(attachments, a.FilePath)
		}
	}

	return NoteResult{Note: n, Labels: labels, Attachments: attachments}, nil
}

// checkRequired returns an *InputError naming the first missing required field.
func checkRequired(f NoteFile) error {
	src := f.Note
	required := []struct {
		field   string
		present bool
	}{
		{"createdTimestampUsec", src.CreatedTimestampUsec != nil},
		{"userEditedTimestampUsec", src.UserEditedTimestampUsec != nil},
		{"isArchived", src.IsArchived != nil},
		{"isPinned", src.IsPinned != nil},
		{"isTrashed", src.IsTrashed != nil},
		{"color", src.Color != nil},
	}
	for _, r := range required {
		if !r.present {
			return &InputError{File: filepath.Base(f.Name), Field: r.field}
		}
	}
	return nil
}
