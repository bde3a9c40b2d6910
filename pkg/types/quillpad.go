// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared across keep2quillpad:
// the Keep note as exported by Google Takeout, the Quillpad backup
// document, and run configuration.
package types

const (
	// BackupVersion is the Quillpad backup format version the output targets.
	BackupVersion = 26

	// ImportNotebookID is the id of the single notebook all notes land in.
	ImportNotebookID = 1

	// ImportNotebookName labels the notebook created for imported notes.
	ImportNotebookName = "Imported from Google Keep"
)

// Tag is a Quillpad tag. IDs are the 1-based line numbers of the label list.
type Tag struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// TaskItem is one checklist entry. IDs restart at 0 for every note.
type TaskItem struct {
	ID      int    `json:"id" yaml:"id"`
	IsDone  bool   `json:"isDone" yaml:"is_done"`
	Content string `json:"content" yaml:"content"`
}

// Attachment is a media reference inside a Quillpad note. The importer
// looks the file up by FileName in the bundle's media/ directory.
type Attachment struct {
	Description string `json:"description" yaml:"description"`
	FileName    string `json:"fileName" yaml:"file_name"`
}

// Note is a Quillpad note as it appears in backup.json.
//
// False flags are left out rather than written as false, and the optional
// sections appear only when the Keep note had them. TaskList and
// Attachments use omitzero so an empty but present list is still written.
type Note struct {
	ID           int          `json:"id" yaml:"id"`
	Title        string       `json:"title,omitempty" yaml:"title,omitempty"`
	CreationDate int64        `json:"creationDate" yaml:"creation_date"`
	ModifiedDate int64        `json:"modifiedDate" yaml:"modified_date"`
	NotebookID   int          `json:"notebookId" yaml:"notebook_id"`
	IsArchived   bool         `json:"isArchived,omitempty" yaml:"is_archived,omitempty"`
	IsPinned     bool         `json:"isPinned,omitempty" yaml:"is_pinned,omitempty"`
	IsDeleted    bool         `json:"isDeleted,omitempty" yaml:"is_deleted,omitempty"`
	Color        string       `json:"color,omitempty" yaml:"color,omitempty"`
	Content      *string      `json:"content,omitempty" yaml:"content,omitempty"`
	IsList       bool         `json:"isList,omitempty" yaml:"is_list,omitempty"`
	TaskList     []TaskItem   `json:"taskList,omitzero" yaml:"task_list,omitempty"`
	Attachments  []Attachment `json:"attachments,omitzero" yaml:"attachments,omitempty"`
}

// Join links a note to a tag.
type Join struct {
	TagID  int `json:"tagId" yaml:"tag_id"`
	NoteID int `json:"noteId" yaml:"note_id"`
}

// Notebook is a Quillpad notebook.
type Notebook struct {
	Name string `json:"name" yaml:"name"`
	ID   int    `json:"id" yaml:"id"`
}

// Backup is the root of a Quillpad backup.json document.
type Backup struct {
	Version   int        `json:"version" yaml:"version"`
	Notes     []Note     `json:"notes" yaml:"notes"`
	Notebooks []Notebook `json:"notebooks" yaml:"notebooks"`
	Tags      []Tag      `json:"tags" yaml:"tags"`
	Joins     []Join     `json:"joins" yaml:"joins"`
}

// NewBackup returns an empty backup with the import notebook in place.
// All collections are non-nil so they serialize as [] rather than null.
func NewBackup(tags []Tag) Backup {
	if tags == nil {
		tags = []Tag{}
	}
	return Backup{
		Version:   BackupVersion,
		Notes:     []Note{},
		Notebooks: []Notebook{{Name: ImportNotebookName, ID: ImportNotebookID}},
		Tags:      tags,
		Joins:     []Join{},
	}
}
