// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "fmt"

// InputError reports a Keep note that cannot be converted: malformed JSON
// or a missing required field. It aborts the whole run.
type InputError struct {
	// File is the note file name (or path, when known).
	File string
	// Field is the missing JSON key. Empty when the document itself is malformed.
	Field string
	// Err is the underlying decode error, if any.
	Err error
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("note %s: missing required field %q", e.File, e.Field)
	}
	return fmt.Sprintf("note %s: %v", e.File, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// MissingTagError reports a note label that has no entry in the label list.
type MissingTagError struct {
	Name   string
	NoteID int
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("failed to find tag %q (note %d)", e.Name, e.NoteID)
}

// ColorError reports a color mapping whose target is not a Quillpad color.
type ColorError struct {
	Source string
	Target string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("color %s maps to %q, which is not a Quillpad color", e.Source, e.Target)
}
