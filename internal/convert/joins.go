// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "github.com/pdiddy/keep2quillpad/pkg/types"

// BuildJoins resolves a note's label names against tags and returns one
// join per name, in order. Names match exactly; with duplicate tag names
// the first tag wins. An unknown name returns a *MissingTagError.
func BuildJoins(noteID int, names []string, tags []types.Tag) ([]types.Join, error) {
	joins := make([]types.Join, 0, len(names))
	for _, name := range names {
		id, ok := tagID(tags, name)
		if !ok {
			return nil, &MissingTagError{Name: name, NoteID: noteID}
		}
		joins = append(joins, types.Join{TagID: id, NoteID: noteID})
	}
	return joins, nil
}

func tagID(tags []types.Tag, name string) (int, bool) {
	for _, t := range tags {
		if t.Name == name {
			return t.ID, true
		}
	}
	return 0, false
}
