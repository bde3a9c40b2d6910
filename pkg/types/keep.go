// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"fmt"
	"strconv"
)

// Micros is a timestamp in microseconds since the Unix epoch, as written
// by Google Takeout. Takeout has emitted it both as a JSON number and as a
// quoted string of digits; both decode to the same value.
type Micros int64

// UnmarshalJSON accepts 1600000123456 and "1600000123456".
func (m *Micros) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid microsecond timestamp %s: %w", data, err)
	}
	*m = Micros(v)
	return nil
}

// Seconds truncates the timestamp to whole seconds.
func (m Micros) Seconds() int64 {
	return int64(m) / 1_000_000
}

// KeepListItem is one checklist entry of a Keep note.
type KeepListItem struct {
	Text      string `json:"text"`
	IsChecked bool   `json:"isChecked"`
}

// KeepLabel is a label reference on a Keep note. Only the name is exported;
// it is resolved against Labels.txt by name.
type KeepLabel struct {
	Name string `json:"name"`
}

// KeepAttachment references a media file stored next to the note JSON.
type KeepAttachment struct {
	FilePath string `json:"filePath"`
	Mimetype string `json:"mimetype,omitempty"`
}

// KeepNote is a single note from a Google Keep Takeout export.
//
// Required fields are pointers so a missing key can be told apart from a
// zero value. Optional collections are pointers as well: an empty
// listContent still marks the note as a checklist.
type KeepNote struct {
	CreatedTimestampUsec    *Micros `json:"createdTimestampUsec"`
	UserEditedTimestampUsec *Micros `json:"userEditedTimestampUsec"`
	IsArchived              *bool   `json:"isArchived"`
	IsPinned                *bool   `json:"isPinned"`
	IsTrashed               *bool   `json:"isTrashed"`
	Color                   *string `json:"color"`

	// Title is what Keep shows; the converter titles notes by file name instead.
	Title       string            `json:"title,omitempty"`
	TextContent *string           `json:"textContent,omitempty"`
	ListContent *[]KeepListItem   `json:"listContent,omitempty"`
	Labels      []KeepLabel       `json:"labels,omitempty"`
	Attachments *[]KeepAttachment `json:"attachments,omitempty"`
}
