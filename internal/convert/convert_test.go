// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

func ptr[T any](v T) *T { return &v }

// keepNote returns a minimal valid Keep note: created 1_600_000_123_456_000 usec,
// edited 1_600_000_999_999_000 usec, all flags false, color DEFAULT.
func keepNote() types.KeepNote {
	return types.KeepNote{
		CreatedTimestampUsec:    ptr(types.Micros(1_600_000_123_456_000)),
		UserEditedTimestampUsec: ptr(types.Micros(1_600_000_999_999_000)),
		IsArchived:              ptr(false),
		IsPinned:                ptr(false),
		IsTrashed:               ptr(false),
		Color:                   ptr("DEFAULT"),
	}
}

func newConverter(t *testing.T, cfg types.ConversionConfig) *Converter {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

// noteJSON marshals a note into a generic map so tests can check for
// absent keys.
func noteJSON(t *testing.T, n types.Note) map[string]any {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestIsUntitled(t *testing.T) {
	tests := []struct {
		stem string
		want bool
	}{
		{"2021-03-04T05_06_07.890+01_00", true},
		{"2019-12-31T23_59_59.000+00_00", true},
		{"Shopping list", false},
		{"2021-03-04", false},
		{"2021-03-04T05:06:07.890+01:00", false},
		{"2021-03-04T05_06_07.890+01_00 copy", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUntitled(tt.stem))
		})
	}
}

func TestConvertNote_Title(t *testing.T) {
	tests := []struct {
		name      string
		policy    types.TitlePolicy
		file      string
		wantTitle string
	}{
		{"named note", types.TitleUntitled, "Shopping list.json", "Shopping list"},
		{"timestamp named note", types.TitleUntitled, "2021-03-04T05_06_07.890+01_00.json", ""},
		{"path is reduced to stem", types.TitleUntitled, "Takeout/Keep/Ideas.json", "Ideas"},
		{"filename policy keeps timestamp", types.TitleFilename, "2021-03-04T05_06_07.890+01_00.json", "2021-03-04T05_06_07.890+01_00"},
		{"empty policy means untitled", "", "2021-03-04T05_06_07.890+01_00.json", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConverter(t, types.ConversionConfig{TitlePolicy: tt.policy})
			res, err := c.ConvertNote(1, NoteFile{Name: tt.file, Note: keepNote()})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, res.Note.Title)

			_, hasTitle := noteJSON(t, res.Note)["title"]
			assert.Equal(t, tt.wantTitle != "", hasTitle)
		})
	}
}

func TestConvertNote_Timestamps(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{})
	res, err := c.ConvertNote(7, NoteFile{Name: "a.json", Note: keepNote()})
	require.NoError(t, err)

	assert.Equal(t, 7, res.Note.ID)
	assert.Equal(t, int64(1_600_000_123), res.Note.CreationDate)
	assert.Equal(t, int64(1_600_000_999), res.Note.ModifiedDate)
	assert.Equal(t, types.ImportNotebookID, res.Note.NotebookID)
}

func TestConvertNote_Flags(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{})

	t.Run("all false are omitted", func(t *testing.T) {
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: keepNote()})
		require.NoError(t, err)
		m := noteJSON(t, res.Note)
		for _, key := range []string{"isArchived", "isPinned", "isDeleted"} {
			assert.NotContains(t, m, key)
		}
	})

	t.Run("true flags are written", func(t *testing.T) {
		src := keepNote()
		src.IsArchived = ptr(true)
		src.IsPinned = ptr(true)
		src.IsTrashed = ptr(true)
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
		require.NoError(t, err)
		m := noteJSON(t, res.Note)
		assert.Equal(t, true, m["isArchived"])
		assert.Equal(t, true, m["isPinned"])
		assert.Equal(t, true, m["isDeleted"])
	})

	t.Run("trashed only", func(t *testing.T) {
		src := keepNote()
		src.IsTrashed = ptr(true)
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
		require.NoError(t, err)
		m := noteJSON(t, res.Note)
		assert.Equal(t, true, m["isDeleted"])
		assert.NotContains(t, m, "isArchived")
		assert.NotContains(t, m, "isPinned")
	})
}

func TestConvertNote_Color(t *testing.T) {
	tests := []struct {
		name     string
		extended bool
		color    string
		want     string
	}{
		{"supported color", false, "BLUE", "Blue"},
		{"default color omitted", false, "DEFAULT", ""},
		{"extra color dropped without extension", false, "CERULEAN", ""},
		{"extra color folded with extension", true, "CERULEAN", "Blue"},
		{"gray stays default", true, "GRAY", ""},
		{"purple folds to pink", true, "PURPLE", "Pink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConverter(t, types.ConversionConfig{ExtraColors: tt.extended})
			src := keepNote()
			src.Color = ptr(tt.color)
			res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Note.Color)
			_, has := noteJSON(t, res.Note)["color"]
			assert.Equal(t, tt.want != "", has)
		})
	}
}

func TestConvertNote_Content(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{})

	src := keepNote()
	src.TextContent = ptr("line one\nline two")
	res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
	require.NoError(t, err)
	require.NotNil(t, res.Note.Content)
	assert.Equal(t, "line one\nline two", *res.Note.Content)

	src.TextContent = ptr("")
	res, err = c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
	require.NoError(t, err)
	assert.Equal(t, "", noteJSON(t, res.Note)["content"], "empty body is still forwarded")

	res, err = c.ConvertNote(1, NoteFile{Name: "a.json", Note: keepNote()})
	require.NoError(t, err)
	assert.NotContains(t, noteJSON(t, res.Note), "content")
}

func TestConvertNote_Checklist(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{})

	t.Run("items keep order and get 0-based ids", func(t *testing.T) {
		src := keepNote()
		src.ListContent = &[]types.KeepListItem{
			{Text: "milk", IsChecked: true},
			{Text: "eggs", IsChecked: false},
			{Text: "bread", IsChecked: true},
		}
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
		require.NoError(t, err)
		assert.True(t, res.Note.IsList)
		assert.Equal(t, []types.TaskItem{
			{ID: 0, IsDone: true, Content: "milk"},
			{ID: 1, IsDone: false, Content: "eggs"},
			{ID: 2, IsDone: true, Content: "bread"},
		}, res.Note.TaskList)
	})

	t.Run("empty list still marks a checklist", func(t *testing.T) {
		src := keepNote()
		src.ListContent = &[]types.KeepListItem{}
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
		require.NoError(t, err)
		m := noteJSON(t, res.Note)
		assert.Equal(t, true, m["isList"])
		assert.Equal(t, []any{}, m["taskList"])
	})

	t.Run("no list content", func(t *testing.T) {
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: keepNote()})
		require.NoError(t, err)
		m := noteJSON(t, res.Note)
		assert.NotContains(t, m, "isList")
		assert.NotContains(t, m, "taskList")
	})
}

func TestConvertNote_Labels(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{})
	src := keepNote()
	src.Labels = []types.KeepLabel{{Name: "Work"}, {Name: "Home"}}
	res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
	require.NoError(t, err)
	assert.Equal(t, []string{"Work", "Home"}, res.Labels)
}

func TestConvertNote_Attachments(t *testing.T) {
	src := keepNote()
	src.Attachments = &[]types.KeepAttachment{
		{FilePath: "1a2b.jpg", Mimetype: "image/jpeg"},
		{FilePath: "3c4d.png", Mimetype: "image/png"},
	}

	t.Run("enabled", func(t *testing.T) {
		c := newConverter(t, types.ConversionConfig{Attachments: true})
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
		require.NoError(t, err)
		assert.Equal(t, []types.Attachment{
			{Description: "1a2b.jpg", FileName: "1a2b.jpg"},
			{Description: "3c4d.png", FileName: "3c4d.png"},
		}, res.Note.Attachments)
		assert.Equal(t, []string{"1a2b.jpg", "3c4d.png"}, res.Attachments)
	})

	t.Run("disabled", func(t *testing.T) {
		c := newConverter(t, types.ConversionConfig{Attachments: false})
		res, err := c.ConvertNote(1, NoteFile{Name: "a.json", Note: src})
		require.NoError(t, err)
		assert.NotContains(t, noteJSON(t, res.Note), "attachments")
		assert.Empty(t, res.Attachments)
	})
}

func TestConvertNote_MissingRequired(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(n *types.KeepNote)
	}{
		{"createdTimestampUsec", func(n *types.KeepNote) { n.CreatedTimestampUsec = nil }},
		{"userEditedTimestampUsec", func(n *types.KeepNote) { n.UserEditedTimestampUsec = nil }},
		{"isArchived", func(n *types.KeepNote) { n.IsArchived = nil }},
		{"isPinned", func(n *types.KeepNote) { n.IsPinned = nil }},
		{"isTrashed", func(n *types.KeepNote) { n.IsTrashed = nil }},
		{"color", func(n *types.KeepNote) { n.Color = nil }},
	}
	c := newConverter(t, types.ConversionConfig{})
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			src := keepNote()
			tt.mutate(&src)
			_, err := c.ConvertNote(1, NoteFile{Name: "Keep/broken.json", Note: src})
			require.Error(t, err)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
			assert.Equal(t, "broken.json", inputErr.File)
		})
	}
}

func TestNew_InvalidTitlePolicy(t *testing.T) {
	_, err := New(types.ConversionConfig{TitlePolicy: "keep"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown title policy")
}

func TestMicrosDecoding(t *testing.T) {
	var n types.KeepNote
	doc := `{"createdTimestampUsec": 1600000123456000, "userEditedTimestampUsec": "1600000999999000"}`
	require.NoError(t, json.Unmarshal([]byte(doc), &n))
	assert.Equal(t, int64(1_600_000_123), n.CreatedTimestampUsec.Seconds())
	assert.Equal(t, int64(1_600_000_999), n.UserEditedTimestampUsec.Seconds())

	err := json.Unmarshal([]byte(`{"createdTimestampUsec": "soon"}`), &n)
	assert.Error(t, err)
}
