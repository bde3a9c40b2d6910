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

func sampleFiles() []NoteFile {
	work := keepNote()
	work.Labels = []types.KeepLabel{{Name: "Work"}}
	work.TextContent = ptr("quarterly report")

	both := keepNote()
	both.Labels = []types.KeepLabel{{Name: "Home"}, {Name: "Work"}}
	both.Attachments = &[]types.KeepAttachment{{FilePath: "photo.jpg"}}

	untitled := keepNote()
	untitled.ListContent = &[]types.KeepListItem{{Text: "call mom", IsChecked: false}}

	return []NoteFile{
		{Name: "Report.json", Note: work},
		{Name: "Chores.json", Note: both},
		{Name: "2021-03-04T05_06_07.890+01_00.json", Note: untitled},
	}
}

func sampleTags() []types.Tag {
	return []types.Tag{{ID: 1, Name: "Work"}, {ID: 2, Name: "Home"}, {ID: 3, Name: "Work"}}
}

func TestConvertAll(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{Attachments: true})

	res, err := c.ConvertAll(sampleFiles(), sampleTags())
	require.NoError(t, err)

	b := res.Backup
	assert.Equal(t, types.BackupVersion, b.Version)
	assert.Equal(t, []types.Notebook{{Name: "Imported from Google Keep", ID: 1}}, b.Notebooks)
	assert.Equal(t, sampleTags(), b.Tags)

	require.Len(t, b.Notes, 3)
	for i, n := range b.Notes {
		assert.Equal(t, i+1, n.ID, "note ids are sequential from 1")
	}
	assert.Equal(t, "Report", b.Notes[0].Title)
	assert.Equal(t, "Chores", b.Notes[1].Title)
	assert.Equal(t, "", b.Notes[2].Title)

	assert.Equal(t, []types.Join{
		{TagID: 1, NoteID: 1},
		{TagID: 2, NoteID: 2},
		{TagID: 1, NoteID: 2},
	}, b.Joins)

	assert.Equal(t, []string{"photo.jpg"}, res.Attachments)
	assert.Equal(t, 3, res.NoteCount())
	assert.Equal(t, 3, res.TagCount())
	assert.Equal(t, 1, res.AttachmentCount())

	tagIDs := map[int]bool{}
	for _, tag := range b.Tags {
		tagIDs[tag.ID] = true
	}
	for _, j := range b.Joins {
		assert.True(t, tagIDs[j.TagID], "join references tag %d", j.TagID)
	}
}

func TestConvertAll_Empty(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{})
	res, err := c.ConvertAll(nil, nil)
	require.NoError(t, err)

	data, err := json.Marshal(res.Backup)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"version":26,"notes":[],"notebooks":[{"name":"Imported from Google Keep","id":1}],"tags":[],"joins":[]}`,
		string(data))
}

func TestConvertAll_MissingTagAborts(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{})
	res, err := c.ConvertAll(sampleFiles(), []types.Tag{{ID: 1, Name: "Work"}})
	require.Error(t, err)
	assert.Empty(t, res.Backup.Notes, "no partial result on failure")

	var missing *MissingTagError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Home", missing.Name)
	assert.Equal(t, 2, missing.NoteID)
	assert.Contains(t, err.Error(), "Chores")
}

func TestConvertAll_InputErrorAborts(t *testing.T) {
	files := sampleFiles()
	files[1].Note.Color = nil

	c := newConverter(t, types.ConversionConfig{})
	_, err := c.ConvertAll(files, sampleTags())

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "Chores.json", inputErr.File)
	assert.Equal(t, "color", inputErr.Field)
}

func TestConvertAll_Deterministic(t *testing.T) {
	c := newConverter(t, types.ConversionConfig{ExtraColors: true, Attachments: true})

	first, err := c.ConvertAll(sampleFiles(), sampleTags())
	require.NoError(t, err)
	second, err := c.ConvertAll(sampleFiles(), sampleTags())
	require.NoError(t, err)

	a, err := json.Marshal(first.Backup)
	require.NoError(t, err)
	b, err := json.Marshal(second.Backup)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
