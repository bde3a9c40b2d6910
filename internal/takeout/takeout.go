// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package takeout opens a Google Takeout export, either an archive or an
// already extracted directory, and reads the Keep notes inside it.
package takeout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/keep2quillpad/internal/convert"
	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// keepSubdirs are the places Keep notes may sit under the export root,
// tried in order: a full Takeout export, then the Takeout directory itself.
// When neither exists the root is the Keep directory.
var keepSubdirs = []string{
	filepath.Join("Takeout", "Keep"),
	"Keep",
}

// Source is an opened export. Close it to remove any extracted files.
type Source struct {
	// Root is the export directory (the extraction directory for archives).
	Root string
	// KeepDir holds the note JSON files, the label list, and media.
	KeepDir string

	tmpDir string
}

// Open prepares input for reading. Archives are extracted into a fresh
// temporary directory that Close removes; directories are used in place.
func Open(input string) (*Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("opening takeout %s: %w", input, err)
	}

	src := &Source{Root: input}
	if !info.IsDir() {
		tmp, err := os.MkdirTemp("", "keep2quillpad-takeout-")
		if err != nil {
			return nil, fmt.Errorf("creating extraction directory: %w", err)
		}
		src.Root, src.tmpDir = tmp, tmp

		if err := Extract(input, tmp); err != nil {
			src.Close()
			return nil, err
		}
	}

	src.KeepDir = keepDir(src.Root)
	return src, nil
}

func keepDir(root string) string {
	for _, sub := range keepSubdirs {
		dir := filepath.Join(root, sub)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return root
}

// Close removes the extraction directory, if any. It is safe to call on
// a Source opened from a directory and to call more than once.
func (s *Source) Close() error {
	if s.tmpDir == "" {
		return nil
	}
	dir := s.tmpDir
	s.tmpDir = ""
	return os.RemoveAll(dir)
}

// NoteFiles returns the .json files directly in the Keep directory,
// sorted by name so conversions are reproducible across platforms.
func (s *Source) NoteFiles() ([]string, error) {
	entries, err := os.ReadDir(s.KeepDir)
	if err != nil {
		return nil, fmt.Errorf("reading keep directory %s: %w", s.KeepDir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(s.KeepDir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadNote decodes the Keep note at path. Malformed JSON is reported as a
// *convert.InputError.
func ReadNote(path string) (convert.NoteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return convert.NoteFile{}, fmt.Errorf("reading note %s: %w", path, err)
	}

	var note types.KeepNote
	if err := json.Unmarshal(data, &note); err != nil {
		return convert.NoteFile{}, &convert.InputError{File: filepath.Base(path), Err: err}
	}
	return convert.NoteFile{Name: filepath.Base(path), Note: note}, nil
}

// ReadNotes decodes every note in paths, stopping at the first failure.
func ReadNotes(paths []string) ([]convert.NoteFile, error) {
	files := make([]convert.NoteFile, 0, len(paths))
	for _, p := range paths {
		f, err := ReadNote(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Stem returns the input name without directory and archive extension,
// e.g. takeout-20240101.tar.gz becomes takeout-20240101.
func Stem(input string) string {
	base := filepath.Base(filepath.Clean(input))
	lower := strings.ToLower(base)
	for _, ext := range archiveExts {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
