// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package labels reads the Keep label list (Labels.txt) into Quillpad tags.
// The file holds one label name per line; a tag's id is its line number.
package labels

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// DefaultFile is the label list name used by Google Takeout.
const DefaultFile = "Labels.txt"

// Parse reads one tag per line. Names are trimmed of surrounding
// whitespace. Every line consumes an id, blank ones included, so ids
// always equal line numbers. Duplicate names are kept as separate tags.
func Parse(r io.Reader) ([]types.Tag, error) {
	tags := []types.Tag{}
	sc := bufio.NewScanner(r)
	for i := 1; sc.Scan(); i++ {
		tags = append(tags, types.Tag{
			ID:   i,
			Name: strings.TrimSpace(sc.Text()),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading labels: %w", err)
	}
	return tags, nil
}

// Load parses the label file at path. A missing file yields no tags and
// no error.
func Load(path string) ([]types.Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Tag{}, nil
		}
		return nil, fmt.Errorf("opening label file %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Locate looks for the label file among the .txt files directly in dir.
// It returns the path when there is exactly one candidate. With zero or
// several candidates it returns an empty path and a notice explaining why
// the run continues without tags.
func Locate(dir string) (path, notice string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", dir, err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		candidates = append(candidates, e.Name())
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return "", "no label file found, converting without tags", nil
	case 1:
		return filepath.Join(dir, candidates[0]), "", nil
	default:
		return "", fmt.Sprintf("found %d label files (%s), converting without tags",
			len(candidates), strings.Join(candidates, ", ")), nil
	}
}
