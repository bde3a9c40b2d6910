// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a complete Keep to Quillpad conversion: open the
// export, read labels and notes, convert, and write the bundle.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/keep2quillpad/internal/bundle"
	"github.com/pdiddy/keep2quillpad/internal/convert"
	"github.com/pdiddy/keep2quillpad/internal/labels"
	"github.com/pdiddy/keep2quillpad/internal/takeout"
	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// Summary holds the outcome of a conversion run.
type Summary struct {
	Notes       int
	Tags        int
	Attachments int
	// Output is the path of the written bundle or document.
	Output string
	// Notices are non-fatal conditions reported during the run.
	Notices []string
}

// DefaultOutput returns the bundle name used when no output is given:
// quillpad-<input stem>.zip.
func DefaultOutput(input string) string {
	return "quillpad-" + takeout.Stem(input) + ".zip"
}

// Run converts cfg.Input and writes the result to cfg.Output. Status and
// notices are written to w. Any error aborts the run before output is
// written; temporary directories are removed on every path.
func Run(cfg types.ConvertConfig, w io.Writer) (Summary, error) {
	var summary Summary

	conv, err := convert.New(cfg.ConversionConfig)
	if err != nil {
		return summary, err
	}

	src, err := takeout.Open(cfg.Input)
	if err != nil {
		return summary, err
	}
	defer src.Close()

	tags, notice, err := loadTags(cfg.LabelsFile, src.KeepDir)
	if err != nil {
		return summary, err
	}
	if notice != "" {
		summary.Notices = append(summary.Notices, notice)
		fmt.Fprintf(w, "notice: %s\n", notice)
	}

	paths, err := src.NoteFiles()
	if err != nil {
		return summary, err
	}
	if len(paths) == 0 {
		notice := fmt.Sprintf("no note files found in %s", src.KeepDir)
		summary.Notices = append(summary.Notices, notice)
		fmt.Fprintf(w, "notice: %s\n", notice)
	}
	files, err := takeout.ReadNotes(paths)
	if err != nil {
		return summary, err
	}

	result, err := conv.ConvertAll(files, tags)
	if err != nil {
		return summary, err
	}
	summary.Notes = result.NoteCount()
	summary.Tags = result.TagCount()
	summary.Attachments = result.AttachmentCount()

	fmt.Fprintf(w, "Converted %d notes with %d tags and %d attachments\n",
		summary.Notes, summary.Tags, summary.Attachments)

	out := cfg.Output
	if out == "" {
		out = DefaultOutput(cfg.Input)
	}

	if strings.EqualFold(filepath.Ext(out), ".json") {
		if summary.Attachments > 0 {
			notice := fmt.Sprintf("%d attachment files were not copied; write a .zip bundle to include them", summary.Attachments)
			summary.Notices = append(summary.Notices, notice)
			fmt.Fprintf(w, "notice: %s\n", notice)
		}
		if err := bundle.WriteJSON(out, result.Backup); err != nil {
			return summary, err
		}
	} else {
		if err := writeBundle(out, result, src.KeepDir); err != nil {
			return summary, err
		}
	}

	summary.Output = out
	return summary, nil
}

// writeBundle stages the bundle in a temporary directory and zips it to out.
func writeBundle(out string, result convert.Result, keepDir string) error {
	staging, err := os.MkdirTemp("", "keep2quillpad-bundle-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := bundle.Stage(staging, result.Backup, keepDir, result.Attachments); err != nil {
		return err
	}
	return bundle.WriteZip(staging, out)
}

// loadTags reads the explicit label file when one is configured, and
// otherwise looks for one in keepDir.
func loadTags(explicit, keepDir string) ([]types.Tag, string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, "", fmt.Errorf("opening label file: %w", err)
		}
		tags, err := labels.Load(explicit)
		return tags, "", err
	}

	path, notice, err := labels.Locate(keepDir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return []types.Tag{}, notice, nil
	}
	tags, err := labels.Load(path)
	return tags, "", err
}
