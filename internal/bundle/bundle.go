// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bundle writes Quillpad backups: the backup.json document and,
// for zip bundles, the media/ directory of attachment files.
package bundle

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/keep2quillpad/internal/takeout"
	"github.com/pdiddy/keep2quillpad/pkg/types"
)

const (
	// BackupFile is the document name inside a bundle.
	BackupFile = "backup.json"
	// MediaDir is the attachment directory inside a bundle.
	MediaDir = "media"
)

// Stage lays out a bundle in dir: backup.json plus media/ holding a copy
// of every attachment, read from keepDir. Attachments are copied one after
// another; a missing file aborts staging. Attachment paths must stay inside
// keepDir, and no two may share a base name since media/ is flat.
func Stage(dir string, backup types.Backup, keepDir string, attachments []string) error {
	data, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("marshaling backup: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, BackupFile), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", BackupFile, err)
	}

	mediaDir := filepath.Join(dir, MediaDir)
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return fmt.Errorf("creating media directory: %w", err)
	}
	seen := make(map[string]string, len(attachments))
	for _, a := range attachments {
		src, err := takeout.SafeJoin(keepDir, a)
		if err != nil {
			return fmt.Errorf("copying attachment %s: %w", a, err)
		}
		base := filepath.Base(src)
		if prev, ok := seen[base]; ok {
			if prev == a {
				continue
			}
			return fmt.Errorf("attachments %s and %s both map to %s/%s", prev, a, MediaDir, base)
		}
		seen[base] = a

		dst := filepath.Join(mediaDir, base)
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("copying attachment %s: %w", a, err)
		}
	}
	return nil
}

// WriteZip packs the contents of srcDir into a zip archive at dst. Entry
// names are relative to srcDir. The archive is written next to dst and
// renamed into place, so dst is either complete or untouched.
func WriteZip(srcDir, dst string) error {
	return writeAtomic(dst, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(srcDir, path)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}
			name := filepath.ToSlash(rel)
			if d.IsDir() {
				_, err := zw.Create(name + "/")
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			ew, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
			if err != nil {
				return err
			}
			_, err = io.Copy(ew, f)
			return err
		})
		if err != nil {
			zw.Close()
			return fmt.Errorf("packing %s: %w", srcDir, err)
		}
		return zw.Close()
	})
}

// WriteJSON writes the bare backup document to dst.
func WriteJSON(dst string, backup types.Backup) error {
	data, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("marshaling backup: %w", err)
	}
	return writeAtomic(dst, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeAtomic writes through a temp file in dst's directory and renames
// it over dst once write succeeds.
func writeAtomic(dst string, write func(io.Writer) error) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
