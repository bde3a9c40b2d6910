// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package takeout

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// archiveExts lists the supported archive suffixes, longest first.
var archiveExts = []string{".tar.gz", ".tgz", ".tar", ".zip"}

// Extract unpacks a .zip, .tar, .tar.gz or .tgz archive into dst.
func Extract(archive, dst string) error {
	lower := strings.ToLower(archive)
	var err error
	switch {
	case strings.HasSuffix(lower, ".zip"):
		err = extractZip(archive, dst)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		err = extractTar(archive, dst, true)
	case strings.HasSuffix(lower, ".tar"):
		err = extractTar(archive, dst, false)
	default:
		return fmt.Errorf("unsupported archive format %q: use .zip, .tar, .tar.gz or .tgz", filepath.Base(archive))
	}
	if err != nil {
		return fmt.Errorf("extracting %s: %w", archive, err)
	}
	return nil
}

func extractZip(archive, dst string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		// OpenReader may hand back a usable reader alongside ErrInsecurePath.
		if r != nil {
			r.Close()
		}
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := SafeJoin(dst, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", f.Name, err)
		}
		err = writeFile(target, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTar(archive, dst string, gzipped bool) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := SafeJoin(dst, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return err
			}
		}
		// Links and special files are not part of a Takeout export.
	}
}

// SafeJoin resolves a slash-separated name from an untrusted source (an
// archive entry, a note's attachment path) under dir, rejecting names that
// would land outside it.
func SafeJoin(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes %s", name, dir)
	}
	return target, nil
}

func writeFile(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}
