// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bundle

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/keep2quillpad/pkg/types"
)

// Read loads a backup from a zip bundle or a bare backup.json file.
func Read(path string) (types.Backup, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return readZip(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Backup{}, fmt.Errorf("reading backup: %w", err)
	}
	return decode(path, data)
}

func readZip(path string) (types.Backup, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return types.Backup{}, fmt.Errorf("opening bundle %s: %w", path, err)
	}
	defer r.Close()

	f, err := r.Open(BackupFile)
	if err != nil {
		return types.Backup{}, fmt.Errorf("bundle %s has no %s: %w", path, BackupFile, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return types.Backup{}, fmt.Errorf("reading %s from %s: %w", BackupFile, path, err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) (types.Backup, error) {
	var b types.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return types.Backup{}, fmt.Errorf("parsing backup %s: %w", path, err)
	}
	return b, nil
}
