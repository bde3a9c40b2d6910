// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"
)

// quillpadColors lists the color names Quillpad accepts.
var quillpadColors = map[string]bool{
	"Default": true,
	"Green":   true,
	"Pink":    true,
	"Blue":    true,
	"Red":     true,
	"Orange":  true,
	"Yellow":  true,
}

// baseColors maps the Keep colors Quillpad supports directly.
var baseColors = map[string]string{
	"GREEN":  "Green",
	"PINK":   "Pink",
	"BLUE":   "Blue",
	"RED":    "Red",
	"ORANGE": "Orange",
	"YELLOW": "Yellow",
}

// extraColors folds Keep colors without a Quillpad counterpart onto the
// closest one. GRAY is left out so gray notes keep the default color.
var extraColors = map[string]string{
	"CERULEAN": "Blue",
	"BROWN":    "Orange",
	"PURPLE":   "Pink",
	"TEAL":     "Blue",
}

// ColorTable maps Keep color names to Quillpad color names. It is built
// once per run and never modified afterwards.
type ColorTable struct {
	m map[string]string
}

// NewColorTable returns the base table, extended with the fallback colors
// when extended is set, with overlay applied last. Overlay keys are Keep
// color names (case-insensitive); values must be Quillpad colors.
func NewColorTable(extended bool, overlay map[string]string) (ColorTable, error) {
	m := make(map[string]string, len(baseColors)+len(extraColors)+len(overlay))
	for k, v := range baseColors {
		m[k] = v
	}
	if extended {
		for k, v := range extraColors {
			m[k] = v
		}
	}

	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := overlay[k]
		if !quillpadColors[v] {
			return ColorTable{}, &ColorError{Source: k, Target: v}
		}
		m[strings.ToUpper(k)] = v
	}
	return ColorTable{m: m}, nil
}

// Lookup returns the Quillpad color for a Keep color, or false when the
// color is unmapped and the note should keep Quillpad's default.
func (t ColorTable) Lookup(keepColor string) (string, bool) {
	v, ok := t.m[keepColor]
	return v, ok
}

// colorMapFile is the on-disk layout of a color map overlay:
//
//	[colors]
//	GRAY = "Default"
type colorMapFile struct {
	Colors map[string]string `toml:"colors" yaml:"colors"`
}

// LoadColorMap reads a color overlay file. The format follows the file
// extension: .toml, or .yaml/.yml.
func LoadColorMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading color map: %w", err)
	}

	var f colorMapFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("parsing color map %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing color map %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported color map format %q: use .toml or .yaml", ext)
	}

	if f.Colors == nil {
		return map[string]string{}, nil
	}
	return f.Colors, nil
}
