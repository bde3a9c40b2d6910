// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	Source  string       `json:"source" yaml:"source"`
	Version int          `json:"version" yaml:"version"`
	Tags    []TagCount   `json:"tags" yaml:"tags"`
	Notes   []NoteRecord `json:"notes" yaml:"notes"`
}

const exportLimit = 1000000

// ExportYAML writes the catalog (or the subset matching opts) to path.
func (s *Store) ExportYAML(ctx context.Context, path string, opts QueryOptions) error {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the catalog (or the subset matching opts) to path.
func (s *Store) ExportJSON(ctx context.Context, path string, opts QueryOptions) error {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) export(ctx context.Context, opts QueryOptions) (Export, error) {
	source, version, err := s.Source(ctx)
	if err != nil {
		return Export{}, err
	}
	tags, err := s.TagCounts(ctx)
	if err != nil {
		return Export{}, err
	}

	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	notes, err := s.Retrieve(ctx, opts)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}

	if tags == nil {
		tags = []TagCount{}
	}
	if notes == nil {
		notes = []NoteRecord{}
	}
	return Export{Source: source, Version: version, Tags: tags, Notes: notes}, nil
}
