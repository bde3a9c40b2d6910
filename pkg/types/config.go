package types

// TitlePolicy selects how converted notes are titled.
type TitlePolicy string

const (
	// TitleUntitled uses the file name stem as the title, except for notes
	// whose stem is the timestamp Takeout assigns to untitled notes.
	TitleUntitled TitlePolicy = "untitled"

	// TitleFilename always uses the file name stem as the title.
	TitleFilename TitlePolicy = "filename"
)

// Valid reports whether p is a known policy.
func (p TitlePolicy) Valid() bool {
	return p == TitleUntitled || p == TitleFilename
}

// ConversionConfig holds the options that change how individual notes map.
type ConversionConfig struct {
	// ExtraColors folds Keep colors Quillpad lacks onto the nearest
	// Quillpad color. When false those colors are dropped.
	ExtraColors bool `json:"extra_colors" yaml:"extra_colors"`

	// Attachments forwards attachment references and copies the media files.
	Attachments bool `json:"attachments" yaml:"attachments"`

	// TitlePolicy decides whether timestamp-named notes get a title.
	TitlePolicy TitlePolicy `json:"title_policy" yaml:"title_policy"`

	// ColorMap is extra Keep color to Quillpad color mappings applied on
	// top of the built-in table.
	ColorMap map[string]string `json:"color_map,omitempty" yaml:"color_map,omitempty"`
}

// ConvertConfig holds settings for a complete convert run.
type ConvertConfig struct {
	ConversionConfig `yaml:",inline"`

	// Input is a Takeout archive (.zip, .tar, .tar.gz, .tgz) or a directory.
	Input string `json:"input" yaml:"input"`

	// Output is the bundle path. A .json suffix writes the bare backup
	// document; anything else is written as a zip bundle. Empty means
	// quillpad-<input stem>.zip in the working directory.
	Output string `json:"output" yaml:"output"`

	// LabelsFile overrides label file discovery. A missing file is an error.
	LabelsFile string `json:"labels_file,omitempty" yaml:"labels_file,omitempty"`
}

// CatalogConfig holds settings for the backup catalog.
type CatalogConfig struct {
	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
