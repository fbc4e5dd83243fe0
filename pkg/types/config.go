package types

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// DataDir is the directory scanned for "<year> General Election.(csv|txt)" files.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// OutputDir receives one "<date>__md__general__county.csv" per input.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// XLSX additionally writes an .xlsx workbook next to each CSV.
	XLSX bool `json:"xlsx" yaml:"xlsx"`

	// SkipExisting leaves already converted outputs untouched.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`
}

// ResultsConfig holds settings for the results index.
type ResultsConfig struct {
	// IndexDir holds the SQLite database and export files.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

