package dataset

import (
	"fmt"
	"path/filepath"
)

// LoadOptions controls how tabular files are read into a Dataset.
type LoadOptions struct {
	// Delimiter for CSV. If 0, auto-detects from the file extension.
	Delimiter rune
	// Sheet selects an XLSX worksheet by name; takes precedence over SheetIndex.
	Sheet string
	// SheetIndex selects an XLSX worksheet by 1-based position (Sheet1 == 1).
	SheetIndex int
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
}

// DefaultLoadOptions returns reasonable defaults for interactive use.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{MaxRows: 100000}
}

// Loader reads one tabular file format into a Dataset.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt LoadOptions) (*Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader by filename and reads the file into a Dataset.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return nil, fmt.Errorf("unsupported file type %q (expected .csv, .tsv or .xlsx)", filepath.Ext(path))
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
