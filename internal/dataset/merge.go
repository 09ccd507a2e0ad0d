package dataset

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoInputFiles is returned when a merge finds nothing to concatenate.
var ErrNoInputFiles = errors.New("no csv files to merge")

// Merger concatenates per-label tables.
//
// Files are taken in the order the directory listing yields them, which is
// not guaranteed to be stable across filesystems. Set SortByLabel for a
// deterministic order.
type Merger struct {
	SortByLabel bool
}

// Merged is the concatenation of every input table.
type Merged struct {
	Rows  [][]string
	Files []string
}

// ListFiles returns the csv files directly inside dir. A file at exclude is
// left out so a previous merge output in the same directory is not re-read.
func (m Merger) ListFiles(dir, exclude string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open input dir: %w", err)
	}
	defer d.Close()

	entries, err := d.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("list input dir: %w", err)
	}

	excludeAbs := ""
	if exclude != "" {
		if abs, err := filepath.Abs(exclude); err == nil {
			excludeAbs = abs
		}
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(path); err == nil && abs == excludeAbs {
			log.Printf("Skipping merge output %s found in input dir", path)
			continue
		}
		files = append(files, path)
	}

	if m.SortByLabel {
		sort.SliceStable(files, func(i, j int) bool {
			li, lj := LabelOf(files[i]), LabelOf(files[j])
			if li != lj {
				return li < lj
			}
			return files[i] < files[j]
		})
	}
	return files, nil
}

// Merge reads files in order and concatenates their rows. The first file
// with a row of the wrong width fails the whole merge.
func (m Merger) Merge(files []string) (*Merged, error) {
	if len(files) == 0 {
		return nil, ErrNoInputFiles
	}

	merged := &Merged{Files: files}
	for _, path := range files {
		rows, err := ReadRows(path)
		if err != nil {
			return nil, err
		}
		merged.Rows = append(merged.Rows, rows...)
	}
	return merged, nil
}

// MergeDir merges every csv file in dir into output. Nothing is written at
// output unless every input row passed the schema check.
func (m Merger) MergeDir(dir, output string) (*Merged, error) {
	files, err := m.ListFiles(dir, output)
	if err != nil {
		return nil, err
	}

	merged, err := m.Merge(files)
	if err != nil {
		return nil, err
	}

	if err := writeRows(output, merged.Rows); err != nil {
		return nil, err
	}
	log.Printf("Merged %d rows from %d files into %s", len(merged.Rows), len(merged.Files), output)
	return merged, nil
}
