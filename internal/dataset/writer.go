package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ayusman/signdata/internal/features"
)

// FormatRow renders one sample as table cells.
func FormatRow(label string, v *features.Vector) []string {
	row := make([]string, 0, Columns)
	row = append(row, label)
	for _, x := range v {
		row = append(row, strconv.FormatFloat(x, 'g', -1, 64))
	}
	return row
}

// WriteLabelFile writes vectors to dir/<label>_sign_data.csv, replacing any
// previous file for that label. It returns the path written.
func WriteLabelFile(dir, label string, vectors []features.Vector) (string, error) {
	rows := make([][]string, len(vectors))
	for i := range vectors {
		rows[i] = FormatRow(label, &vectors[i])
	}

	path := PathFor(dir, label)
	if err := writeRows(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// writeRows writes a headerless table through a temp file in the target
// directory so a failed write never leaves a partial file at path.
func writeRows(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".dataset-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp dataset file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	buffered := bufio.NewWriter(tmpFile)
	w := csv.NewWriter(buffered)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
