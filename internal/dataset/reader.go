package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadRows loads every row of a headerless table, checking each is exactly
// Columns wide. Cells are returned as written.
func ReadRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Width is checked below so the mismatch carries the file and row.
	r.FieldsPerRecord = -1

	var rows [][]string
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(record) != Columns {
			return nil, &SchemaMismatchError{File: path, Row: row, Got: len(record), Want: Columns}
		}
		rows = append(rows, record)
	}
	return rows, nil
}
