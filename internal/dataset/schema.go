// Package dataset persists captured samples as headerless CSV tables and
// merges per-label tables into one training file.
//
// Every row is a label cell followed by the feature vector:
//
//	A,0.48,0.82,0.01,...   (127 cells)
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ayusman/signdata/internal/features"
)

const (
	// FeatureColumns is the number of numeric cells per row.
	FeatureColumns = features.Len
	// Columns is the full row width: one label cell plus the features.
	Columns = FeatureColumns + 1

	// LabelFileSuffix names per-label files: <LABEL>_sign_data.csv.
	LabelFileSuffix = "_sign_data.csv"
	// MergedFileName is the default merge output.
	MergedFileName = "merged_sign_data.csv"
)

// ErrSchemaMismatch matches every *SchemaMismatchError.
var ErrSchemaMismatch = errors.New("schema mismatch")

// SchemaMismatchError reports a row whose width is not Columns.
type SchemaMismatchError struct {
	File string
	Row  int // 1-based
	Got  int
	Want int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: row %d has %d columns, want %d", e.File, e.Row, e.Got, e.Want)
}

// Is makes errors.Is(err, ErrSchemaMismatch) hold.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// PathFor returns where a label's samples are stored inside dir.
func PathFor(dir, label string) string {
	return filepath.Join(dir, label+LabelFileSuffix)
}

// LabelOf returns the label encoded in a per-label file name, or the base name
// without extension for any other csv file.
func LabelOf(path string) string {
	base := filepath.Base(path)
	if label, ok := strings.CutSuffix(base, LabelFileSuffix); ok {
		return label
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
