package dataset

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// LabelCount is how many rows carry one label.
type LabelCount struct {
	Label string `json:"label"`
	Rows  int    `json:"rows"`
}

// FeatureStat describes one feature column across all rows.
type FeatureStat struct {
	Index  int     `json:"index"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Zeros  int     `json:"zeros"`
}

// Summary describes a merged table.
type Summary struct {
	Rows     int           `json:"rows"`
	Labels   []LabelCount  `json:"labels"`
	Features []FeatureStat `json:"features"`
}

// Summarize counts rows per label and computes mean and sample standard
// deviation for every feature column. Rows must already be Columns wide.
func Summarize(rows [][]string) (*Summary, error) {
	counts := make(map[string]int)
	columns := make([][]float64, FeatureColumns)
	for i := range columns {
		columns[i] = make([]float64, 0, len(rows))
	}

	for r, row := range rows {
		if len(row) != Columns {
			return nil, &SchemaMismatchError{Row: r + 1, Got: len(row), Want: Columns}
		}
		counts[row[0]]++
		for c, cell := range row[1:] {
			x, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", r+1, c+2, err)
			}
			columns[c] = append(columns[c], x)
		}
	}

	s := &Summary{Rows: len(rows)}
	for label, n := range counts {
		s.Labels = append(s.Labels, LabelCount{Label: label, Rows: n})
	}
	sort.Slice(s.Labels, func(i, j int) bool { return s.Labels[i].Label < s.Labels[j].Label })

	if len(rows) == 0 {
		return s, nil
	}

	s.Features = make([]FeatureStat, FeatureColumns)
	for i, col := range columns {
		fs := FeatureStat{Index: i}
		if len(col) > 1 {
			fs.Mean, fs.StdDev = stat.MeanStdDev(col, nil)
		} else {
			fs.Mean = stat.Mean(col, nil)
		}
		for _, x := range col {
			if x == 0 {
				fs.Zeros++
			}
		}
		s.Features[i] = fs
	}
	return s, nil
}
