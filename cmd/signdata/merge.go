package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ayusman/signdata/internal/config"
	"github.com/ayusman/signdata/internal/dataset"
)

var (
	mergeInput       string
	mergeOutput      string
	mergeSortByLabel bool
	mergeStats       bool
	mergeJSON        bool
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Concatenate per-label csv files into one dataset",
		Args:  cobra.NoArgs,
		RunE:  runMergeCmd,
	}
	cmd.Flags().StringVar(&mergeInput, "input", config.DefaultDataDir(), "directory holding per-label csv files")
	cmd.Flags().StringVar(&mergeOutput, "output", "", "merged csv path (default <input>/"+dataset.MergedFileName+")")
	cmd.Flags().BoolVar(&mergeSortByLabel, "sort-by-label", false, "concatenate files in label order")
	cmd.Flags().BoolVar(&mergeStats, "stats", false, "print per-feature statistics")
	cmd.Flags().BoolVar(&mergeJSON, "json", false, "print the summary as JSON")
	return cmd
}

func runMergeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "input", &mergeInput, fileCfg.Merge.Input)
	applyStringConfig(cmd, "output", &mergeOutput, fileCfg.Merge.Output)
	applyBoolConfig(cmd, "sort-by-label", &mergeSortByLabel, fileCfg.Merge.SortByLabel)

	output := mergeOutput
	if output == "" {
		output = filepath.Join(mergeInput, dataset.MergedFileName)
	}

	merger := dataset.Merger{SortByLabel: mergeSortByLabel}
	merged, err := merger.MergeDir(mergeInput, output)
	if err != nil {
		var mismatch *dataset.SchemaMismatchError
		if errors.As(err, &mismatch) {
			return fmt.Errorf("merge aborted, %s was not written: %w", output, err)
		}
		if errors.Is(err, dataset.ErrNoInputFiles) {
			return fmt.Errorf("%w in %s", err, mergeInput)
		}
		return err
	}

	out := cmd.OutOrStdout()
	summary, err := dataset.Summarize(merged.Rows)
	if err != nil {
		// The merged file is already written; only the summary is lost.
		slog.Warn("could not summarize merged dataset", slog.String("output", output), slog.Any("error", err))
		_, err := fmt.Fprintf(out, "Merged %d rows from %d files into %s\n", len(merged.Rows), len(merged.Files), output)
		return err
	}

	if mergeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if _, err := fmt.Fprintf(out, "Merged %d rows from %d files into %s\n\n", summary.Rows, len(merged.Files), output); err != nil {
		return err
	}
	return printSummary(out, summary, mergeStats)
}

func printSummary(out io.Writer, summary *dataset.Summary, withFeatures bool) error {
	labels := newTable("LABEL", "ROWS")
	for _, lc := range summary.Labels {
		labels.add(lc.Label, strconv.Itoa(lc.Rows))
	}
	if err := labels.render(out); err != nil {
		return err
	}

	if !withFeatures || len(summary.Features) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	features := newTable("FEATURE", "MEAN", "STDDEV", "ZEROS")
	for _, fs := range summary.Features {
		features.add(
			strconv.Itoa(fs.Index),
			strconv.FormatFloat(fs.Mean, 'f', 4, 64),
			strconv.FormatFloat(fs.StdDev, 'f', 4, 64),
			strconv.Itoa(fs.Zeros),
		)
	}
	features.styleColumn(3, func(row []string) lipgloss.Style {
		if row[3] != "0" {
			return warnStyle
		}
		return mutedStyle
	})
	return features.render(out)
}
