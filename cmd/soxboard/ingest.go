package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/soxboard/soxboard/internal/cli"
	"github.com/soxboard/soxboard/internal/ingest"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Ingest control-testing spreadsheets into a dataset",
		Long: `Ingest .xlsx or .csv exports into a dataset. Column name variations
("MICS ID", "micsid", "MICS_ID") are recognized automatically; scattered
reason/root-cause/conclusion columns are consolidated. Each file becomes one
upload with its own id.

Examples:
  # Ingest a single export into the controls dataset
  soxboard ingest results_2026Q1.xlsx

  # Ingest several ticket exports
  soxboard ingest --dataset tickets ~/Downloads/tickets_*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	addDatasetFlag(cmd)
	cmd.Flags().BoolP("dry-run", "d", false, "Parse and validate without saving")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ds, err := datasetFromFlags(cmd)
	if err != nil {
		return err
	}
	limits := limitsFromConfig()

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to ingest")
	}

	slog.Info("Ingesting uploads...",
		"dataset", ds.Name,
		"file_count", len(allFiles),
		"dry_run", dryRun)

	repo, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	var bar *progressbar.ProgressBar
	if len(allFiles) > 1 {
		bar = progressbar.NewOptions(len(allFiles),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("ingesting"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	succeeded := 0
	for _, path := range allFiles {
		if bar != nil {
			_ = bar.Add(1)
		}

		table, err := ingest.Load(path, ds, limits)
		if err != nil {
			// One bad file never aborts the rest of the batch.
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %v", filepath.Base(path), err)))
			continue
		}

		if dryRun {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%s: %d rows parsed (dry run, not saved)",
				filepath.Base(path), table.NumRows())))
			succeeded++
			continue
		}

		uploadID, err := repo.Append(cmd.Context(), ds, table, filepath.Base(path))
		if err != nil {
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %v", filepath.Base(path), err)))
			continue
		}

		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: %d rows saved as upload %s",
			filepath.Base(path), table.NumRows(), uploadID)))
		succeeded++
	}

	if succeeded == 0 {
		return fmt.Errorf("no files ingested")
	}
	return nil
}
