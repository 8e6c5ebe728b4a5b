package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soxboard/soxboard/internal/cli"
	"github.com/soxboard/soxboard/internal/config"
	"github.com/soxboard/soxboard/internal/export"
	"github.com/soxboard/soxboard/internal/filter"
	"github.com/soxboard/soxboard/internal/session"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered dataset view to csv or xlsx",
		Long: `Export writes the currently filtered view, system columns hidden, to a
spreadsheet file.

Examples:
  soxboard export --format csv
  soxboard export --filter "Control Status=Fail" --format xlsx --out failures.xlsx`,
		RunE: runExport,
	}

	addDatasetFlag(cmd)
	cmd.Flags().String("upload", "", "restrict to one upload id")
	cmd.Flags().StringArray("filter", nil, `field filter, repeatable: "Field=value[,value...]"`)
	cmd.Flags().String("format", "csv", "output format (csv, xlsx)")
	cmd.Flags().StringP("out", "o", "", "output file (default: configured basename + extension)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("invalid format %q (want csv or xlsx)", format)
	}

	state := session.New()
	name, _ := cmd.Flags().GetString("dataset")
	if err := state.SelectDataset(name); err != nil {
		return err
	}
	state.UploadID, _ = cmd.Flags().GetString("upload")

	rawFilters, _ := cmd.Flags().GetStringArray("filter")
	spec, err := parseFilters(rawFilters)
	if err != nil {
		return err
	}
	for field, values := range spec {
		state.SetFilter(field, values)
	}

	repo, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	full, err := loadView(cmd.Context(), repo, state)
	if err != nil {
		return err
	}
	visible := export.HideSystemColumns(filter.Apply(full, state.Filters))

	var data []byte
	switch format {
	case "csv":
		data, err = export.CSVBytes(visible)
	case "xlsx":
		data, err = export.WorkbookBytes(visible)
	}
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = viper.GetString(config.KeyExportBasename) + "." + format
	}
	if err := os.WriteFile(out, data, 0640); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("exported %d rows to %s", visible.NumRows(), out)))
	return nil
}
