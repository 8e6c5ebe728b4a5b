package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soxboard/soxboard/internal/classify"
	"github.com/soxboard/soxboard/internal/cli"
	"github.com/soxboard/soxboard/internal/common"
	"github.com/soxboard/soxboard/internal/export"
	"github.com/soxboard/soxboard/internal/filter"
	"github.com/soxboard/soxboard/internal/model"
	"github.com/soxboard/soxboard/internal/report"
	"github.com/soxboard/soxboard/internal/service"
	"github.com/soxboard/soxboard/internal/session"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the filtered dataset table and summary metrics",
		Long: `Show renders the current working table of a dataset, optionally
restricted to one upload and filtered per field.

Examples:
  soxboard show
  soxboard show --filter "Control Status=Fail"
  soxboard show --dataset tickets --upload 3f2c... --summary`,
		RunE: runShow,
	}

	addDatasetFlag(cmd)
	cmd.Flags().String("upload", "", "restrict to one upload id")
	cmd.Flags().StringArray("filter", nil, `field filter, repeatable: "Field=value[,value...]"`)
	cmd.Flags().Bool("summary", false, "show only the summary metrics")
	cmd.Flags().Int("limit", 40, "maximum rows to print (0 = all)")

	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
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
	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		state.View = session.ViewSummary
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

	filtered := filter.Apply(full, state.Filters)
	visible := export.HideSystemColumns(filtered)

	metrics := report.Status(full, filtered, statusFieldFor(state.Dataset))
	printMetrics(state.Dataset, metrics)

	if state.View == session.ViewSummary {
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	printTable(visible, limit)
	return nil
}

// loadView fetches the session's working table. Read faults degrade to an
// empty view with a warning so the rest of the interface stays usable.
func loadView(ctx context.Context, repo service.Repository, state *session.State) (*model.Table, error) {
	var (
		t   *model.Table
		err error
	)
	if state.UploadID != "" {
		t, err = repo.LoadByUpload(ctx, state.Dataset, state.UploadID)
	} else {
		t, err = repo.LoadAll(ctx, state.Dataset)
	}
	if err != nil {
		if errors.Is(err, common.ErrReadFault) {
			fmt.Println(cli.FormatWarning("store unavailable, showing empty dataset"))
			return t, nil
		}
		return nil, err
	}
	return t, nil
}

func printMetrics(ds model.Dataset, m report.StatusMetrics) {
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Dataset %s", ds.Name)))
	fmt.Printf("%s %d    %s %d    %s %d\n",
		cli.SubtleStyle.Render("total:"), m.TotalRows,
		cli.SubtleStyle.Render("filtered:"), m.FilteredRows,
		cli.SubtleStyle.Render("distinct statuses:"), m.DistinctStatuses)

	for _, sc := range m.ByStatus {
		style := cli.SubtleStyle
		switch sc.Label {
		case classify.Effective:
			style = cli.SuccessStyle
		case classify.Ineffective:
			style = cli.ErrorStyle
		}
		fmt.Printf("  %-30s %6d  %s\n", sc.Value, sc.Count,
			style.Render(fmt.Sprintf("(%s, weighted %.1f)", sc.Label, sc.Weighted)))
	}
	fmt.Println()
}

func printTable(t *model.Table, limit int) {
	if t.IsEmpty() {
		fmt.Println(cli.SubtleStyle.Render("No rows."))
		return
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for r := range t.Rows {
		for c := range t.Headers {
			if l := len(t.Cell(r, c)); l > widths[c] {
				widths[c] = l
			}
		}
	}

	var header strings.Builder
	for i, h := range t.Headers {
		header.WriteString(cli.TableCellStyle.Render(fmt.Sprintf("%-*s", widths[i], h)))
	}
	fmt.Println(cli.TableHeaderStyle.Render(header.String()))

	for r := range t.Rows {
		if limit > 0 && r >= limit {
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("... %d more rows", t.NumRows()-limit)))
			break
		}
		var line strings.Builder
		for c := range t.Headers {
			line.WriteString(cli.TableCellStyle.Render(fmt.Sprintf("%-*s", widths[c], t.Cell(r, c))))
		}
		fmt.Println(line.String())
	}
}
