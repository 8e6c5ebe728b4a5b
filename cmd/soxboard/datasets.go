package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soxboard/soxboard/internal/cli"
	"github.com/soxboard/soxboard/internal/model"
)

func datasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the available datasets and their schemas",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.FormatTitle("Datasets"))
			for _, ds := range model.Datasets {
				fmt.Printf("%s %s\n", cli.FolderIcon, cli.TitleStyle.UnsetMargins().Render(ds.Name))
				fmt.Println(cli.SubtleStyle.Render("  " + strings.Join(ds.FieldNames(), ", ")))
			}
		},
	}
}
