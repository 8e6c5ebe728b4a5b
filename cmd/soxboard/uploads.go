package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soxboard/soxboard/internal/cli"
	"github.com/soxboard/soxboard/internal/common"
)

func uploadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uploads",
		Short: "Manage the uploads stored in a dataset",
	}

	cmd.AddCommand(uploadsListCmd())
	cmd.AddCommand(uploadsDeleteCmd())

	return cmd
}

func uploadsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List uploads, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := datasetFromFlags(cmd)
			if err != nil {
				return err
			}

			repo, err := initStore()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			uploads, err := repo.Summarize(cmd.Context(), ds)
			if err != nil && !errors.Is(err, common.ErrReadFault) {
				return err
			}
			if errors.Is(err, common.ErrReadFault) {
				fmt.Println(cli.FormatWarning("store unavailable, showing no uploads"))
			}

			if len(uploads) == 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No uploads in dataset %q yet.", ds.Name)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Uploads in %s", ds.Name)))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-38s %-20s %-30s %8s",
				"UPLOAD ID", "UPLOADED AT", "SOURCE FILE", "ROWS")))
			for _, u := range uploads {
				fmt.Printf("%-38s %-20s %-30s %8d\n", u.ID, u.UploadedAt, u.SourceFilename, u.RowCount)
			}
			return nil
		},
	}

	addDatasetFlag(cmd)
	return cmd
}

func uploadsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one upload and every row it created",
		Long: `Delete removes all rows sharing the given upload id from the dataset.
The operation is irreversible; an unknown id removes nothing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := datasetFromFlags(cmd)
			if err != nil {
				return err
			}
			uploadID, _ := cmd.Flags().GetString("id")
			if uploadID == "" {
				return fmt.Errorf("--id is required")
			}

			repo, err := initStore()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			count, err := repo.DeleteUpload(cmd.Context(), ds, uploadID)
			if err != nil {
				return err
			}

			if count == 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("no rows found for upload %s", uploadID)))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("deleted %d rows of upload %s from %s",
				count, uploadID, ds.Name)))
			return nil
		},
	}

	addDatasetFlag(cmd)
	cmd.Flags().String("id", "", "upload id to delete")

	return cmd
}
