package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soxboard/soxboard/internal/config"
	"github.com/soxboard/soxboard/internal/filter"
	"github.com/soxboard/soxboard/internal/ingest"
	"github.com/soxboard/soxboard/internal/model"
	"github.com/soxboard/soxboard/internal/service"
	"github.com/soxboard/soxboard/internal/storage"
)

// initStore opens the repository at the configured storage location.
func initStore() (service.Repository, error) {
	dir := config.ExpandPath(viper.GetString(config.KeyStorageDir))
	file := viper.GetString(config.KeyStorageFile)
	if file == "" {
		return nil, fmt.Errorf("storage file name not configured")
	}

	return storage.NewSQLiteStorage(filepath.Join(dir, file))
}

// limitsFromConfig reads the upload limits.
func limitsFromConfig() ingest.Limits {
	return ingest.Limits{
		MaxFileSizeMB: viper.GetInt(config.KeyMaxFileSizeMB),
		MaxRows:       viper.GetInt(config.KeyMaxRows),
	}
}

// addDatasetFlag registers the shared --dataset flag.
func addDatasetFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("dataset", "D", model.Controls.Name, "dataset name ("+datasetNames()+")")
}

func datasetNames() string {
	names := make([]string, len(model.Datasets))
	for i, d := range model.Datasets {
		names[i] = d.Name
	}
	return strings.Join(names, ", ")
}

func datasetFromFlags(cmd *cobra.Command) (model.Dataset, error) {
	name, _ := cmd.Flags().GetString("dataset")
	return model.DatasetByName(name)
}

// parseFilters turns repeated --filter "Field=v1,v2" flags into a spec.
func parseFilters(raw []string) (filter.Spec, error) {
	spec := filter.Spec{}
	for _, entry := range raw {
		field, values, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q (want Field=value[,value...])", entry)
		}
		field = strings.TrimSpace(field)
		if field == "" {
			return nil, fmt.Errorf("invalid filter %q: empty field name", entry)
		}
		var accepted []string
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				accepted = append(accepted, v)
			}
		}
		spec[field] = append(spec[field], accepted...)
	}
	return spec, nil
}

// statusFieldFor picks the dataset's status column for metrics, if any.
func statusFieldFor(ds model.Dataset) string {
	for _, f := range ds.Schema {
		if strings.Contains(f.Name, "Status") {
			return f.Name
		}
	}
	return ""
}
