package config

import "github.com/spf13/viper"

// Configuration keys.
const (
	KeyStorageDir     = "storage.dir"
	KeyStorageFile    = "storage.file"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLogDir         = "logging.dir"
	KeyMaxFileSizeMB  = "limits.max_file_size_mb"
	KeyMaxRows        = "limits.max_rows"
	KeyExportBasename = "export.basename"
)

// SetDefaults registers the default configuration values. Every key is
// overridable through the config file or SOXBOARD_* environment variables.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageDir, "data")
	v.SetDefault(KeyStorageFile, "sox.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogDir, "")
	v.SetDefault(KeyMaxFileSizeMB, 50)
	v.SetDefault(KeyMaxRows, 100000)
	v.SetDefault(KeyExportBasename, "SOX_Controls_Export")
}
