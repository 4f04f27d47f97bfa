package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyTemplatesLocation = "templates.location"
	KeyExportExclude     = "export.exclude"
	KeyConcurrency       = "concurrency"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
)

const defaultConcurrency = 8

// Dir returns the directory holding config.toml and, by default, the
// templates folder.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "templatify"), nil
}

// SetDefaults registers the default value of every key.
func SetDefaults(configDir string) {
	viper.SetDefault(KeyTemplatesLocation, filepath.Join(configDir, "templates"))
	viper.SetDefault(KeyExportExclude, []string{})
	viper.SetDefault(KeyConcurrency, defaultConcurrency)
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "console")
}

// GetTemplateLocation returns the folder where template documents are stored
func GetTemplateLocation() string {
	return expandHome(viper.GetString(KeyTemplatesLocation))
}

// GetExclude returns the glob patterns skipped when exporting a workspace
func GetExclude() []string {
	return viper.GetStringSlice(KeyExportExclude)
}

// GetConcurrency returns the worker limit for tree traversal
func GetConcurrency() int {
	n := viper.GetInt(KeyConcurrency)
	if n < 1 {
		return defaultConcurrency
	}
	return n
}

// GetLogLevel returns the minimum log level
func GetLogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// GetLogFormat returns the log encoding, console or json
func GetLogFormat() string {
	return viper.GetString(KeyLogFormat)
}

// File is the layout of config.toml.
type File struct {
	Concurrency int              `toml:"concurrency"`
	Templates   TemplatesSection `toml:"templates"`
	Export      ExportSection    `toml:"export"`
	Log         LogSection       `toml:"log"`
}

type TemplatesSection struct {
	Location string `toml:"location"`
}

type ExportSection struct {
	Exclude []string `toml:"exclude"`
}

type LogSection struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultFile returns the config written by `templatify init`.
func DefaultFile(templatesDir string) File {
	return File{
		Concurrency: defaultConcurrency,
		Templates:   TemplatesSection{Location: templatesDir},
		Export:      ExportSection{Exclude: []string{".git", "node_modules"}},
		Log:         LogSection{Level: "warn", Format: "console"},
	}
}

// WriteDefault encodes DefaultFile(templatesDir) as TOML.
func WriteDefault(w io.Writer, templatesDir string) error {
	return toml.NewEncoder(w).Encode(DefaultFile(templatesDir))
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
