package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pders01/templatify/internal/config"
	"github.com/pders01/templatify/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	workspaceDir string
	templatesDir string
)

var rootCmd = &cobra.Command{
	Use:   "templatify",
	Short: "Save project folders as reusable templates",
	Long: `templatify captures a workspace folder as a single JSON template document
and recreates it elsewhere:
  - export the current folder as a named template
  - import a template into the current folder without overwriting anything
  - update, list, show and remove stored templates

Templates live in ~/.config/templatify/templates unless configured otherwise.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogging,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		reportFailure(os.Stdout, os.Stderr, err)
	}
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func reportFailure(out, errOut io.Writer, err error) {
	logging.Error("command failed", logging.Err(err))
	newConsoleNotifier(out, errOut).Failure(err)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/templatify/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "", "workspace folder (default is the current directory)")
	rootCmd.PersistentFlags().StringVar(&templatesDir, "templates", "", "templates folder (overrides templates.location)")

	viper.BindPFlag(config.KeyTemplatesLocation, rootCmd.PersistentFlags().Lookup("templates"))
}

func initConfig() {
	configDir, err := config.Dir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("templatify")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(configDir)

	readConfig(os.Stderr)
}

// readConfig loads the config file, warning when one exists but cannot be
// parsed. A missing file is not an error.
func readConfig(errOut io.Writer) {
	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return
	}
	fmt.Fprintf(errOut, "Warning: failed to read config %s: %v\n", viper.ConfigFileUsed(), err)
}

func initLogging(cmd *cobra.Command, args []string) error {
	if err := logging.Init(logging.Config{
		Level:  config.GetLogLevel(),
		Format: config.GetLogFormat(),
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		logging.Debug("using config file", logging.String("path", used))
	}
	return nil
}

// configPath returns the file `init` writes the default config to.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(dir, "config.toml"), nil
}
