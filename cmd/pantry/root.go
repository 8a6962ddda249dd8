// Root command for the pantry CLI.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/pantry"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagManifest  string
	flagJSON      bool
	flagVerbose   bool
)

// Values loaded from config.yaml by PersistentPreRunE, available to
// all subcommands.
var (
	configDataDir  string
	configManifest string
)

// logger writes diagnostics to stderr; stdout is reserved for results.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Level:           log.WarnLevel,
})

var rootCmd = &cobra.Command{
	Use:     "pantry",
	Short:   "Pantry manages dependency groups in project manifests",
	Version: pantry.Version,
	Long: `Pantry validates, expands, and indexes the dependency-groups table
of pyproject-style manifests: named groups of package requirements
that are excluded from built distribution artifacts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configManifest = cfg.GetString(cfgKeyManifest)
		logger.Debug("configuration loaded", "config_dir", configDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "index data directory (default: $(CWD)/.pantry-db)")
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "", "manifest file (default: pyproject.toml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > PANTRY_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the index data directory following the
// precedence: --data-dir flag > config.yaml data_dir > PANTRY_DATA_DIR
// env > default $(CWD)/.pantry-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveManifestPath returns the manifest to operate on: --manifest
// flag > config.yaml manifest > pyproject.toml in the CWD.
func resolveManifestPath() string {
	if flagManifest != "" {
		return flagManifest
	}
	if configManifest != "" {
		return configManifest
	}
	return defaultManifestName
}
