// Command oxcfg inspects and bootstraps the ox editor configuration.
//
// Usage:
//
//	oxcfg check              - Load the config file and report every problem
//	oxcfg rules <extension>  - Show the compiled highlight rules for an extension
//	oxcfg palette            - Show the highlight palette and theme colors
//	oxcfg init [--force]     - Write the built-in default configuration to disk
//	oxcfg version            - Show version information
//
// All commands accept --config to point at a file other than
// ~/.config/ox/ox.yaml. Files ending in .toml are read as TOML.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lc/ox/internal/buildinfo"
	"github.com/lc/ox/internal/config"
	"github.com/lc/ox/internal/log"
)

func main() {
	defer log.Sync()

	var cfgPath string
	root := &cobra.Command{
		Use:   "oxcfg",
		Short: "ox editor configuration tool",
		Long: `oxcfg loads the ox editor configuration the same way the editor does,
falling back to the built-in defaults when the file is missing or broken,
and reports what the editor would end up using.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigPath, "path to the configuration file")

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("version: %s\n", buildinfo.Version)
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		},
	}

	root.AddCommand(
		newCheckCmd(&cfgPath),
		newRulesCmd(&cfgPath),
		newPaletteCmd(&cfgPath),
		newInitCmd(&cfgPath),
		versionCmd,
	)
	if err := root.Execute(); err != nil {
		log.Sync()
		os.Exit(1)
	}
}
