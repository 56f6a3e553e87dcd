package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/lc/ox/internal/config"
	"github.com/lc/ox/internal/filesys"
	"github.com/lc/ox/internal/syntax"
)

var errCheckFailed = errors.New("configuration check failed")

// loadConfig loads the configuration and prints the load notice, if any,
// the way the editor shows it in its status bar.
func loadConfig(path string) (*config.Config, config.Status) {
	cfg, status := config.Load(path)
	if notice := status.Notice(); notice != "" {
		color.New(color.FgYellow).Fprintln(os.Stderr, notice)
	}
	return cfg, status
}

func newCheckCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the configuration and report problems",
		Long: `Load the configuration file and report how it was obtained, which
highlight patterns the editor will silently drop, and any extension or
palette inconsistencies.

Exits non-zero when the file does not parse or a pattern would be dropped.
A missing file is not an error: the editor runs on its defaults.`,
		Example: "oxcfg check --config ~/.config/ox/ox.yaml",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, status := config.Load(*cfgPath)

			bold := color.New(color.Bold)
			bold.Printf("config: ")
			fmt.Println(status.Path)
			bold.Printf("status: ")
			switch status.Kind {
			case config.StatusSuccess:
				color.New(color.FgGreen).Println(status.Kind)
			case config.StatusFileNotFound:
				color.New(color.FgYellow).Printf("%s (using built-in defaults)\n", status.Kind)
			case config.StatusParseError:
				color.New(color.FgHiRed, color.Bold).Printf("%s (using built-in defaults)\n", status.Kind)
				fmt.Println(status.Diagnostic)
			}

			report := syntax.Validate(cfg)
			fmt.Printf("%d language(s), %d pattern(s)\n", report.Languages, report.Patterns)

			dropped := multierr.Errors(report.Err)
			for _, err := range dropped {
				color.New(color.FgRed).Print("dropped: ")
				fmt.Println(err)
			}
			for _, w := range report.Warnings {
				color.New(color.FgYellow).Print("warning: ")
				fmt.Println(w)
			}

			if status.Kind == config.StatusParseError || len(dropped) > 0 {
				return errCheckFailed
			}
			color.New(color.FgGreen, color.Bold).Println("✓ configuration OK")
			return nil
		},
	}
}

func newRulesCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rules <extension>",
		Short: "Show the compiled highlight rules for a file extension",
		Long: `Compile the highlight rules for a file extension exactly as the editor
does and list each category with its color and patterns. The extension is
given without a leading dot and is matched case-sensitively.`,
		Example: "oxcfg rules rs",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ext := args[0]
			cfg, _ := loadConfig(*cfgPath)

			lang, ok := cfg.LanguageFor(ext)
			if !ok {
				color.Yellow("No language is configured for extension %q.", ext)
				return nil
			}
			rules := syntax.CompileRules(cfg, ext)

			color.New(color.Bold).Printf("%s%s\n", lang.Icon, lang.Name)
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Category", "Color", "Patterns", "First pattern"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			for _, category := range rules.Categories() {
				patterns := rules[category]
				first := ""
				if len(patterns) > 0 {
					first = patterns[0].String()
				}
				table.Append([]string{category, swatch(cfg.Highlights, category), strconv.Itoa(len(patterns)), first})
			}
			table.Render()
			return nil
		},
	}
}

func newPaletteCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "palette",
		Short:   "Show the theme and highlight colors",
		Example: "oxcfg palette",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, _ := loadConfig(*cfgPath)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name", "Color"})
			table.SetBorder(false)
			theme := []struct {
				name string
				rgb  config.RGB
			}{
				{"editor_bg", cfg.Theme.EditorBg},
				{"editor_fg", cfg.Theme.EditorFg},
				{"status_bg", cfg.Theme.StatusBg},
				{"status_fg", cfg.Theme.StatusFg},
				{"line_number_fg", cfg.Theme.LineNumberFg},
			}
			for _, t := range theme {
				table.Append([]string{"theme." + t.name, t.rgb.Printer(false).Sprint(t.rgb.Hex())})
			}
			for _, category := range sortedKeys(cfg.Highlights) {
				table.Append([]string{"highlights." + category, swatch(cfg.Highlights, category)})
			}
			table.Render()
			return nil
		},
	}
}

func newInitCmd(cfgPath *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in default configuration",
		Long: `Write the built-in default configuration to the config path so it can
be edited. An existing file is left alone unless --force is given.`,
		Example: "oxcfg init --config ~/.config/ox/ox.toml",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Save expands the path itself.
			if err := config.Save(filesys.OS(), *cfgPath, config.Default(), force); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Wrote default configuration to ")
			color.New(color.FgHiGreen, color.Bold).Println(config.ExpandPath(*cfgPath))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")
	return cmd
}

// swatch renders a palette entry in its own color, or a dash when the
// category has no color.
func swatch(p config.Palette, category string) string {
	c, ok := p.Lookup(category)
	if !ok {
		return "-"
	}
	return c.Printer(false).Sprint(c.Hex())
}

func sortedKeys(p config.Palette) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
