// Package config provides configuration management for the ox editor.
//
// The package uses a Provider interface to abstract configuration loading,
// with the primary implementation reading a YAML (or TOML) file through the
// filesys abstraction.
//
// # Configuration Structure
//
// Configuration is structured as follows:
//
//	general:
//	  line_number_padding_right: 2   # spaces after the line number
//	  line_number_padding_left: 1    # spaces before the line number
//	  tab_width: 4
//	  undo_period: 5                 # seconds between undo snapshots
//	theme:
//	  editor_bg: [41, 41, 61]
//	  editor_fg: [255, 255, 255]
//	  status_bg: [59, 59, 84]
//	  status_fg: [35, 240, 144]
//	  line_number_fg: [65, 65, 98]
//	highlights:
//	  comments: [113, 113, 169]
//	  keywords: [134, 76, 232]
//	languages:
//	  - name: Rust
//	    icon: "R "
//	    extensions: [rs]
//	    keywords: [fn, let, mut]
//	    definitions:
//	      comments: ['(?m)(//.*)$']
//	      strings: ['(".*?")']
//
// Every key shown above is required; empty lists and maps are fine.
// Files whose name ends in .toml use the same keys in TOML syntax.
//
// # Basic Usage
//
// Load configuration from the default path (~/.config/ox/ox.yaml):
//
//	cfg, status := config.New().Load()
//	if notice := status.Notice(); notice != "" {
//		showStatusMessage(notice)
//	}
//
// Load never fails outright. When the file cannot be read the status is
// StatusFileNotFound; when it cannot be parsed the status is
// StatusParseError and Status.Diagnostic describes the problem. In both
// cases the returned configuration is Default().
//
// # Paths
//
// Paths are expanded before use: $VAR and ${VAR} are replaced from the
// environment and a leading ~ becomes the home directory. If expansion
// fails the path is used exactly as given.
//
// # Default Configuration
//
// Default builds a fresh value on every call. It carries a ten-color
// highlight palette and a single Rust language definition so that a user
// without a config file still gets syntax highlighting for .rs files.
//
// # Thread Safety
//
// Once loaded, the Config struct should be treated as immutable. Readers
// may then share it between goroutines without locking.
package config
