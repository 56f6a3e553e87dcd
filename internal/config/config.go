// Package config provides configuration loading for the ox editor.
// It reads general settings, the color theme, the highlight palette and
// the per-language syntax rules from a file, and falls back to a built-in
// default configuration whenever that file cannot be read or parsed.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/lc/ox/internal/filesys"
	"github.com/lc/ox/internal/log"
)

var (
	// ErrInvalidConfig is returned when a decoded configuration is missing a section or key.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoConfig is reported when the configuration file cannot be read.
	ErrNoConfig = errors.New("configuration file not found")
	// ErrFileExists is returned by Save when it would overwrite a file.
	ErrFileExists = errors.New("configuration file already exists")
)

// DefaultConfigPath is the default location of the configuration file.
// It is expanded with ExpandPath before use.
const DefaultConfigPath = "~/.config/ox/ox.yaml"

// Config holds the editor configuration. Once returned by Load it is
// treated as read-only.
type Config struct {
	General    General    `yaml:"general" toml:"general"`
	Theme      Theme      `yaml:"theme" toml:"theme"`
	Highlights Palette    `yaml:"highlights" toml:"highlights"`
	Languages  []Language `yaml:"languages" toml:"languages"`
}

// General holds numeric editor behavior knobs.
type General struct {
	LineNumberPaddingRight uint   `yaml:"line_number_padding_right" toml:"line_number_padding_right"`
	LineNumberPaddingLeft  uint   `yaml:"line_number_padding_left" toml:"line_number_padding_left"`
	TabWidth               uint   `yaml:"tab_width" toml:"tab_width"`
	UndoPeriod             uint64 `yaml:"undo_period" toml:"undo_period"`
}

// UndoInterval returns the undo snapshot period as a duration. The
// period is stored in seconds.
func (g General) UndoInterval() time.Duration {
	return time.Duration(g.UndoPeriod) * time.Second
}

// Theme holds the editor chrome colors.
type Theme struct {
	EditorBg     RGB `yaml:"editor_bg" toml:"editor_bg"`
	EditorFg     RGB `yaml:"editor_fg" toml:"editor_fg"`
	StatusBg     RGB `yaml:"status_bg" toml:"status_bg"`
	StatusFg     RGB `yaml:"status_fg" toml:"status_fg"`
	LineNumberFg RGB `yaml:"line_number_fg" toml:"line_number_fg"`
}

// Palette maps a highlight category name to its color.
type Palette map[string]RGB

// Lookup returns the color for a category. Categories without a palette
// entry are tolerated; ok is false and the caller decides what to draw.
func (p Palette) Lookup(category string) (RGB, bool) {
	c, ok := p[category]
	return c, ok
}

// Language describes the syntax highlighting rules of one language.
// Keywords are matched literally as whole words; regular expression
// metacharacters in a keyword have no special meaning. Definitions map a
// highlight category to regular expressions.
type Language struct {
	Name        string              `yaml:"name" toml:"name"`
	Icon        string              `yaml:"icon" toml:"icon"`
	Extensions  []string            `yaml:"extensions" toml:"extensions"`
	Keywords    []string            `yaml:"keywords" toml:"keywords"`
	Definitions map[string][]string `yaml:"definitions" toml:"definitions"`
}

// HasExtension reports whether the language claims ext. The comparison
// is exact: no case folding and no leading dot handling.
func (l *Language) HasExtension(ext string) bool {
	for _, e := range l.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LanguageFor returns the first language claiming ext.
func (c *Config) LanguageFor(ext string) (*Language, bool) {
	for i := range c.Languages {
		if c.Languages[i].HasExtension(ext) {
			return &c.Languages[i], true
		}
	}
	return nil, false
}

// Validate reports settings the editor accepts but cannot use sensibly.
// Load does not call it: a file with these problems still loads. All
// problems are reported, not just the first.
func (c *Config) Validate() error {
	var err error
	if c.General.TabWidth < 1 {
		err = multierr.Append(err, errors.New("tab width must be at least 1"))
	}
	for i, lang := range c.Languages {
		if strings.TrimSpace(lang.Name) == "" {
			err = multierr.Append(err, fmt.Errorf("language %d: name cannot be empty", i))
		}
	}
	return err
}

// StatusKind tells how a configuration was obtained.
type StatusKind int

const (
	// StatusSuccess means the configuration file was read and parsed.
	StatusSuccess StatusKind = iota
	// StatusFileNotFound means the file could not be read; defaults are in use.
	StatusFileNotFound
	// StatusParseError means the file was read but did not parse; defaults are in use.
	StatusParseError
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusFileNotFound:
		return "file not found"
	case StatusParseError:
		return "parse error"
	default:
		return fmt.Sprintf("StatusKind(%d)", int(k))
	}
}

// Status describes the outcome of a Load. Load never fails outright, so
// callers branch on Kind instead of on an error.
type Status struct {
	Kind StatusKind
	// Path is the expanded path that was read.
	Path string
	// Diagnostic is a human-readable description of the parse failure.
	// It is only set, and never empty, for StatusParseError.
	Diagnostic string
	// Err is the underlying error for non-success outcomes.
	Err error
}

// OK reports whether the configuration came from the file.
func (s Status) OK() bool { return s.Kind == StatusSuccess }

func (s Status) String() string {
	if s.Kind == StatusParseError {
		return fmt.Sprintf("%s: %s", s.Kind, s.Diagnostic)
	}
	return s.Kind.String()
}

// Notice returns a one-line message suitable for the editor status bar,
// or an empty string on success.
func (s Status) Notice() string {
	switch s.Kind {
	case StatusFileNotFound:
		return fmt.Sprintf("config file %s not found, using default configuration", s.Path)
	case StatusParseError:
		first, _, _ := strings.Cut(s.Diagnostic, "\n")
		return fmt.Sprintf("failed to parse %s, using default configuration: %s", s.Path, first)
	default:
		return ""
	}
}

// Provider defines the interface for loading configuration.
type Provider interface {
	Load() (*Config, Status)
}

// FSProvider implements Provider using the local filesystem.
type FSProvider struct {
	fs   filesys.ReadFS
	path string
}

// Verify FSProvider implements Provider interface.
var _ Provider = (*FSProvider)(nil)

// New creates a provider for DefaultConfigPath on the OS filesystem.
func New() Provider {
	return NewWithPath(filesys.OS(), DefaultConfigPath)
}

// NewWithPath creates a new provider with a specific config path. The
// path is expanded with ExpandPath on every Load.
func NewWithPath(fs filesys.ReadFS, path string) Provider {
	return &FSProvider{
		fs:   fs,
		path: path,
	}
}

// Load reads the configuration file at path from the OS filesystem.
func Load(path string) (*Config, Status) {
	return NewWithPath(filesys.OS(), path).Load()
}

// Load reads and parses the configuration file. It always returns a
// complete configuration: the parsed file on success, Default otherwise.
func (p *FSProvider) Load() (*Config, Status) {
	path := ExpandPath(p.path)

	data, err := p.fs.ReadFile(path)
	if err != nil {
		log.Debug("config file unreadable, using defaults", "path", path, "error", err)
		return Default(), Status{
			Kind: StatusFileNotFound,
			Path: path,
			Err:  fmt.Errorf("%w: %w", ErrNoConfig, err),
		}
	}

	cfg, err := Parse(data, FormatFor(path))
	if err != nil {
		log.Debug("config file did not parse, using defaults", "path", path, "error", err)
		return Default(), Status{
			Kind:       StatusParseError,
			Path:       path,
			Diagnostic: diagnostic(err),
			Err:        err,
		}
	}

	log.Debug("loaded configuration", "path", path, "languages", len(cfg.Languages))
	return cfg, Status{Kind: StatusSuccess, Path: path}
}
