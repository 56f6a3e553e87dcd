package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	// FormatYAML is the native configuration format.
	FormatYAML Format = "yaml"
	// FormatTOML is accepted for files ending in .toml.
	FormatTOML Format = "toml"
)

// FormatFor picks the file format from the path's extension. Anything
// that is not .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// DecodeError is returned by Parse when the input does not deserialize
// into a complete configuration.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s config: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// document mirrors Config with a pointer for every key so that a missing
// key can be told apart from a zero value. Neither decoder reports
// absent keys on its own.
type document struct {
	General    *generalDoc    `yaml:"general" toml:"general"`
	Theme      *themeDoc      `yaml:"theme" toml:"theme"`
	Highlights *Palette       `yaml:"highlights" toml:"highlights"`
	Languages  *[]languageDoc `yaml:"languages" toml:"languages"`
}

type generalDoc struct {
	LineNumberPaddingRight *uint   `yaml:"line_number_padding_right" toml:"line_number_padding_right"`
	LineNumberPaddingLeft  *uint   `yaml:"line_number_padding_left" toml:"line_number_padding_left"`
	TabWidth               *uint   `yaml:"tab_width" toml:"tab_width"`
	UndoPeriod             *uint64 `yaml:"undo_period" toml:"undo_period"`
}

type themeDoc struct {
	EditorBg     *RGB `yaml:"editor_bg" toml:"editor_bg"`
	EditorFg     *RGB `yaml:"editor_fg" toml:"editor_fg"`
	StatusBg     *RGB `yaml:"status_bg" toml:"status_bg"`
	StatusFg     *RGB `yaml:"status_fg" toml:"status_fg"`
	LineNumberFg *RGB `yaml:"line_number_fg" toml:"line_number_fg"`
}

type languageDoc struct {
	Name        *string              `yaml:"name" toml:"name"`
	Icon        *string              `yaml:"icon" toml:"icon"`
	Extensions  *[]string            `yaml:"extensions" toml:"extensions"`
	Keywords    *[]string            `yaml:"keywords" toml:"keywords"`
	Definitions *map[string][]string `yaml:"definitions" toml:"definitions"`
}

// Parse decodes data in the given format into a Config. Every key of
// the configuration must be present; values are not checked beyond
// their type.
func Parse(data []byte, format Format) (*Config, error) {
	var doc document
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	if err := doc.complete(); err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return doc.config(), nil
}

// complete reports every missing section and key, not just the first.
func (d *document) complete() error {
	var err error
	if d.General == nil {
		err = multierr.Append(err, missingSection("general"))
	} else {
		g := d.General
		err = multierr.Combine(err,
			required(g.LineNumberPaddingRight == nil, "general.line_number_padding_right"),
			required(g.LineNumberPaddingLeft == nil, "general.line_number_padding_left"),
			required(g.TabWidth == nil, "general.tab_width"),
			required(g.UndoPeriod == nil, "general.undo_period"),
		)
	}
	if d.Theme == nil {
		err = multierr.Append(err, missingSection("theme"))
	} else {
		t := d.Theme
		err = multierr.Combine(err,
			required(t.EditorBg == nil, "theme.editor_bg"),
			required(t.EditorFg == nil, "theme.editor_fg"),
			required(t.StatusBg == nil, "theme.status_bg"),
			required(t.StatusFg == nil, "theme.status_fg"),
			required(t.LineNumberFg == nil, "theme.line_number_fg"),
		)
	}
	if d.Highlights == nil {
		err = multierr.Append(err, missingSection("highlights"))
	}
	if d.Languages == nil {
		err = multierr.Append(err, missingSection("languages"))
	} else {
		for i, l := range *d.Languages {
			key := func(name string) string { return fmt.Sprintf("languages[%d].%s", i, name) }
			err = multierr.Combine(err,
				required(l.Name == nil, key("name")),
				required(l.Icon == nil, key("icon")),
				required(l.Extensions == nil, key("extensions")),
				required(l.Keywords == nil, key("keywords")),
				required(l.Definitions == nil, key("definitions")),
			)
		}
	}
	return err
}

// config converts a complete document.
func (d *document) config() *Config {
	g, t := d.General, d.Theme
	langs := make([]Language, 0, len(*d.Languages))
	for _, l := range *d.Languages {
		langs = append(langs, Language{
			Name:        *l.Name,
			Icon:        *l.Icon,
			Extensions:  *l.Extensions,
			Keywords:    *l.Keywords,
			Definitions: *l.Definitions,
		})
	}
	return &Config{
		General: General{
			LineNumberPaddingRight: *g.LineNumberPaddingRight,
			LineNumberPaddingLeft:  *g.LineNumberPaddingLeft,
			TabWidth:               *g.TabWidth,
			UndoPeriod:             *g.UndoPeriod,
		},
		Theme: Theme{
			EditorBg:     *t.EditorBg,
			EditorFg:     *t.EditorFg,
			StatusBg:     *t.StatusBg,
			StatusFg:     *t.StatusFg,
			LineNumberFg: *t.LineNumberFg,
		},
		Highlights: *d.Highlights,
		Languages:  langs,
	}
}

func missingSection(name string) error {
	return fmt.Errorf("%w: missing section %q", ErrInvalidConfig, name)
}

func required(missing bool, key string) error {
	if !missing {
		return nil
	}
	return fmt.Errorf("%w: missing key %q", ErrInvalidConfig, key)
}

// Marshal encodes cfg in the given format.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// diagnostic renders a parse failure for display. TOML decode errors
// carry the offending line, which is more useful than the bare message.
func diagnostic(err error) string {
	var tomlErr *toml.DecodeError
	if errors.As(err, &tomlErr) {
		if s := tomlErr.String(); s != "" {
			return s
		}
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		err = decodeErr.Err
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown parse error"
}
