package config_test

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lc/ox/internal/config"
	"github.com/lc/ox/internal/mocks"
)

type ConfigTestSuite struct {
	suite.Suite
	fs       mockFS
	provider config.Provider
}

type mockFS struct {
	files map[string]string
}

func (m mockFS) ReadFile(path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

const pythonConfig = `
general:
  line_number_padding_right: 3
  line_number_padding_left: 0
  tab_width: 2
  undo_period: 10
theme:
  editor_bg: [0, 0, 0]
  editor_fg: [250, 250, 250]
  status_bg: [10, 20, 30]
  status_fg: [40, 50, 60]
  line_number_fg: [70, 80, 90]
highlights:
  strings: [1, 2, 3]
  keywords: [4, 5, 6]
languages:
  - name: Python
    icon: "py "
    extensions: [py]
    keywords: [def, return, lambda]
    definitions:
      strings: ['(".*?")']
`

const goTOMLConfig = `
[general]
line_number_padding_right = 2
line_number_padding_left = 1
tab_width = 8
undo_period = 5

[theme]
editor_bg = [41, 41, 61]
editor_fg = [255, 255, 255]
status_bg = [59, 59, 84]
status_fg = [35, 240, 144]
line_number_fg = [65, 65, 98]

[highlights]
comments = [113, 113, 169]

[[languages]]
name = "Go"
icon = "go "
extensions = ["go"]
keywords = ["func", "package"]

[languages.definitions]
comments = ['(?m)(//.*)$']
`

func (s *ConfigTestSuite) SetupTest() {
	s.fs = mockFS{
		files: make(map[string]string),
	}
	s.provider = config.NewWithPath(s.fs, "test/config.yaml")
}

func (s *ConfigTestSuite) TestLoadDefaultWhenNoFile() {
	// When loading configuration with no file present
	cfg, status := s.provider.Load()

	// Then the built-in default should be returned
	s.Require().NotNil(cfg)
	s.Equal(config.StatusFileNotFound, status.Kind)
	s.Equal("test/config.yaml", status.Path)
	s.Empty(status.Diagnostic)
	s.ErrorIs(status.Err, config.ErrNoConfig)
	s.ErrorIs(status.Err, fs.ErrNotExist)
	s.Equal(config.Default(), cfg)

	s.Equal(config.General{
		LineNumberPaddingRight: 2,
		LineNumberPaddingLeft:  1,
		TabWidth:               4,
		UndoPeriod:             5,
	}, cfg.General)
	s.Equal(config.Theme{
		EditorBg:     config.RGB{41, 41, 61},
		EditorFg:     config.RGB{255, 255, 255},
		StatusBg:     config.RGB{59, 59, 84},
		StatusFg:     config.RGB{35, 240, 144},
		LineNumberFg: config.RGB{65, 65, 98},
	}, cfg.Theme)
	s.Len(cfg.Highlights, 10)
	s.Equal(config.RGB{223, 52, 249}, cfg.Highlights["macros"])
	s.Require().Len(cfg.Languages, 1)

	rust := cfg.Languages[0]
	s.Equal("Rust", rust.Name)
	s.Equal("\ue7a8 ", rust.Icon)
	s.Equal([]string{"rs"}, rust.Extensions)
	s.Len(rust.Keywords, 49)
	s.Contains(rust.Keywords, "'static")
	s.Len(rust.Definitions, 9)
	for _, category := range []string{
		"comments", "strings", "characters", "digits", "booleans",
		"functions", "structs", "macros", "attributes",
	} {
		s.NotEmpty(rust.Definitions[category], category)
	}
	s.Equal([]string{`(\d+.\d+|\d+)`}, rust.Definitions["digits"])
}

func (s *ConfigTestSuite) TestLoadValidConfig() {
	// Given a valid config file
	s.fs.files["test/config.yaml"] = pythonConfig

	// When loading configuration
	cfg, status := s.provider.Load()

	// Then custom values should be loaded
	s.Require().True(status.OK(), status.String())
	s.Empty(status.Notice())
	s.Equal(uint(2), cfg.General.TabWidth)
	s.Equal(10*time.Second, cfg.General.UndoInterval())
	s.Equal(config.RGB{10, 20, 30}, cfg.Theme.StatusBg)
	s.Len(cfg.Highlights, 2)
	s.Require().Len(cfg.Languages, 1)
	s.Equal("Python", cfg.Languages[0].Name)
	s.Equal([]string{`(".*?")`}, cfg.Languages[0].Definitions["strings"])
}

func (s *ConfigTestSuite) TestLoadTOML() {
	s.fs.files["test/config.toml"] = goTOMLConfig
	provider := config.NewWithPath(s.fs, "test/config.toml")

	cfg, status := provider.Load()

	s.Require().Equal(config.StatusSuccess, status.Kind, status.Diagnostic)
	s.Equal(uint(8), cfg.General.TabWidth)
	s.Equal(config.RGB{35, 240, 144}, cfg.Theme.StatusFg)
	s.Require().Len(cfg.Languages, 1)
	lang, ok := cfg.LanguageFor("go")
	s.Require().True(ok)
	s.Equal("Go", lang.Name)
	s.Equal([]string{"func", "package"}, lang.Keywords)
	s.Equal([]string{`(?m)(//.*)$`}, lang.Definitions["comments"])
}

func (s *ConfigTestSuite) TestLoadParseErrors() {
	testCases := []struct {
		name       string
		path       string
		content    string
		diagnostic string
	}{
		{
			name:    "malformed yaml",
			path:    "test/config.yaml",
			content: "general: [unclosed\n",
		},
		{
			name:    "wrong value type",
			path:    "test/config.yaml",
			content: "general:\n  tab_width: wide\n",
		},
		{
			name:       "missing sections",
			path:       "test/config.yaml",
			content:    "general:\n  tab_width: 4\n",
			diagnostic: `missing section "theme"`,
		},
		{
			name:       "empty file",
			path:       "test/config.yaml",
			content:    "",
			diagnostic: `missing section "general"`,
		},
		{
			name:    "color out of range",
			path:    "test/config.yaml",
			content: strings.Replace(pythonConfig, "[0, 0, 0]", "[300, 0, 0]", 1),
		},
		{
			name:    "malformed toml",
			path:    "test/config.toml",
			content: "[general\ntab_width = 4\n",
		},
		{
			name:       "empty theme",
			path:       "test/config.yaml",
			content:    replaceSection(pythonConfig, "theme:", "highlights:", "theme: {}\n"),
			diagnostic: `missing key "theme.editor_bg"`,
		},
		{
			name:       "general without undo_period",
			path:       "test/config.yaml",
			content:    strings.Replace(pythonConfig, "  undo_period: 10\n", "", 1),
			diagnostic: `missing key "general.undo_period"`,
		},
		{
			name:       "language without extensions",
			path:       "test/config.yaml",
			content:    strings.Replace(pythonConfig, "    extensions: [py]\n", "", 1),
			diagnostic: `missing key "languages[0].extensions"`,
		},
		{
			name:       "language with only a name",
			path:       "test/config.yaml",
			content:    replaceSection(pythonConfig, "languages:", "", "languages:\n  - name: Python\n"),
			diagnostic: `missing key "languages[0].definitions"`,
		},
		{
			name:       "toml theme missing a color",
			path:       "test/config.toml",
			content:    strings.Replace(goTOMLConfig, "status_fg = [35, 240, 144]\n", "", 1),
			diagnostic: `missing key "theme.status_fg"`,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.fs.files[tc.path] = tc.content
			provider := config.NewWithPath(s.fs, tc.path)

			cfg, status := provider.Load()

			s.Equal(config.StatusParseError, status.Kind)
			s.NotEmpty(status.Diagnostic)
			s.Error(status.Err)
			s.Contains(status.Notice(), "using default configuration")
			s.Equal(config.Default(), cfg)
			if tc.diagnostic != "" {
				s.Contains(status.Diagnostic, tc.diagnostic)
			}
		})
	}
}

func (s *ConfigTestSuite) TestLoadAcceptsUnusualValues() {
	content := strings.Replace(pythonConfig, "tab_width: 2", "tab_width: 0", 1)
	content = strings.Replace(content, "name: Python", `name: ""`, 1)
	s.fs.files["test/config.yaml"] = content

	cfg, status := s.provider.Load()

	s.Require().Equal(config.StatusSuccess, status.Kind, status.Diagnostic)
	s.Equal(uint(0), cfg.General.TabWidth)
	s.Equal("", cfg.Languages[0].Name)
	s.Error(cfg.Validate())
}

func (s *ConfigTestSuite) TestLoadUnreadableFile() {
	fsys := new(mocks.MockFS)
	fsys.On("ReadFile", "locked.yaml").Return(nil, os.ErrPermission)

	cfg, status := config.NewWithPath(fsys, "locked.yaml").Load()

	s.Equal(config.StatusFileNotFound, status.Kind)
	s.ErrorIs(status.Err, os.ErrPermission)
	s.Equal(config.Default(), cfg)
	fsys.AssertExpectations(s.T())
}

func (s *ConfigTestSuite) TestValidation() {
	testCases := []struct {
		name        string
		mutate      func(*config.Config)
		expectedErr string
	}{
		{
			name:        "default is valid",
			mutate:      func(*config.Config) {},
			expectedErr: "",
		},
		{
			name:        "tab width zero",
			mutate:      func(c *config.Config) { c.General.TabWidth = 0 },
			expectedErr: "tab width must be at least 1",
		},
		{
			name:        "tab width one",
			mutate:      func(c *config.Config) { c.General.TabWidth = 1 },
			expectedErr: "",
		},
		{
			name:        "language without name",
			mutate:      func(c *config.Config) { c.Languages[0].Name = "  " },
			expectedErr: "language 0: name cannot be empty",
		},
		{
			name:        "no languages",
			mutate:      func(c *config.Config) { c.Languages = []config.Language{} },
			expectedErr: "",
		},
		{
			name: "multiple validation errors",
			mutate: func(c *config.Config) {
				c.General.TabWidth = 0
				c.Languages[0].Name = ""
			},
			expectedErr: "name cannot be empty",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := config.Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expectedErr == "" {
				s.NoError(err)
			} else {
				s.Error(err)
				s.Contains(err.Error(), tc.expectedErr)
			}
		})
	}
}

func (s *ConfigTestSuite) TestDefaultIsFresh() {
	first := config.Default()
	first.Highlights["comments"] = config.RGB{0, 0, 0}
	first.Languages[0].Keywords[0] = "changed"
	first.Languages[0].Definitions["strings"][0] = "changed"

	second := config.Default()
	s.Equal(config.RGB{113, 113, 169}, second.Highlights["comments"])
	s.Equal("as", second.Languages[0].Keywords[0])
	s.Equal(`(".*?")`, second.Languages[0].Definitions["strings"][0])
}

func (s *ConfigTestSuite) TestLanguageFor() {
	cfg := config.Default()
	cfg.Languages = append(cfg.Languages,
		config.Language{Name: "Other", Extensions: []string{"rs", "rx"}},
	)

	lang, ok := cfg.LanguageFor("rs")
	s.Require().True(ok)
	s.Equal("Rust", lang.Name)

	lang, ok = cfg.LanguageFor("rx")
	s.Require().True(ok)
	s.Equal("Other", lang.Name)

	_, ok = cfg.LanguageFor("RS")
	s.False(ok)
	_, ok = cfg.LanguageFor(".rs")
	s.False(ok)
}

func (s *ConfigTestSuite) TestStatus() {
	s.Equal("success", config.Status{Kind: config.StatusSuccess}.String())
	s.Equal("file not found", config.Status{Kind: config.StatusFileNotFound}.String())

	parse := config.Status{
		Kind:       config.StatusParseError,
		Path:       "/home/u/.config/ox/ox.yaml",
		Diagnostic: "yaml: line 2: bad\nmore detail",
		Err:        errors.New("bad"),
	}
	s.Equal("parse error: yaml: line 2: bad\nmore detail", parse.String())
	s.Equal("failed to parse /home/u/.config/ox/ox.yaml, using default configuration: yaml: line 2: bad", parse.Notice())
	s.False(parse.OK())
}

// replaceSection swaps the text from the line starting with from up to
// the line starting with to (or the end) for repl.
func replaceSection(content, from, to, repl string) string {
	start := strings.Index(content, "\n"+from) + 1
	end := len(content)
	if to != "" {
		end = strings.Index(content, "\n"+to) + 1
	}
	return content[:start] + repl + content[end:]
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
