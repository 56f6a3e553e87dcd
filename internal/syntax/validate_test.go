package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/lc/ox/internal/config"
)

func TestValidateDefault(t *testing.T) {
	report := Validate(config.Default())

	assert.Equal(t, 1, report.Languages)
	assert.Equal(t, int64(9), report.Patterns)
	assert.NoError(t, report.Err)
	assert.Empty(t, report.Warnings)
}

func TestValidateReportsDroppedPatterns(t *testing.T) {
	cfg := config.Default()
	cfg.Languages[0].Definitions["comments"] = []string{`(?ms)/\*.*?\*/`, `(?m)(//.*)$`}
	cfg.Languages = append(cfg.Languages, config.Language{
		Name:        "Broken",
		Extensions:  []string{"brk"},
		Definitions: map[string][]string{"strings": {`("`, `(".*?")`}},
	})

	report := Validate(cfg)

	assert.Equal(t, 2, report.Languages)
	assert.Equal(t, int64(12), report.Patterns)

	errs := multierr.Errors(report.Err)
	require.Len(t, errs, 2)

	var first, second *PatternError
	require.True(t, errors.As(errs[0], &first))
	require.True(t, errors.As(errs[1], &second))
	assert.Equal(t, "Rust", first.Language)
	assert.Equal(t, "comments", first.Category)
	assert.ErrorIs(t, first, ErrUnsupportedMode)
	assert.Equal(t, "Broken", second.Language)
	assert.Equal(t, `("`, second.Pattern)
	assert.Contains(t, second.Error(), `Broken: strings: pattern "(\""`)
}

func TestValidateWarnings(t *testing.T) {
	cfg := config.Default()
	cfg.Languages = append(cfg.Languages, config.Language{
		Name:        "Rusty",
		Extensions:  []string{"rs", "rsx"},
		Definitions: map[string][]string{"lifetimes": {`'[a-z]+`}},
	})

	report := Validate(cfg)

	assert.NoError(t, report.Err)
	assert.Equal(t, []string{
		`extension "rs" is claimed by Rust and Rusty; Rust wins`,
		`Rusty: category "lifetimes" has no highlight color`,
	}, report.Warnings)
}

func TestValidateWarnsAboutUnusableSettings(t *testing.T) {
	cfg := config.Default()
	cfg.General.TabWidth = 0
	cfg.Languages[0].Name = ""

	report := Validate(cfg)

	assert.NoError(t, report.Err)
	assert.Equal(t, []string{
		"tab width must be at least 1",
		"language 0: name cannot be empty",
	}, report.Warnings)
}
