package syntax

import (
	"fmt"
	"sort"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/lc/ox/internal/config"
)

// PatternError describes one pattern that CompileRules would drop.
type PatternError struct {
	Language string
	Category string
	Pattern  string
	Err      error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s: %s: pattern %q: %v", e.Language, e.Category, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Report is the result of Validate.
type Report struct {
	// Languages is the number of languages checked.
	Languages int
	// Patterns counts every definition pattern, compiled or not.
	Patterns int64
	// Err aggregates one *PatternError per dropped pattern. Use
	// multierr.Errors to list them.
	Err error
	// Warnings lists problems that do not drop patterns: settings
	// rejected by config.Validate, extensions claimed twice and categories
	// without a palette color.
	Warnings []string
}

// Validate compiles every definition pattern of every language and
// reports the ones CompileRules silently drops. Languages are checked
// concurrently; cfg is only read.
func Validate(cfg *config.Config) Report {
	var (
		g        errgroup.Group
		patterns atomic.Int64
		errs     = make([]error, len(cfg.Languages))
	)
	for i := range cfg.Languages {
		lang := &cfg.Languages[i]
		g.Go(func() error {
			var err error
			for _, category := range sortedCategories(lang.Definitions) {
				results := compilePatterns(lang.Definitions[category])
				patterns.Add(int64(len(results)))
				for _, r := range results {
					if !r.OK() {
						err = multierr.Append(err, &PatternError{
							Language: lang.Name,
							Category: category,
							Pattern:  r.Pattern,
							Err:      r.Err,
						})
					}
				}
			}
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	return Report{
		Languages: len(cfg.Languages),
		Patterns:  patterns.Load(),
		Err:       multierr.Combine(errs...),
		Warnings:  warnings(cfg),
	}
}

func warnings(cfg *config.Config) []string {
	var out []string
	for _, err := range multierr.Errors(cfg.Validate()) {
		out = append(out, err.Error())
	}
	owner := make(map[string]string)
	for _, lang := range cfg.Languages {
		for _, ext := range lang.Extensions {
			if first, ok := owner[ext]; ok {
				out = append(out, fmt.Sprintf("extension %q is claimed by %s and %s; %s wins", ext, first, lang.Name, first))
				continue
			}
			owner[ext] = lang.Name
		}
		for _, category := range sortedCategories(lang.Definitions) {
			if _, ok := cfg.Highlights.Lookup(category); !ok {
				out = append(out, fmt.Sprintf("%s: category %q has no highlight color", lang.Name, category))
			}
		}
		if len(lang.Keywords) > 0 {
			if _, ok := cfg.Highlights.Lookup(KeywordsCategory); !ok {
				out = append(out, fmt.Sprintf("%s: category %q has no highlight color", lang.Name, KeywordsCategory))
			}
		}
	}
	return out
}

func sortedCategories(defs map[string][]string) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
