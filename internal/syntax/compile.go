// Package syntax turns the declarative language rules of a config.Config
// into compiled regular expressions, grouped by highlight category.
package syntax

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/lc/ox/internal/config"
)

// KeywordsCategory is the category that holds a language's keyword list.
const KeywordsCategory = "keywords"

// ErrUnsupportedMode is reported for patterns that enable dot-all and
// multi-line mode together. Such patterns are never compiled.
var ErrUnsupportedMode = errors.New("unsupported pattern mode (?ms)")

// unsupportedPrefixes are the flag groups that mark a pattern as
// dot-all plus multi-line.
var unsupportedPrefixes = []string{"(?ms)", "(?sm)"}

// RuleSet maps a highlight category to its compiled patterns, in the
// order the patterns were declared.
type RuleSet map[string][]*regexp.Regexp

// Categories returns the category names in sorted order.
func (r RuleSet) Categories() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result is the outcome of compiling one pattern string.
type Result struct {
	Pattern string
	Regexp  *regexp.Regexp
	Err     error
}

// OK reports whether the pattern compiled.
func (r Result) OK() bool { return r.Err == nil }

// compilePattern compiles a single user pattern. Unsupported mode
// prefixes are rejected before the regexp engine sees them.
func compilePattern(pattern string) Result {
	for _, prefix := range unsupportedPrefixes {
		if strings.HasPrefix(pattern, prefix) {
			return Result{Pattern: pattern, Err: ErrUnsupportedMode}
		}
	}
	re, err := regexp.Compile(pattern)
	return Result{Pattern: pattern, Regexp: re, Err: err}
}

func compilePatterns(patterns []string) []Result {
	results := make([]Result, 0, len(patterns))
	for _, p := range patterns {
		results = append(results, compilePattern(p))
	}
	return results
}

// successes keeps the compiled patterns and drops every failure. This is
// where malformed and unsupported patterns silently disappear from the
// highlighter's view; Validate reports them instead.
func successes(results []Result) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, r.Regexp)
		}
	}
	return out
}

// keywordPattern wraps a keyword in word boundaries. The keyword is
// quoted, so the result always compiles.
func keywordPattern(keyword string) string {
	return `\b(` + regexp.QuoteMeta(keyword) + `)\b`
}

func compileKeywords(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, regexp.MustCompile(keywordPattern(kw)))
	}
	return out
}

// CompileRules compiles the rules of the first language in cfg that
// claims ext. Each definition category maps to its surviving patterns
// (possibly none) and the keyword list becomes the "keywords" category.
// An extension no language claims yields an empty RuleSet.
//
// The result is freshly allocated and cfg is not modified, so concurrent
// calls on a shared, read-only Config are safe.
func CompileRules(cfg *config.Config, ext string) RuleSet {
	rules := make(RuleSet)
	lang, ok := cfg.LanguageFor(ext)
	if !ok {
		return rules
	}
	for category, patterns := range lang.Definitions {
		rules[category] = successes(compilePatterns(patterns))
	}
	rules[KeywordsCategory] = compileKeywords(lang.Keywords)
	return rules
}
