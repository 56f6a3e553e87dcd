package config

// rustKeywords is the keyword list of the built-in Rust language.
var rustKeywords = []string{
	"as", "break", "const", "continue", "crate", "else", "enum", "extern", "fn", "for",
	"if", "impl", "in", "let", "loop", "match", "mod", "move", "mut", "pub", "ref",
	"return", "self", "static", "struct", "super", "trait", "type", "unsafe", "use",
	"where", "while", "async", "await", "dyn", "abstract", "become", "box", "do", "final",
	"macro", "override", "priv", "typeof", "unsized", "virtual", "yield", "try", "'static",
}

// Default returns the built-in configuration used when no usable config
// file exists. Every call builds a new value, so callers may modify the
// result freely.
func Default() *Config {
	return &Config{
		General: General{
			LineNumberPaddingRight: 2,
			LineNumberPaddingLeft:  1,
			TabWidth:               4,
			UndoPeriod:             5,
		},
		Theme: Theme{
			EditorBg:     RGB{41, 41, 61},
			EditorFg:     RGB{255, 255, 255},
			StatusBg:     RGB{59, 59, 84},
			StatusFg:     RGB{35, 240, 144},
			LineNumberFg: RGB{65, 65, 98},
		},
		Highlights: Palette{
			"comments":   {113, 113, 169},
			"keywords":   {134, 76, 232},
			"strings":    {39, 222, 145},
			"characters": {40, 198, 232},
			"digits":     {40, 198, 232},
			"booleans":   {86, 217, 178},
			"functions":  {47, 141, 252},
			"structs":    {47, 141, 252},
			"macros":     {223, 52, 249},
			"attributes": {40, 198, 232},
		},
		Languages: []Language{
			{
				Name:       "Rust",
				Icon:       "\ue7a8 ",
				Extensions: []string{"rs"},
				Keywords:   append([]string(nil), rustKeywords...),
				Definitions: map[string][]string{
					"comments":   {`(?m)(//.*)$`},
					"strings":    {`(".*?")`},
					"characters": {`('.')`},
					"digits":     {`(\d+.\d+|\d+)`},
					"booleans":   {`\b(true|false)\b`},
					"functions":  {`\b\s+([a-z_]*)\b\(`},
					"structs":    {`\b([A-Z][A-Za-z_]*)\b\s*\{`},
					"macros":     {`\b([a-z_][a-zA-Z_]*!)`},
					"attributes": {`(?m)^\s*(#(?:!|)\[.*?\])`},
				},
			},
		},
	}
}
