package config

// KeywordPresets maps friendly niche names to curated keyword sets.
var KeywordPresets = map[string][]string{
	"finance": {
		"budgeting",
		"budget tracker",
		"wealth building",
		"personal finance",
		"investment tips",
		"money saving",
		"financial freedom",
		"passive income",
		"side hustle",
		"debt free",
	},
	"fitness": {
		"fitness tips",
		"workout routine",
		"healthy recipes",
		"weight loss",
		"home workout",
	},
}

// ResolveKeywords turns the KEYWORDS env value into a keyword list. A
// preset name expands to its set; anything else is treated as a
// comma-separated list of keywords. Empty input falls back to the finance
// preset.
func ResolveKeywords(input string) []string {
	if input == "" {
		return KeywordPresets["finance"]
	}
	if preset, ok := KeywordPresets[input]; ok {
		return preset
	}
	return splitList(input)
}
