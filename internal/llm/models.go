package llm

// modelAliases lets configuration name a model family instead of a dated
// vendor identifier. Unknown names are passed through unchanged.
var modelAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.5-pro",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}
