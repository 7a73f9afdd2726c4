package render

import "strings"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the token stream.
type RenderOptions struct {
	// Theme carries the resolved theme tokens. Renderers fall back to their
	// built-in styling for any token the theme does not define.
	Theme *Theme
}

// Theme is the renderer-facing view of a selected theme.
type Theme struct {
	Name    string
	Variant string
	Tokens  map[string]string
}

// Token returns the theme token for key, or fallback when the theme does not
// define a non-empty value.
func (o RenderOptions) Token(key, fallback string) string {
	if o.Theme == nil || len(o.Theme.Tokens) == 0 {
		return fallback
	}
	if value := strings.TrimSpace(o.Theme.Tokens[key]); value != "" {
		return value
	}
	return fallback
}

// CategoryToken returns the theme token name for a category with an optional
// suffix, e.g. "code.keyword" or "code.keyword.color".
func CategoryToken(category Category, suffix string) string {
	key := "code." + string(category)
	if suffix != "" {
		key += "." + suffix
	}
	return key
}
