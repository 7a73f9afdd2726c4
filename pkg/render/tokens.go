package render

import "strings"

// Category classifies a token for styling.
type Category string

const (
	CategoryKeyword    Category = "keyword"
	CategoryType       Category = "type"
	CategoryStandard   Category = "standard"
	CategoryWhitespace Category = "whitespace"
)

// Categories lists every token category in a stable order.
func Categories() []Category {
	return []Category{CategoryKeyword, CategoryType, CategoryStandard, CategoryWhitespace}
}

// Token is a single piece of rendered text with its category.
type Token struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Tokens is an ordered token stream.
type Tokens []Token

// String concatenates the token text.
func (t Tokens) String() string {
	var b strings.Builder
	for _, token := range t {
		b.WriteString(token.Text)
	}
	return b.String()
}

// Compact merges adjacent tokens that share a category.
func (t Tokens) Compact() Tokens {
	if len(t) == 0 {
		return nil
	}
	out := make(Tokens, 0, len(t))
	for _, token := range t {
		if token.Text == "" {
			continue
		}
		if last := len(out) - 1; last >= 0 && out[last].Category == token.Category {
			out[last].Text += token.Text
			continue
		}
		out = append(out, token)
	}
	return out
}
