package repair

import (
	"regexp"
	"strings"
)

var (
	// a comma, optional whitespace, then the closer that is kept
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
	// an opener or separator, optional whitespace, a bare key, optional
	// whitespace and the colon
	unquotedKeyRegex = regexp.MustCompile(`([{,]\s*)([A-Za-z0-9_@$-]+)\s*:`)
)

// Pass is one textual repair. Apply must accept any string.
type Pass struct {
	Name  string
	Apply func(string) string
}

// Passes returns the repairs Sanitize applies, in order.
func Passes() []Pass {
	return []Pass{
		{Name: "trailing-comma", Apply: RemoveTrailingCommas},
		{Name: "unquoted-key", Apply: QuoteKeys},
		{Name: "unbalanced-quote", Apply: CloseQuotes},
	}
}

// Sanitize applies every pass once, in order, and returns the final text.
// The result is not guaranteed to be valid JSON.
func Sanitize(text string) string {
	out, _ := SanitizeReport(text)
	return out
}

// SanitizeReport is Sanitize that also returns the names of the passes
// which changed the text.
func SanitizeReport(text string) (string, []string) {
	var applied []string

	for _, p := range Passes() {
		out := p.Apply(text)
		if out != text {
			applied = append(applied, p.Name)
		}
		text = out
	}
	return text, applied
}

// RemoveTrailingCommas drops every comma that is followed, after optional
// whitespace, by '}' or ']'. The whitespace goes with it.
func RemoveTrailingCommas(text string) string {
	return trailingCommaRegex.ReplaceAllString(text, "$1")
}

// QuoteKeys wraps bare keys which follow '{' or ',' in double quotes.
// Whitespace between the key and its colon is dropped. The match is purely
// positional and also rewrites key-shaped text inside string literals.
func QuoteKeys(text string) string {
	return unquotedKeyRegex.ReplaceAllString(text, `$1"$2":`)
}

// CloseQuotes appends one '"' when text holds an odd number of them.
func CloseQuotes(text string) string {
	if strings.Count(text, `"`)%2 == 1 {
		return text + `"`
	}
	return text
}
