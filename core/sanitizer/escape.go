package sanitizer

import (
	"strings"
	"unicode"

	"github.com/a-h/templ"
)

// extraEscaper covers characters html escaping leaves alone but the forum
// front end has always escaped in error text.
var extraEscaper = strings.NewReplacer(
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// EscapeHTML escapes & < > " ' plus / \ and backtick.
func EscapeHTML(s string) string {
	if s == "" {
		return ""
	}
	return extraEscaper.Replace(templ.EscapeString(s))
}

// SingleLine collapses control characters, including line breaks, into spaces
// so request-derived values cannot forge extra log lines.
func SingleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}
