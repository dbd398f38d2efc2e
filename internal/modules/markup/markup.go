package markup

import (
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Placeholder is rendered whenever the input is empty or whitespace-only.
const Placeholder = "Your prompt will appear here..."

var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*(.*?)\*`)
	underlinePattern = regexp.MustCompile(`_(.*?)_`)
	strikePattern    = regexp.MustCompile(`~~(.*?)~~`)
	codePattern      = regexp.MustCompile("`(.*?)`")

	h3Pattern = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Pattern = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Pattern = regexp.MustCompile(`(?m)^# (.+)$`)

	orderedItemPattern = regexp.MustCompile(`(?m)^(\d+\. .+)$`)
	bulletItemPattern  = regexp.MustCompile(`(?m)^(• .+)$`)

	newlinePattern = regexp.MustCompile(`\r?\n`)

	brAfterBlockPattern  = regexp.MustCompile(`(</h1>|</h2>|</h3>|</div>)<br>`)
	brBeforeBlockPattern = regexp.MustCompile(`<br>(<h1|<h2|<h3|<div)`)
)

// sanitizer is the allow-list second pass. Only the fixed presentational tag
// set survives, and style attributes are restricted to the size/spacing
// declarations the transformer itself generates.
var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "em", "u", "del", "code", "h1", "h2", "h3", "div", "br")
	p.AllowStyles("font-size", "font-weight", "margin", "margin-left", "padding", "line-height").
		OnElements("h1", "h2", "h3", "div", "code")
	return p
}

// Render converts raw prompt text into sanitized presentational markup.
//
// The substitution order is load-bearing: escaping must run before any marker
// substitution (it is the XSS boundary together with the final sanitizer
// pass), inline emphasis runs before block wrappers, and sanitization runs
// last because the intermediate steps synthesize new markup. Substitutions
// are single-pass and non-recursive; nested same-kind emphasis is not
// guaranteed to nest correctly.
func Render(raw string) string {
	text := raw
	if isBlank(text) {
		text = Placeholder
	}

	text = html.EscapeString(text)

	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>$1</em>")
	text = underlinePattern.ReplaceAllString(text, "<u>$1</u>")
	text = strikePattern.ReplaceAllString(text, "<del>$1</del>")
	text = codePattern.ReplaceAllString(text, `<code style="font-size: 0.9em; padding: 2px 6px;">$1</code>`)

	text = h3Pattern.ReplaceAllString(text, `<h3 style="font-size: 1.25rem; font-weight: 600; margin: 0.5rem 0;">$1</h3>`)
	text = h2Pattern.ReplaceAllString(text, `<h2 style="font-size: 1.5rem; font-weight: 700; margin: 0.75rem 0;">$1</h2>`)
	text = h1Pattern.ReplaceAllString(text, `<h1 style="font-size: 1.875rem; font-weight: 800; margin: 1rem 0;">$1</h1>`)

	text = orderedItemPattern.ReplaceAllString(text, `<div style="margin-left: 20px;">$1</div>`)
	text = bulletItemPattern.ReplaceAllString(text, `<div style="margin-left: 20px;">$1</div>`)

	text = newlinePattern.ReplaceAllString(text, "<br>")

	text = brAfterBlockPattern.ReplaceAllString(text, "$1")
	text = brBeforeBlockPattern.ReplaceAllString(text, "$1")

	return sanitizer.Sanitize(text)
}

// Sanitize runs only the allow-list pass. Idempotent.
func Sanitize(markup string) string {
	return sanitizer.Sanitize(markup)
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
			return false
		}
	}
	return true
}
