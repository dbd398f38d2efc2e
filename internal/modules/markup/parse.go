package markup

import (
	"html"
	"strings"
)

// LineKind classifies a rendered line of markup.
type LineKind int

const (
	LineText LineKind = iota
	LineHeading
	LineListItem
)

// Span is a run of text with uniform inline styling.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Code      bool
}

// Line is one visual line of the segment sequence: a plain run (possibly
// empty, for a blank line), a heading, or an indented list item.
type Line struct {
	Kind  LineKind
	Level int // heading level 1-3, zero otherwise
	Spans []Span
}

// ParseLines decomposes sanitized markup into its segment sequence. The tag
// set is closed after sanitization, so unknown tags are simply skipped.
func ParseLines(sanitized string) []Line {
	var lines []Line
	var cur []Span
	var state spanFlags
	var buf strings.Builder

	flushSpan := func() {
		if buf.Len() == 0 {
			return
		}
		cur = append(cur, state.span(html.UnescapeString(buf.String())))
		buf.Reset()
	}
	flushLine := func(force bool) {
		if len(cur) == 0 && !force {
			return
		}
		lines = append(lines, Line{Kind: LineText, Spans: cur})
		cur = nil
	}

	s := sanitized
	i := 0
	for i < len(s) {
		if s[i] != '<' {
			buf.WriteByte(s[i])
			i++
			continue
		}
		gt := strings.IndexByte(s[i:], '>')
		if gt < 0 {
			buf.WriteByte(s[i])
			i++
			continue
		}
		tag := s[i : i+gt+1]
		name, closing := tagName(tag)
		i += gt + 1

		switch name {
		case "br":
			flushSpan()
			flushLine(true)
		case "h1", "h2", "h3":
			if closing {
				continue
			}
			flushSpan()
			flushLine(false)
			inner, rest := untilClosing(s[i:], name)
			lines = append(lines, Line{
				Kind:  LineHeading,
				Level: int(name[1] - '0'),
				Spans: parseSpans(inner),
			})
			i += rest
		case "div":
			if closing {
				continue
			}
			flushSpan()
			flushLine(false)
			inner, rest := untilClosing(s[i:], name)
			lines = append(lines, Line{Kind: LineListItem, Spans: parseSpans(inner)})
			i += rest
		case "strong", "em", "u", "del", "code":
			flushSpan()
			state.toggle(name, !closing)
		}
	}
	flushSpan()
	flushLine(false)
	return lines
}

type spanFlags struct {
	bold, italic, underline, strike, code bool
}

func (f *spanFlags) toggle(name string, on bool) {
	switch name {
	case "strong":
		f.bold = on
	case "em":
		f.italic = on
	case "u":
		f.underline = on
	case "del":
		f.strike = on
	case "code":
		f.code = on
	}
}

func (f spanFlags) span(text string) Span {
	return Span{
		Text:      text,
		Bold:      f.bold,
		Italic:    f.italic,
		Underline: f.underline,
		Strike:    f.strike,
		Code:      f.code,
	}
}

func parseSpans(inner string) []Span {
	var spans []Span
	var state spanFlags
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		spans = append(spans, state.span(html.UnescapeString(buf.String())))
		buf.Reset()
	}

	i := 0
	for i < len(inner) {
		if inner[i] != '<' {
			buf.WriteByte(inner[i])
			i++
			continue
		}
		gt := strings.IndexByte(inner[i:], '>')
		if gt < 0 {
			buf.WriteByte(inner[i])
			i++
			continue
		}
		name, closing := tagName(inner[i : i+gt+1])
		flush()
		state.toggle(name, !closing)
		i += gt + 1
	}
	flush()
	return spans
}

// tagName extracts the lowercase element name from a raw tag and reports
// whether it is a closing tag.
func tagName(tag string) (string, bool) {
	t := strings.Trim(tag, "<>")
	closing := strings.HasPrefix(t, "/")
	t = strings.TrimPrefix(t, "/")
	if sp := strings.IndexAny(t, " \t/"); sp >= 0 {
		t = t[:sp]
	}
	return strings.ToLower(t), closing
}

// untilClosing returns the content before the matching closing tag and the
// offset just past it. Block wrappers never nest in sanitized output.
func untilClosing(s, name string) (inner string, advance int) {
	closeTag := "</" + name + ">"
	idx := strings.Index(s, closeTag)
	if idx < 0 {
		return s, len(s)
	}
	return s[:idx], idx + len(closeTag)
}
