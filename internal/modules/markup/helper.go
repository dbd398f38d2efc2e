package markup

import (
	"regexp"
	"strconv"
	"strings"
)

var orderedLinePattern = regexp.MustCompile(`^\d+\. `)

// Selection is a cursor range over the raw text, in bytes. Start == End
// means a collapsed cursor.
type Selection struct {
	Start int
	End   int
}

func (s Selection) clamp(n int) Selection {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.Start > n {
		s.Start = n
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	if s.End > n {
		s.End = n
	}
	return s
}

// WrapSelection surrounds the selected text with the given marker, or inserts
// a doubled marker at a collapsed cursor so the user can type inside it.
// Returns the new text and the selection shifted past the opening marker.
func WrapSelection(text string, sel Selection, marker string) (string, Selection) {
	sel = sel.clamp(len(text))
	selected := text[sel.Start:sel.End]

	var out string
	if selected != "" {
		out = text[:sel.Start] + marker + selected + marker + text[sel.End:]
	} else {
		out = text[:sel.Start] + marker + marker + text[sel.Start:]
	}
	return out, Selection{Start: sel.Start + len(marker), End: sel.End + len(marker)}
}

// InsertListPrefix prefixes every non-blank selected line with the list
// marker, or inserts the marker at a collapsed cursor, adding a leading
// newline when the cursor is not at a line start.
func InsertListPrefix(text string, sel Selection, prefix string) (string, Selection) {
	sel = sel.clamp(len(text))
	selected := text[sel.Start:sel.End]

	if selected != "" {
		lines := strings.Split(selected, "\n")
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				lines[i] = prefix + strings.TrimSpace(line)
			}
		}
		items := strings.Join(lines, "\n")
		out := text[:sel.Start] + items + text[sel.End:]
		return out, Selection{Start: sel.Start, End: sel.Start + len(items)}
	}

	before := text[:sel.Start]
	needsNewline := len(before) > 0 && !strings.HasSuffix(before, "\n")
	insert := prefix
	if needsNewline {
		insert = "\n" + prefix
	}
	out := before + insert + text[sel.Start:]
	pos := sel.Start + len(insert)
	return out, Selection{Start: pos, End: pos}
}

// NextOrderedMarker proposes the marker for a new ordered-list item at the
// cursor. It counts every line before the cursor that already looks like an
// ordered item, anywhere in the text. A deliberate heuristic, not proper
// list renumbering.
func NextOrderedMarker(text string, cursor int) string {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	count := 0
	for _, line := range strings.Split(text[:cursor], "\n") {
		if orderedLinePattern.MatchString(strings.TrimSpace(line)) {
			count++
		}
	}
	return strconv.Itoa(count+1) + ". "
}

// InsertOrderedItem combines NextOrderedMarker with InsertListPrefix, the
// way the ordered-list toolbar action behaves.
func InsertOrderedItem(text string, sel Selection) (string, Selection) {
	return InsertListPrefix(text, sel, NextOrderedMarker(text, sel.Start))
}
