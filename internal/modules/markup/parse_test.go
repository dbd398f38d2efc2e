package markup

import (
	"reflect"
	"testing"
)

func TestParseLinesScenario(t *testing.T) {
	lines := ParseLines(Render("# Hello\n**bold** and *italic*\n• item one\n• item two"))

	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %+v", len(lines), lines)
	}
	if lines[0].Kind != LineHeading || lines[0].Level != 1 {
		t.Errorf("line 0 = %+v, want h1", lines[0])
	}
	if got := lines[0].Spans; len(got) != 1 || got[0].Text != "Hello" {
		t.Errorf("h1 spans = %+v", got)
	}

	want := []Span{
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "italic", Italic: true},
	}
	if lines[1].Kind != LineText || !reflect.DeepEqual(lines[1].Spans, want) {
		t.Errorf("line 1 = %+v, want %+v", lines[1], want)
	}

	for i, text := range map[int]string{2: "• item one", 3: "• item two"} {
		line := lines[i]
		if line.Kind != LineListItem {
			t.Errorf("line %d kind = %v, want list item", i, line.Kind)
		}
		if len(line.Spans) != 1 || line.Spans[0].Text != text {
			t.Errorf("line %d spans = %+v, want %q", i, line.Spans, text)
		}
	}
}

func TestParseLinesBlankLine(t *testing.T) {
	lines := ParseLines(Render("a\n\nb"))
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %+v", len(lines), lines)
	}
	if len(lines[1].Spans) != 0 {
		t.Errorf("middle line not blank: %+v", lines[1])
	}
}

func TestParseLinesInlineFlags(t *testing.T) {
	lines := ParseLines(Render("_u_ ~~s~~ `c`"))
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %+v", len(lines), lines)
	}
	want := []Span{
		{Text: "u", Underline: true},
		{Text: " "},
		{Text: "s", Strike: true},
		{Text: " "},
		{Text: "c", Code: true},
	}
	if !reflect.DeepEqual(lines[0].Spans, want) {
		t.Errorf("spans = %+v, want %+v", lines[0].Spans, want)
	}
}

func TestParseLinesUnescapesEntities(t *testing.T) {
	lines := ParseLines(Render("a < b & c"))
	if len(lines) != 1 || len(lines[0].Spans) != 1 {
		t.Fatalf("unexpected shape: %+v", lines)
	}
	if got := lines[0].Spans[0].Text; got != "a < b & c" {
		t.Errorf("text = %q, want entities decoded", got)
	}
}

func TestParseLinesHeadingLevels(t *testing.T) {
	lines := ParseLines(Render("# one\n## two\n### three"))
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %+v", len(lines), lines)
	}
	for i, level := range []int{1, 2, 3} {
		if lines[i].Kind != LineHeading || lines[i].Level != level {
			t.Errorf("line %d = %+v, want heading level %d", i, lines[i], level)
		}
	}
}
