package markup

import (
	"strings"
	"testing"
)

func TestRenderPlaceholder(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t \n"} {
		got := Render(input)
		if !strings.Contains(got, Placeholder) {
			t.Errorf("Render(%q) = %q, want placeholder", input, got)
		}
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	got := Render("<script>alert('x')</script>")
	if strings.Contains(got, "<script") {
		t.Fatalf("script tag survived: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped script text, got %q", got)
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "**b**", "<strong>b</strong>"},
		{"italic", "*i*", "<em>i</em>"},
		{"underline", "_u_", "<u>u</u>"},
		{"strike", "~~s~~", "<del>s</del>"},
		{"code", "`c`", ">c</code>"},
		{"bold inside sentence", "say **it** loud", "say <strong>it</strong> loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render(%q) = %q, want substring %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		input string
		open  string
		close string
	}{
		{"# Title", "<h1", ">Title</h1>"},
		{"## Title", "<h2", ">Title</h2>"},
		{"### Title", "<h3", ">Title</h3>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if !strings.Contains(got, tt.open) || !strings.Contains(got, tt.close) {
			t.Errorf("Render(%q) = %q, want %q...%q", tt.input, got, tt.open, tt.close)
		}
	}
}

func TestRenderHeadingRequiresLineStart(t *testing.T) {
	got := Render("not a # heading")
	if strings.Contains(got, "<h1") {
		t.Errorf("mid-line hash became heading: %q", got)
	}
}

func TestRenderLists(t *testing.T) {
	for _, input := range []string{"• item", "1. item"} {
		got := Render(input)
		if !strings.Contains(got, "<div") || !strings.Contains(got, "item</div>") {
			t.Errorf("Render(%q) = %q, want list item wrapper", input, got)
		}
	}
}

func TestRenderBlankLineKeepsBreak(t *testing.T) {
	got := Render("a\n\nb")
	if !strings.Contains(got, "a<br><br>b") {
		t.Errorf("Render(a\\n\\nb) = %q, want doubled <br>", got)
	}
}

// Break collapsing: a newline adjacent to a block wrapper must not produce
// extra vertical space on top of the block's own margin.
func TestRenderCollapsesBreaksAtBlocks(t *testing.T) {
	got := Render("# Hello\n**bold** and *italic*\n• item one\n• item two")

	if strings.Contains(got, "<br>") {
		t.Errorf("stray <br> next to block wrapper: %q", got)
	}

	order := []string{
		">Hello</h1>",
		"<strong>bold</strong> and <em>italic</em>",
		"• item one</div>",
		"• item two</div>",
	}
	pos := -1
	for _, part := range order {
		idx := strings.Index(got, part)
		if idx < 0 {
			t.Fatalf("missing %q in %q", part, got)
		}
		if idx < pos {
			t.Fatalf("%q out of order in %q", part, got)
		}
		pos = idx
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"# Head\n**b** _u_ `code`\n• one\n1. two",
		"plain text",
		"<script>x</script>\n*i*",
	}
	for _, input := range inputs {
		once := Render(input)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q:\n once: %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestWrapSelection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sel      Selection
		marker   string
		wantText string
		wantSel  Selection
	}{
		{
			name: "wraps selected range", text: "make it bold",
			sel: Selection{Start: 8, End: 12}, marker: "**",
			wantText: "make it **bold**", wantSel: Selection{Start: 10, End: 14},
		},
		{
			name: "doubles marker at cursor", text: "ab",
			sel: Selection{Start: 1, End: 1}, marker: "*",
			wantText: "a**b", wantSel: Selection{Start: 2, End: 2},
		},
		{
			name: "clamps out of range selection", text: "hi",
			sel: Selection{Start: -3, End: 99}, marker: "~~",
			wantText: "~~hi~~", wantSel: Selection{Start: 2, End: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotSel := WrapSelection(tt.text, tt.sel, tt.marker)
			if gotText != tt.wantText || gotSel != tt.wantSel {
				t.Errorf("got (%q, %+v), want (%q, %+v)", gotText, gotSel, tt.wantText, tt.wantSel)
			}
		})
	}
}

func TestInsertListPrefix(t *testing.T) {
	t.Run("prefixes selected lines", func(t *testing.T) {
		text := "one\ntwo\n\nthree"
		got, _ := InsertListPrefix(text, Selection{Start: 0, End: len(text)}, "• ")
		want := "• one\n• two\n\n• three"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("inserts newline mid-line", func(t *testing.T) {
		got, sel := InsertListPrefix("abc", Selection{Start: 3, End: 3}, "• ")
		if got != "abc\n• " {
			t.Errorf("got %q", got)
		}
		if sel.Start != len("abc\n• ") {
			t.Errorf("cursor at %d, want %d", sel.Start, len("abc\n• "))
		}
	})

	t.Run("no newline at line start", func(t *testing.T) {
		got, _ := InsertListPrefix("abc\n", Selection{Start: 4, End: 4}, "• ")
		if got != "abc\n• " {
			t.Errorf("got %q", got)
		}
	})
}

func TestNextOrderedMarker(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   string
	}{
		{"empty text", "", 0, "1. "},
		{"continues sequence", "1. a\n2. b\n", 10, "3. "},
		{"counts across gaps", "1. a\nplain\n5. b\n", 16, "3. "},
		{"ignores items after cursor", "1. a\n2. b\n", 5, "2. "},
		{"cursor past end clamps", "1. a", 99, "2. "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextOrderedMarker(tt.text, tt.cursor); got != tt.want {
				t.Errorf("NextOrderedMarker(%q, %d) = %q, want %q", tt.text, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestInsertOrderedItem(t *testing.T) {
	text := "1. a\n2. b\n"
	got, _ := InsertOrderedItem(text, Selection{Start: len(text), End: len(text)})
	if got != "1. a\n2. b\n3. " {
		t.Errorf("got %q", got)
	}
}
