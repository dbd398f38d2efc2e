package app

import "testing"

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"example.com", "*.styler.app", "localhost:*"}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"exact host", "https://example.com", true},
		{"exact host http", "http://example.com", true},
		{"wildcard subdomain", "https://edit.styler.app", true},
		{"nested subdomain", "https://a.b.styler.app", true},
		{"wildcard port", "http://localhost:5173", true},
		{"bare host without scheme", "example.com", true},
		{"unrelated host", "https://evil.example.org", false},
		{"suffix lookalike", "https://notexample.com", false},
		{"apex not covered by wildcard", "https://styler.app", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := originAllowed(patterns, tt.origin); got != tt.want {
				t.Errorf("originAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestOriginAllowedEmptyPatterns(t *testing.T) {
	if originAllowed(nil, "https://example.com") {
		t.Error("no patterns configured should admit no origin")
	}
}
