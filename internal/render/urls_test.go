package render

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty stays empty", "", ""},
		{"bare domain", "x.com", "https://x.com"},
		{"bare domain with path", "github.com/ada", "https://github.com/ada"},
		{"already https", "https://x.com", "https://x.com"},
		{"already http", "http://x.com", "http://x.com"},
		{"uppercase scheme", "HTTPS://x.com", "HTTPS://x.com"},
		{"mixed case scheme", "Http://x.com", "Http://x.com"},
		{"malformed passes through with scheme", "not a url", "https://not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeURLIdempotence(t *testing.T) {
	inputs := []string{"x.com", "https://x.com", "http://sub.example.org/p", ""}
	for _, input := range inputs {
		once := NormalizeURL(input)
		twice := NormalizeURL(once)
		if once != twice {
			t.Errorf("NormalizeURL not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func BenchmarkNormalizeURL(b *testing.B) {
	for b.Loop() {
		NormalizeURL("github.com/ada")
	}
}
