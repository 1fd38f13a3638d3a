package util

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"nul bytes from extractor output", "Abstract\x00: we propose\x00 a method", "Abstract: we propose a method"},
		{"control characters dropped", "Table 2\x01\x02 results:\x0b 94.1%", "Table 2 results: 94.1%"},
		{"newlines and tabs survive", "Section 1\n\tIntroduction\r\n", "Section 1\n\tIntroduction"},
		{"surrounding whitespace trimmed", "  page 3  ", "page 3"},
		{"empty input", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SanitizeText(c.in); got != c.want {
				t.Fatalf("SanitizeText(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
