package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClip(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  string
	}{
		{name: "width zero leaves the line alone", line: "notes/a-very-long-path.md", width: 0, want: "notes/a-very-long-path.md"},
		{name: "short line unchanged", line: "notes/a.md", width: 40, want: "notes/a.md"},
		{name: "exact width unchanged", line: "abcdef", width: 6, want: "abcdef"},
		{name: "long line truncated", line: "abcdefghij", width: 8, want: "abcde..."},
		{name: "multibyte cut on rune boundary", line: "заметки/длинное-название.md", width: 10, want: "заметки..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clip(tt.line, tt.width)
			if got != tt.want {
				t.Errorf("clip(%q, %d) = %q, want %q", tt.line, tt.width, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("clip produced invalid UTF-8: %q", got)
			}
		})
	}
}

func TestClipWidthAccountsForEllipsis(t *testing.T) {
	line := strings.Repeat("я", 30)

	got := clip(line, 20)

	if n := utf8.RuneCountInString(got); n != 20 {
		t.Errorf("clipped line is %d runes, want 20", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("clipped line missing ellipsis: %q", got)
	}
}
