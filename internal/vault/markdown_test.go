package vault

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "frontmatter title wins",
			content:     "---\ntitle: From Frontmatter\n---\n\n# From Heading\n\nBody.",
			wantTitle:   "From Frontmatter",
			wantContent: "# From Heading\n\nBody.",
		},
		{
			name:        "h1 title fallback",
			content:     "# Heading Title\n\nBody text.",
			wantTitle:   "Heading Title",
			wantContent: "# Heading Title\n\nBody text.",
		},
		{
			name:        "no title at all",
			content:     "Just some text without headings.",
			wantTitle:   "",
			wantContent: "Just some text without headings.",
		},
		{
			name:        "invalid frontmatter ignored",
			content:     "---\n: not yaml [\n---\n\n# Recovered\n",
			wantTitle:   "Recovered",
			wantContent: "# Recovered\n",
		},
		{
			name:      "frontmatter without title",
			content:   "---\ntags:\n  - one\n---\n\nPlain body.",
			wantTitle: "",
		},
		{
			name:        "no blank line after frontmatter",
			content:     "---\ntitle: Tight\n---\nBody immediately.",
			wantTitle:   "Tight",
			wantContent: "Body immediately.",
		},
		{
			name:        "only one separator line consumed",
			content:     "---\ntitle: Spaced\n---\n\n\nBody.",
			wantTitle:   "Spaced",
			wantContent: "\nBody.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.content)

			if doc.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", doc.Title, tt.wantTitle)
			}
			if tt.wantContent != "" && doc.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", doc.Content, tt.wantContent)
			}
			if strings.HasPrefix(doc.Content, "---\n") && strings.Contains(tt.content, "title:") {
				t.Error("frontmatter leaked into content")
			}
		})
	}
}

func TestParseFrontmatterValues(t *testing.T) {
	doc := Parse("---\ntitle: Weekly Review\ntags:\n  - journal\n---\n\nBody.")

	if got := doc.Frontmatter["title"]; got != "Weekly Review" {
		t.Errorf("Frontmatter[title] = %v, want Weekly Review", got)
	}
	if _, ok := doc.Frontmatter["tags"]; !ok {
		t.Error("Frontmatter[tags] missing")
	}
}

func TestExtractWikiLinks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain links",
			content: "See [[Alpha]] and [[Beta]].",
			want:    []string{"Alpha", "Beta"},
		},
		{
			name:    "alias stripped",
			content: "As noted in [[zettel/alpha|my first note]].",
			want:    []string{"zettel/alpha"},
		},
		{
			name:    "heading anchor stripped",
			content: "Details in [[Alpha#Setup]].",
			want:    []string{"Alpha"},
		},
		{
			name:    "alias and anchor together",
			content: "[[Alpha#Setup|the setup part]]",
			want:    []string{"Alpha"},
		},
		{
			name:    "duplicates dropped",
			content: "[[Alpha]] then [[Alpha|again]] then [[Alpha#part]]",
			want:    []string{"Alpha"},
		},
		{
			name:    "same-file anchor skipped",
			content: "Jump to [[#Conclusion]].",
			want:    []string{},
		},
		{
			name:    "no links",
			content: "Nothing to see here, [not a wiki link](url).",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractWikiLinks(tt.content)

			if len(got) != len(tt.want) {
				t.Fatalf("ExtractWikiLinks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("link[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	doc := Parse("# Title\n\nFirst line.\n\n\nSecond line.\nThird line.\nFourth line.")

	got := doc.Excerpt(3)

	want := "# Title\nFirst line.\nSecond line."
	if got != want {
		t.Errorf("Excerpt(3) = %q, want %q", got, want)
	}

	if doc.Excerpt(0) != "" {
		t.Error("Excerpt(0) should be empty")
	}
}
