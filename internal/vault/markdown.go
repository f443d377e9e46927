// Package vault reads a markdown note vault: walking the tree, parsing
// frontmatter, titles and [[wiki-links]], resolving links to note paths,
// and writing new spark notes back into it.
package vault

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Doc is a parsed markdown note.
type Doc struct {
	// Frontmatter metadata (from YAML). Empty map when absent or invalid.
	Frontmatter map[string]any

	// Title from frontmatter or the first h1. Empty when neither exists;
	// callers fall back to the filename stem.
	Title string

	// Content after the frontmatter block.
	Content string
}

var h1Regex = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Parse splits a note into frontmatter and content and extracts its title.
// Invalid frontmatter YAML is ignored rather than failing the note.
func Parse(content string) *Doc {
	doc := &Doc{Frontmatter: make(map[string]any)}

	remaining := content
	if strings.HasPrefix(content, "---\n") {
		endIdx := strings.Index(content[4:], "\n---")
		if endIdx > 0 {
			frontmatterYAML := content[4 : 4+endIdx]
			// Consume the newline ending the closing delimiter line, then
			// one blank separator line if present.
			remaining = strings.TrimPrefix(content[4+endIdx+4:], "\n")
			remaining = strings.TrimPrefix(remaining, "\n")

			if err := yaml.Unmarshal([]byte(frontmatterYAML), &doc.Frontmatter); err != nil {
				doc.Frontmatter = make(map[string]any)
			}
		}
	}

	doc.Content = remaining
	doc.Title = extractTitle(doc.Frontmatter, remaining)

	return doc
}

// extractTitle gets the title from frontmatter or the first h1.
func extractTitle(fm map[string]any, content string) string {
	if title, ok := fm["title"].(string); ok && title != "" {
		return title
	}
	if match := h1Regex.FindStringSubmatch(content); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

var wikiLinkRegex = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// ExtractWikiLinks finds [[wiki-style]] link targets in content. Aliases
// ([[target|shown text]]) and heading anchors ([[target#section]]) are
// stripped down to the target, duplicates are dropped, and links with an
// empty target (same-file anchors like [[#section]]) are skipped.
func ExtractWikiLinks(content string) []string {
	matches := wikiLinkRegex.FindAllStringSubmatch(content, -1)

	links := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, match := range matches {
		target := match[1]
		if idx := strings.Index(target, "|"); idx >= 0 {
			target = target[:idx]
		}
		if idx := strings.Index(target, "#"); idx >= 0 {
			target = target[:idx]
		}
		target = strings.TrimSpace(target)
		if target == "" || seen[target] {
			continue
		}
		links = append(links, target)
		seen[target] = true
	}
	return links
}

// Excerpt returns the first maxLines non-empty content lines of a parsed
// note, for panel previews and muse prompts.
func (d *Doc) Excerpt(maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(d.Content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxLines {
			break
		}
	}
	return strings.Join(lines, "\n")
}
