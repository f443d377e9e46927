package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ParsedNote is one vault file after parsing: identity, title, and the raw
// wiki-link targets still awaiting resolution.
type ParsedNote struct {
	// Path is relative to the vault root, with forward slashes.
	Path  string
	Title string

	// Links holds raw [[wiki-link]] targets, not yet resolved to paths.
	Links []string

	Hash  string
	Mtime time.Time
}

// CollectFiles walks the vault root and returns the relative paths of all
// markdown files, skipping dotfiles and dot-directories (.obsidian, .git).
func CollectFiles(root string) ([]string, error) {
	var files []string
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !d.IsDir() && (ext == ".md" || ext == ".markdown") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	return files, nil
}

// ParseFile reads and parses one vault file identified by its relative
// path. The returned title falls back to the filename stem when the note
// declares none.
func ParseFile(root, rel string) (ParsedNote, error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	content, err := os.ReadFile(full)
	if err != nil {
		return ParsedNote{}, fmt.Errorf("read note: %w", err)
	}
	info, err := os.Stat(full)
	if err != nil {
		return ParsedNote{}, fmt.Errorf("stat note: %w", err)
	}

	doc := Parse(string(content))
	title := doc.Title
	if title == "" {
		title = Stem(rel)
	}

	sum := sha256.Sum256(content)

	return ParsedNote{
		Path:  rel,
		Title: title,
		Links: ExtractWikiLinks(doc.Content),
		Hash:  hex.EncodeToString(sum[:]),
		Mtime: info.ModTime().UTC(),
	}, nil
}

// Stem returns the filename without directory or extension, the form
// wiki-links usually name a note by.
func Stem(rel string) string {
	base := filepath.Base(filepath.FromSlash(rel))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Resolve maps every note's raw wiki-link targets to vault paths. A target
// matches, case-insensitively and in this order: the full relative path
// without extension, the filename stem, or the note title. Ambiguous stems
// and titles resolve to the first note in input order. Self-links and
// targets matching no note are dropped; the count of the latter is
// returned alongside the per-note outgoing edges.
func Resolve(notes []ParsedNote) (map[string][]string, int) {
	index := make(map[string]string, 3*len(notes))
	add := func(key, path string) {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return
		}
		if _, taken := index[key]; !taken {
			index[key] = path
		}
	}
	// Full paths first so they are never shadowed by a stem or title.
	for _, n := range notes {
		add(strings.TrimSuffix(n.Path, filepath.Ext(n.Path)), n.Path)
	}
	for _, n := range notes {
		add(Stem(n.Path), n.Path)
	}
	for _, n := range notes {
		add(n.Title, n.Path)
	}

	edges := make(map[string][]string, len(notes))
	unresolved := 0
	for _, n := range notes {
		var out []string
		seen := make(map[string]bool)
		for _, link := range n.Links {
			target, ok := index[strings.ToLower(strings.TrimSpace(link))]
			if !ok {
				unresolved++
				continue
			}
			if target == n.Path || seen[target] {
				continue
			}
			out = append(out, target)
			seen[target] = true
		}
		edges[n.Path] = out
	}
	return edges, unresolved
}

// Excerpt reads a note from disk and returns its first maxLines non-empty
// content lines.
func Excerpt(root, rel string, maxLines int) (string, error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	content, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return Parse(string(content)).Excerpt(maxLines), nil
}
