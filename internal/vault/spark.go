package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// maxNameAttempts bounds the collision suffix loop when writing a spark.
const maxNameAttempts = 100

// SparkSource identifies one side of the pair a spark reflects on.
type SparkSource struct {
	Path  string
	Title string
}

// SparkInput describes the spark note to write.
type SparkInput struct {
	// Reflection is the free text the user wrote about the pair.
	Reflection string

	// A and B are the two source notes the spark connects.
	A, B SparkSource

	// Dir is the vault-relative directory that receives the new note.
	Dir string

	// Collection optionally names a vault-relative note that collects a
	// link to every spark.
	Collection string

	// Now stamps the filename and the created frontmatter field.
	Now time.Time
}

type sparkFrontmatter struct {
	Created string   `yaml:"created"`
	Sources []string `yaml:"sources"`
}

// WriteSpark renders the reflection into a new markdown note under the
// spark directory and links it back to both sources. The filename is
// YYYY-MM-DD-<slug>.md; on collision a -2, -3, ... suffix is tried up to
// maxNameAttempts. When a collection note is configured, a link bullet is
// appended to it (creating the note if missing); if that append fails the
// spark file already exists, so its path is returned along with the error.
func WriteSpark(root string, in SparkInput) (string, error) {
	reflection := strings.TrimSpace(in.Reflection)
	if reflection == "" {
		return "", errors.New("empty reflection")
	}

	body, err := renderSpark(reflection, in)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, filepath.FromSlash(in.Dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create spark directory: %w", err)
	}

	base := in.Now.Format("2006-01-02") + "-" + slugify(reflection)
	rel, err := createUnique(root, in.Dir, base, body)
	if err != nil {
		return "", err
	}

	if in.Collection != "" {
		if err := appendToCollection(root, in.Collection, rel); err != nil {
			return rel, fmt.Errorf("append to collection note: %w", err)
		}
	}
	return rel, nil
}

// renderSpark produces the full file content: frontmatter, reflection,
// and a sources line linking both notes by path with their titles as
// aliases.
func renderSpark(reflection string, in SparkInput) ([]byte, error) {
	fm, err := yaml.Marshal(sparkFrontmatter{
		Created: in.Now.UTC().Format(time.RFC3339),
		Sources: []string{in.A.Path, in.B.Path},
	})
	if err != nil {
		return nil, fmt.Errorf("render frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(reflection)
	b.WriteString("\n\nSources: ")
	b.WriteString(wikiLink(in.A))
	b.WriteString(" ")
	b.WriteString(wikiLink(in.B))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// wikiLink renders a source as [[path-without-extension|Title]], which
// resolves unambiguously even when stems collide.
func wikiLink(s SparkSource) string {
	target := strings.TrimSuffix(s.Path, path.Ext(s.Path))
	if s.Title == "" || s.Title == Stem(s.Path) {
		return "[[" + target + "]]"
	}
	return "[[" + target + "|" + s.Title + "]]"
}

// createUnique writes body to <dir>/<base>.md, retrying with -2, -3, ...
// suffixes while the name is taken.
func createUnique(root, dir, base string, body []byte) (string, error) {
	for i := 1; i <= maxNameAttempts; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s-%d", base, i)
		}
		rel := path.Join(dir, name+".md")

		f, err := os.OpenFile(filepath.Join(root, filepath.FromSlash(rel)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create spark note: %w", err)
		}
		if _, err := f.Write(body); err != nil {
			f.Close()
			return "", fmt.Errorf("write spark note: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("write spark note: %w", err)
		}
		return rel, nil
	}
	return "", fmt.Errorf("no free spark filename after %d attempts for %q", maxNameAttempts, base)
}

// slugify derives a filename slug from the first words of the reflection,
// falling back to a short random suffix when nothing usable remains.
func slugify(reflection string) string {
	var parts []string
	length := 0
	for _, word := range strings.Fields(strings.ToLower(reflection)) {
		var b strings.Builder
		for _, r := range word {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() == 0 {
			continue
		}
		parts = append(parts, b.String())
		length += b.Len()
		if len(parts) == 6 || length >= 40 {
			break
		}
	}
	if len(parts) == 0 {
		return uuid.New().String()[:8]
	}
	return strings.Join(parts, "-")
}

// appendToCollection adds a "- [[spark]]" bullet to the collection note,
// creating it with a heading when missing and keeping the bullet on its
// own line even when the existing file lacks a trailing newline.
func appendToCollection(root, collection, sparkRel string) error {
	full := filepath.Join(root, filepath.FromSlash(collection))

	existing, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("create collection directory: %w", err)
		}
		existing = []byte("# " + Stem(collection) + "\n\n")
	} else if err != nil {
		return fmt.Errorf("read collection note: %w", err)
	}

	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		existing = append(existing, '\n')
	}
	target := strings.TrimSuffix(sparkRel, path.Ext(sparkRel))
	existing = append(existing, []byte("- [["+target+"]]\n")...)

	if err := os.WriteFile(full, existing, 0o644); err != nil {
		return fmt.Errorf("write collection note: %w", err)
	}
	return nil
}
