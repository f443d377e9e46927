package db

import (
	"context"
	"fmt"
	"time"

	"github.com/nfriedel/flint/internal/draw"
	"github.com/nfriedel/flint/internal/history"
	"github.com/nfriedel/flint/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// settingsRecord is the fixed ID of the singleton settings row.
const settingsRecord = "flint"

// noteHash pairs a note path with its content hash for change detection.
type noteHash struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// relationsField computes the relation count of a note as the number of
// distinct neighbors over incoming and outgoing link edges. A note linked
// both ways to the same neighbor counts it once.
const relationsField = `array::len(array::distinct(array::concat(->linked->note.path, <-linked<-note.path)))`

// QueryUpsertNote creates or updates a note by path.
// The created timestamp is set once on insert and preserved on update.
// Returns the note as stored.
func (c *Client) QueryUpsertNote(ctx context.Context, path, title, hash string, mtime time.Time) (*models.Note, error) {
	sql := `
		UPSERT type::record("note", $path) SET
			path = $path,
			title = $title,
			hash = $hash,
			mtime = type::datetime($mtime),
			created = IF created THEN created ELSE time::now() END,
			updated = time::now()
		RETURN AFTER
	`

	results, err := surrealdb.Query[[]models.Note](ctx, c.db, sql, map[string]any{
		"path":  path,
		"title": title,
		"hash":  hash,
		"mtime": mtime.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert note: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("upsert note: no result returned")
	}

	return &(*results)[0].Result[0], nil
}

// QueryReplaceLinks replaces the outgoing link edges of a note with edges
// to the given target paths. An empty target list clears all outgoing
// links. Target notes must already exist.
func (c *Client) QueryReplaceLinks(ctx context.Context, path string, targets []string) error {
	if targets == nil {
		targets = []string{}
	}

	// RELATE respects the unique_link index, so re-linking the same
	// target after the DELETE cannot create duplicate edges.
	sql := `
		DELETE type::record("note", $path)->linked;
		FOR $target IN $targets {
			RELATE type::record("note", $path)->linked->type::record("note", $target) SET
				created = time::now();
		};
	`

	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"path":    path,
		"targets": targets,
	})
	if err != nil {
		return fmt.Errorf("replace links: %w", wrapQueryError(err))
	}
	return nil
}

// QueryDeleteNotes deletes notes by path. Link edges cascade with the
// records. Returns the count of deleted notes (0 if none found).
func (c *Client) QueryDeleteNotes(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	sql := `DELETE note WHERE path IN $paths RETURN BEFORE`

	results, err := surrealdb.Query[[]models.Note](ctx, c.db, sql, map[string]any{
		"paths": paths,
	})
	if err != nil {
		return 0, fmt.Errorf("delete notes: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return 0, nil
	}
	return len((*results)[0].Result), nil
}

// QueryNoteHashes returns the content hash of every indexed note keyed by
// path. Used by the scanner to skip unchanged files.
func (c *Client) QueryNoteHashes(ctx context.Context) (map[string]string, error) {
	results, err := surrealdb.Query[[]noteHash](ctx, c.db,
		`SELECT path, hash FROM note`, nil)
	if err != nil {
		return nil, fmt.Errorf("note hashes: %w", err)
	}

	hashes := map[string]string{}
	if results != nil && len(*results) > 0 {
		for _, row := range (*results)[0].Result {
			hashes[row.Path] = row.Hash
		}
	}
	return hashes, nil
}

// QueryCorpus returns every indexed note as a draw candidate with its
// live relation count, ordered by path.
func (c *Client) QueryCorpus(ctx context.Context) ([]draw.Candidate, error) {
	sql := fmt.Sprintf(`
		SELECT path, title, %s AS relations
		FROM note ORDER BY path
	`, relationsField)

	results, err := surrealdb.Query[[]draw.Candidate](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []draw.Candidate{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryOrphans returns the least connected notes, fewest relations first.
// Ties are broken by path for stable output.
func (c *Client) QueryOrphans(ctx context.Context, limit int) ([]draw.Candidate, error) {
	sql := fmt.Sprintf(`
		SELECT path, title, %s AS relations
		FROM note ORDER BY relations ASC, path ASC LIMIT $limit
	`, relationsField)

	results, err := surrealdb.Query[[]draw.Candidate](ctx, c.db, sql, map[string]any{
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("orphans: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []draw.Candidate{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryAppendHistory stores a pair outcome and prunes the history table
// to the newest history.MaxEntries rows in the same query.
func (c *Client) QueryAppendHistory(ctx context.Context, entry models.HistoryEntry) error {
	sql := `
		CREATE type::record("history", $id) SET
			note_a = $note_a,
			note_b = $note_b,
			outcome = $outcome,
			spark_path = $spark_path,
			created = time::now();
		DELETE history WHERE id NOT IN (
			SELECT VALUE id FROM history ORDER BY created DESC LIMIT $keep
		);
	`

	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":         string(entry.ID),
		"note_a":     entry.NoteA,
		"note_b":     entry.NoteB,
		"outcome":    entry.Outcome,
		"spark_path": entry.SparkPath,
		"keep":       history.MaxEntries,
	})
	if err != nil {
		return fmt.Errorf("append history: %w", wrapQueryError(err))
	}
	return nil
}

// QueryRecentHistory returns the newest history entries, newest first.
func (c *Client) QueryRecentHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	// record::id strips the table prefix so the ID decodes as a plain string.
	sql := `
		SELECT record::id(id) AS id, note_a, note_b, outcome, spark_path, created
		FROM history ORDER BY created DESC LIMIT $limit
	`

	results, err := surrealdb.Query[[]models.HistoryEntry](ctx, c.db, sql, map[string]any{
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.HistoryEntry{}, nil
	}
	return (*results)[0].Result, nil
}

// QueryLoadSettings returns the stored settings, or the defaults when
// none have been saved yet.
func (c *Client) QueryLoadSettings(ctx context.Context) (models.Settings, error) {
	results, err := surrealdb.Query[[]models.Settings](ctx, c.db,
		`SELECT * FROM type::record("settings", $id)`,
		map[string]any{"id": settingsRecord})
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return models.DefaultSettings(), nil
	}
	return (*results)[0].Result[0], nil
}

// QuerySaveSettings persists the settings singleton.
func (c *Client) QuerySaveSettings(ctx context.Context, settings models.Settings) error {
	// Empty collection note is stored as NONE to fit the option field.
	var collection *string
	if settings.CollectionNote != "" {
		collection = &settings.CollectionNote
	}

	sql := `
		UPSERT type::record("settings", $id) SET
			weigh_orphans = $weigh_orphans,
			spark_dir = $spark_dir,
			collection_note = $collection_note,
			muse_enabled = $muse_enabled
	`

	_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
		"id":              settingsRecord,
		"weigh_orphans":   settings.WeighOrphans,
		"spark_dir":       settings.SparkDir,
		"collection_note": collection,
		"muse_enabled":    settings.MuseEnabled,
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", wrapQueryError(err))
	}
	return nil
}

// QueryVaultStats returns record counts for the index tables.
func (c *Client) QueryVaultStats(ctx context.Context) (*models.VaultStats, error) {
	sql := `
		RETURN {
			notes: (SELECT count() FROM note GROUP ALL)[0].count ?? 0,
			edges: (SELECT count() FROM linked GROUP ALL)[0].count ?? 0,
			history: (SELECT count() FROM history GROUP ALL)[0].count ?? 0
		}
	`

	results, err := surrealdb.Query[models.VaultStats](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("vault stats: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return nil, fmt.Errorf("vault stats: no result returned")
	}
	stats := (*results)[0].Result
	return &stats, nil
}
