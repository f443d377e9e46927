// Package service orchestrates the vault workflows: scanning the tree
// into the index and running strike sessions against it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nfriedel/flint/internal/db"
	"github.com/nfriedel/flint/internal/metrics"
	"github.com/nfriedel/flint/internal/vault"
)

// ScanService indexes the vault: new and changed notes are parsed and
// stored, vanished notes are removed, and the link graph is rebuilt.
type ScanService struct {
	db        *db.Client
	root      string
	collector *metrics.Collector
}

// NewScanService creates a scan service for the vault at root.
// The collector may be nil.
func NewScanService(client *db.Client, root string, collector *metrics.Collector) *ScanService {
	return &ScanService{db: client, root: root, collector: collector}
}

// ScanOptions configures a vault scan.
type ScanOptions struct {
	// Full reindexes every note even when its hash is unchanged.
	Full bool
	// DryRun reports what would change without touching the index.
	DryRun bool
	// Concurrency sets the number of parallel index writers (default 4).
	Concurrency int
}

// ScanStats summarizes a scan.
type ScanStats struct {
	Scanned    int
	Indexed    int
	Unchanged  int
	Deleted    int
	Edges      int
	Unresolved int
	Errors     []string
}

// Scan walks the vault and reconciles the index with it. Link edges are
// rebuilt for every note, so a target that was unresolved last scan
// resolves as soon as the note it points to appears.
func (s *ScanService) Scan(ctx context.Context, opts ScanOptions) (*ScanStats, error) {
	start := time.Now()

	files, err := vault.CollectFiles(s.root)
	if err != nil {
		return nil, err
	}
	slog.Info("scanning vault", "root", s.root, "files", len(files))

	stats := &ScanStats{Scanned: len(files)}

	// Parse everything first, link resolution needs the full note set.
	notes := make([]vault.ParsedNote, 0, len(files))
	for _, rel := range files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		note, err := vault.ParseFile(s.root, rel)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		notes = append(notes, note)
	}

	edges, unresolved := vault.Resolve(notes)
	stats.Unresolved = unresolved
	for _, targets := range edges {
		stats.Edges += len(targets)
	}

	stored, err := s.db.QueryNoteHashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored hashes: %w", err)
	}

	// Vanished notes: stored but no longer on disk.
	seen := make(map[string]struct{}, len(notes))
	for _, note := range notes {
		seen[note.Path] = struct{}{}
	}
	var vanished []string
	for path := range stored {
		if _, ok := seen[path]; !ok {
			vanished = append(vanished, path)
		}
	}

	if opts.DryRun {
		for _, note := range notes {
			if opts.Full || stored[note.Path] != note.Hash {
				stats.Indexed++
			} else {
				stats.Unchanged++
			}
		}
		stats.Deleted = len(vanished)
		return stats, nil
	}

	indexed, unchanged, failures := s.writeNotes(ctx, notes, stored, edges, opts)
	stats.Indexed = indexed
	stats.Unchanged = unchanged
	stats.Errors = append(stats.Errors, failures...)

	deleted, err := s.db.QueryDeleteNotes(ctx, vanished)
	if err != nil {
		return nil, fmt.Errorf("delete vanished notes: %w", err)
	}
	stats.Deleted = deleted

	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpScan, time.Since(start))
	}

	slog.Info("scan complete",
		"indexed", stats.Indexed,
		"unchanged", stats.Unchanged,
		"deleted", stats.Deleted,
		"edges", stats.Edges,
		"unresolved", stats.Unresolved,
		"errors", len(stats.Errors),
		"duration_ms", time.Since(start).Milliseconds())
	return stats, nil
}

// writeNotes pushes notes and then their edges through a worker pool.
// Two passes: every link target must exist as a note row before the
// edges pointing at it are written.
func (s *ScanService) writeNotes(ctx context.Context, notes []vault.ParsedNote, stored map[string]string, edges map[string][]string, opts ScanOptions) (int, int, []string) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var (
		indexed   atomic.Int32
		unchanged atomic.Int32
		failMu    sync.Mutex
		failures  []string
	)
	fail := func(rel string, err error) {
		failMu.Lock()
		failures = append(failures, fmt.Sprintf("%s: %v", rel, err))
		failMu.Unlock()
	}

	runPool(ctx, concurrency, notes, func(note vault.ParsedNote) {
		if !opts.Full && stored[note.Path] == note.Hash {
			unchanged.Add(1)
			return
		}
		if _, err := s.db.QueryUpsertNote(ctx, note.Path, note.Title, note.Hash, note.Mtime); err != nil {
			fail(note.Path, err)
			return
		}
		indexed.Add(1)
		slog.Debug("note indexed", "path", note.Path)
	})

	runPool(ctx, concurrency, notes, func(note vault.ParsedNote) {
		if err := s.replaceLinks(ctx, note.Path, edges[note.Path]); err != nil {
			fail(note.Path, fmt.Errorf("links: %w", err))
		}
	})

	return int(indexed.Load()), int(unchanged.Load()), failures
}

// replaceLinks writes a note's outgoing edges, retrying once when
// concurrent writers collide on the edge table.
func (s *ScanService) replaceLinks(ctx context.Context, path string, targets []string) error {
	err := s.db.QueryReplaceLinks(ctx, path, targets)
	if err != nil && (errors.Is(err, db.ErrTransactionConflict) || errors.Is(err, db.ErrAlreadyExists)) {
		slog.Debug("retrying link replacement", "path", path, "error", err)
		err = s.db.QueryReplaceLinks(ctx, path, targets)
	}
	return err
}

// runPool feeds every note through fn with the given parallelism.
func runPool(ctx context.Context, concurrency int, notes []vault.ParsedNote, fn func(vault.ParsedNote)) {
	workChan := make(chan vault.ParsedNote, len(notes))
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for note := range workChan {
				if ctx.Err() != nil {
					return
				}
				fn(note)
			}
		}()
	}

	for _, note := range notes {
		workChan <- note
	}
	close(workChan)
	wg.Wait()
}
