package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/nfriedel/flint/internal/db"
	"github.com/nfriedel/flint/internal/draw"
	"github.com/nfriedel/flint/internal/history"
	"github.com/nfriedel/flint/internal/llm"
	"github.com/nfriedel/flint/internal/metrics"
	"github.com/nfriedel/flint/internal/models"
	"github.com/nfriedel/flint/internal/vault"
)

// museTimeout bounds a single muse call, a stuck local model must not
// hang the session.
const museTimeout = 15 * time.Second

// excerptLines is how much of each note the muse gets to see.
const excerptLines = 6

// ErrNoActivePair is returned by operations that need a displayed pair
// when none is on the table. Check with errors.Is.
var ErrNoActivePair = errors.New("no active pair")

// Pair is a drawn pair of notes with the companion prompt shown
// alongside it.
type Pair struct {
	A      draw.Candidate
	B      draw.Candidate
	Prompt string
}

// StrikeService runs a strike session: draw a pair of notes, let the
// user swap either side, then record the outcome as a spark note or a
// skip. Safe for concurrent use.
type StrikeService struct {
	db        *db.Client
	root      string
	rng       *rand.Rand
	muse      *llm.Muse
	collector *metrics.Collector

	mu       sync.Mutex
	session  *draw.Session
	log      *history.Log
	settings models.Settings
	prompt   string
}

// NewStrikeService creates a strike service over the vault at root.
// muse and collector may be nil. Call Start before drawing.
func NewStrikeService(client *db.Client, root string, rng *rand.Rand, muse *llm.Muse, collector *metrics.Collector) *StrikeService {
	return &StrikeService{
		db:        client,
		root:      root,
		rng:       rng,
		muse:      muse,
		collector: collector,
		session:   draw.NewSession(rng, true),
		log:       history.NewLog(nil),
		settings:  models.DefaultSettings(),
	}
}

// Start loads settings and recent history from the store and resets the
// session to match.
func (s *StrikeService) Start(ctx context.Context) error {
	settings, err := s.db.QueryLoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	entries, err := s.db.QueryRecentHistory(ctx, history.MaxEntries)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	// The store returns newest first, the log appends oldest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.session = draw.NewSession(s.rng, settings.WeighOrphans)
	s.log = history.NewLog(entries)
	s.prompt = ""

	slog.Info("strike session started",
		"weighted", settings.WeighOrphans,
		"muse", settings.MuseEnabled,
		"history", len(entries))
	return nil
}

// Draw replaces the displayed pair with a fresh one. The bool is false
// when the corpus cannot produce a pair. The returned pair carries no
// prompt yet, fetch one with PairPrompt.
func (s *StrikeService) Draw(ctx context.Context) (*Pair, bool, error) {
	corpus, err := s.loadCorpus(ctx)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	ok := s.session.Draw(corpus, s.log.RecentIDs(draw.HistoryWindow))
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpDraw, time.Since(start))
	}
	if !ok {
		return nil, false, nil
	}

	a, b, _ := s.session.Pair()
	s.prompt = ""
	return &Pair{A: a, B: b}, true, nil
}

// Swap redraws one side of the pair, the other side stays put. The bool
// is false when no pair is active or no replacement candidate exists.
func (s *StrikeService) Swap(ctx context.Context, slot draw.Slot) (*Pair, bool, error) {
	corpus, err := s.loadCorpus(ctx)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	_, ok := s.session.Swap(slot, corpus, s.log.RecentIDs(draw.HistoryWindow))
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpDraw, time.Since(start))
	}
	if !ok {
		return nil, false, nil
	}

	a, b, _ := s.session.Pair()
	s.prompt = ""
	return &Pair{A: a, B: b}, true, nil
}

// Pair returns the currently displayed pair, if any.
func (s *StrikeService) Pair() (*Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, b, ok := s.session.Pair()
	if !ok {
		return nil, false
	}
	return &Pair{A: a, B: b, Prompt: s.prompt}, true
}

// RecordSpark writes the reflection as a spark note, consumes the pair
// and logs a sparked outcome. Returns the vault-relative spark path.
func (s *StrikeService) RecordSpark(ctx context.Context, reflection string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, b, ok := s.session.Pair()
	if !ok {
		return "", ErrNoActivePair
	}

	start := time.Now()
	sparkPath, err := vault.WriteSpark(s.root, vault.SparkInput{
		Reflection: reflection,
		A:          vault.SparkSource{Path: a.Path, Title: a.Title},
		B:          vault.SparkSource{Path: b.Path, Title: b.Title},
		Dir:        s.settings.SparkDir,
		Collection: s.settings.CollectionNote,
		Now:        time.Now(),
	})
	if err != nil {
		if sparkPath == "" {
			return "", err
		}
		// Log but don't fail, the spark note itself is already on disk.
		slog.Warn("collection append failed", "spark", sparkPath, "error", err)
	}
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpSparkWrite, time.Since(start))
	}

	if err := s.indexSpark(ctx, sparkPath, a.Path, b.Path); err != nil {
		// Log but don't fail, the next scan covers it.
		slog.Warn("spark index failed", "spark", sparkPath, "error", err)
	}

	s.session.Consume()
	s.record(ctx, a, b, models.OutcomeSparked, &sparkPath)

	slog.Info("spark recorded", "spark", sparkPath, "note_a", a.Path, "note_b", b.Path)
	return sparkPath, nil
}

// Skip consumes the displayed pair without writing a spark.
func (s *StrikeService) Skip(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, b, ok := s.session.Consume()
	if !ok {
		return ErrNoActivePair
	}
	s.record(ctx, a, b, models.OutcomeSkipped, nil)
	return nil
}

// indexSpark upserts the freshly written spark note and its two source
// edges so relation counts and draws see it before the next scan.
func (s *StrikeService) indexSpark(ctx context.Context, sparkPath, pathA, pathB string) error {
	note, err := vault.ParseFile(s.root, sparkPath)
	if err != nil {
		return fmt.Errorf("parse spark: %w", err)
	}
	if _, err := s.db.QueryUpsertNote(ctx, note.Path, note.Title, note.Hash, note.Mtime); err != nil {
		return fmt.Errorf("upsert spark: %w", err)
	}
	if err := s.db.QueryReplaceLinks(ctx, note.Path, []string{pathA, pathB}); err != nil {
		return fmt.Errorf("link spark: %w", err)
	}
	return nil
}

// record appends the outcome to the in-memory log and the store.
func (s *StrikeService) record(ctx context.Context, a, b draw.Candidate, outcome models.Outcome, sparkPath *string) {
	entry := models.HistoryEntry{
		ID:        models.NewHistoryID(),
		NoteA:     a.Path,
		NoteB:     b.Path,
		Outcome:   outcome,
		SparkPath: sparkPath,
		CreatedAt: time.Now().UTC(),
	}
	s.log.Append(entry)
	if err := s.db.QueryAppendHistory(ctx, entry); err != nil {
		// Log but don't fail, the in-memory log still shields the pair
		// from being redrawn this session.
		slog.Warn("history append failed", "outcome", outcome, "error", err)
	}
	s.prompt = ""
}

// Settings returns the active session settings.
func (s *StrikeService) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetWeighted flips orphan weighting and persists the choice.
func (s *StrikeService) SetWeighted(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.WeighOrphans = on
	s.session.SetWeighted(on)
	return s.saveSettings(ctx)
}

// SetMuseEnabled toggles the muse and persists the choice.
func (s *StrikeService) SetMuseEnabled(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.MuseEnabled = on
	return s.saveSettings(ctx)
}

func (s *StrikeService) saveSettings(ctx context.Context) error {
	if err := s.db.QuerySaveSettings(ctx, s.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// History returns the newest stored outcomes, newest first.
func (s *StrikeService) History(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	return s.db.QueryRecentHistory(ctx, limit)
}

// Orphans returns the least connected notes, loneliest first.
func (s *StrikeService) Orphans(ctx context.Context, limit int) ([]draw.Candidate, error) {
	return s.db.QueryOrphans(ctx, limit)
}

// Stats returns index counts for the vault.
func (s *StrikeService) Stats(ctx context.Context) (*models.VaultStats, error) {
	return s.db.QueryVaultStats(ctx)
}

// PairPrompt returns the companion question for the displayed pair,
// asking the muse when it is enabled and falling back to a canned
// question otherwise. The result is cached until the pair changes.
// The muse call runs outside the session lock, it can take seconds.
func (s *StrikeService) PairPrompt(ctx context.Context) (string, error) {
	s.mu.Lock()
	a, b, ok := s.session.Pair()
	cached := s.prompt
	museOn := s.settings.MuseEnabled && s.muse != nil
	s.mu.Unlock()

	if !ok {
		return "", ErrNoActivePair
	}
	if cached != "" {
		return cached, nil
	}

	var question string
	if museOn {
		museCtx, cancel := context.WithTimeout(ctx, museTimeout)
		defer cancel()
		q, err := s.muse.Prompt(museCtx, s.noteRef(a), s.noteRef(b))
		if err != nil {
			slog.Warn("muse unavailable, using static prompt", "error", err)
		} else {
			question = q
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if question == "" {
		question = llm.StaticPrompt(s.rng)
	}
	// Cache only if the pair is still the one we asked about.
	if a2, b2, ok2 := s.session.Pair(); ok2 && a2.Path == a.Path && b2.Path == b.Path {
		s.prompt = question
	}
	return question, nil
}

// noteRef packages a candidate with a short excerpt for the muse.
func (s *StrikeService) noteRef(c draw.Candidate) llm.NoteRef {
	excerpt, err := vault.Excerpt(s.root, c.Path, excerptLines)
	if err != nil {
		excerpt = ""
	}
	return llm.NoteRef{Title: c.Title, Excerpt: excerpt}
}

// loadCorpus reads the candidate set fresh from the index so relation
// counts always reflect the latest scan.
func (s *StrikeService) loadCorpus(ctx context.Context) ([]draw.Candidate, error) {
	start := time.Now()
	corpus, err := s.db.QueryCorpus(ctx)
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpDBQuery, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return corpus, nil
}
