// Package history maintains the bounded, append-only log of pair outcomes.
package history

import "github.com/nfriedel/flint/internal/models"

// MaxEntries bounds the log. Appending beyond it drops the oldest entries,
// never the newest.
const MaxEntries = 200

// Log holds pair outcomes in memory, oldest first. It is loaded from the
// store at startup; every append is written through by the caller.
type Log struct {
	entries []models.HistoryEntry
}

// NewLog builds a log from persisted entries, oldest first. Input beyond
// MaxEntries is truncated from the head so the most recent entries survive.
func NewLog(entries []models.HistoryEntry) *Log {
	l := &Log{entries: make([]models.HistoryEntry, 0, len(entries))}
	l.entries = append(l.entries, entries...)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[len(l.entries)-MaxEntries:]
	}
	return l
}

// Append adds entry as the newest element, dropping the oldest when the
// log exceeds MaxEntries.
func (l *Log) Append(entry models.HistoryEntry) {
	l.entries = append(l.entries, entry)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[len(l.entries)-MaxEntries:]
	}
}

// Len returns the number of entries currently held.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// RecentIDs returns the distinct note identifiers referenced by either slot
// of the last n entries. A note appearing in several entries is returned
// once. n larger than the log is clamped.
func (l *Log) RecentIDs(n int) []string {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, 2*n)
	ids := make([]string, 0, 2*n)
	for _, e := range l.entries[len(l.entries)-n:] {
		for _, id := range []string{e.NoteA, e.NoteB} {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
