package draw

import "math/rand"

// Slot identifies one side of the displayed pair.
type Slot int

const (
	SlotA Slot = iota
	SlotB
)

// ParseSlot maps the wire names "a" and "b" to a Slot.
func ParseSlot(s string) (Slot, bool) {
	switch s {
	case "a", "A":
		return SlotA, true
	case "b", "B":
		return SlotB, true
	}
	return 0, false
}

// Session owns the pair of notes currently shown to the user and composes
// the exclusion set for each draw: the displayed pair plus every note
// referenced by the recent history window. It holds no persistence; the
// corpus and recent history ids are passed in per call.
type Session struct {
	rng      *rand.Rand
	weighted bool

	a, b   Candidate
	active bool
}

// NewSession creates a session drawing from the given random source.
func NewSession(rng *rand.Rand, weighted bool) *Session {
	return &Session{rng: rng, weighted: weighted}
}

// Weighted reports whether draws favor sparsely connected notes.
func (s *Session) Weighted() bool { return s.weighted }

// SetWeighted toggles orphan weighting for subsequent draws.
func (s *Session) SetWeighted(on bool) { s.weighted = on }

// Active reports whether a pair is currently displayed.
func (s *Session) Active() bool { return s.active }

// Pair returns the displayed pair. ok is false when no pair is active.
func (s *Session) Pair() (a, b Candidate, ok bool) {
	if !s.active {
		return Candidate{}, Candidate{}, false
	}
	return s.a, s.b, true
}

// Draw replaces the displayed pair with two fresh candidates, the second
// drawn with the first already excluded so the slots never show the same
// note. A false return means the corpus is exhausted even after narrowing;
// the previous pair, if any, stays displayed.
func (s *Session) Draw(corpus []Candidate, recent []string) bool {
	a, ok := s.pick(corpus, recent, nil)
	if !ok {
		return false
	}
	b, ok := s.pick(corpus, recent, &a)
	if !ok {
		return false
	}
	s.a, s.b = a, b
	s.active = true
	return true
}

// Swap re-draws one slot of the active pair, keeping both currently
// displayed notes excluded so the swap can return neither of them. ok is
// false when no pair is active or the corpus is exhausted; the pair is
// left unchanged in either case.
func (s *Session) Swap(slot Slot, corpus []Candidate, recent []string) (Candidate, bool) {
	if !s.active || (slot != SlotA && slot != SlotB) {
		return Candidate{}, false
	}
	c, ok := s.pick(corpus, recent, nil)
	if !ok {
		return Candidate{}, false
	}
	if slot == SlotA {
		s.a = c
	} else {
		s.b = c
	}
	return c, true
}

// Consume ends the displayed pair and returns it, typically so the caller
// can record its outcome. Further swaps require a fresh Draw.
func (s *Session) Consume() (a, b Candidate, ok bool) {
	if !s.active {
		return Candidate{}, Candidate{}, false
	}
	a, b = s.a, s.b
	s.a, s.b = Candidate{}, Candidate{}
	s.active = false
	return a, b, true
}

// pick runs one sampler call with the narrow-and-retry rule: if the full
// exclusion set (displayed notes plus recent history) exhausts the corpus,
// the history part is dropped and the pick retried once against the
// displayed notes alone. taken is a candidate already chosen for the other
// slot during the same draw.
func (s *Session) pick(corpus []Candidate, recent []string, taken *Candidate) (Candidate, bool) {
	narrow := s.displayed()
	if taken != nil {
		narrow[taken.Path] = struct{}{}
	}
	full := make(map[string]struct{}, len(narrow)+len(recent))
	for id := range narrow {
		full[id] = struct{}{}
	}
	for _, id := range recent {
		full[id] = struct{}{}
	}

	if c, ok := Pick(corpus, full, s.weighted, s.rng); ok {
		return c, true
	}
	return Pick(corpus, narrow, s.weighted, s.rng)
}

// displayed returns the identifiers of the active pair as a set.
func (s *Session) displayed() map[string]struct{} {
	set := make(map[string]struct{}, 2)
	if s.active {
		set[s.a.Path] = struct{}{}
		set[s.b.Path] = struct{}{}
	}
	return set
}
