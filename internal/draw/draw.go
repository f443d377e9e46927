// Package draw implements the candidate sampler behind a strike session:
// weighted random selection over the vault corpus with an exclusion set.
package draw

import (
	"math/rand"
	"sort"
)

// HistoryWindow is how many of the most recent history entries contribute
// their notes to the exclusion set of a new draw.
const HistoryWindow = 10

// Candidate is one selectable note: its vault-relative path, display title,
// and how many distinct neighbors link to or from it.
type Candidate struct {
	Path      string `json:"path"`
	Title     string `json:"title"`
	Relations int    `json:"relations"`
}

// Pick selects one candidate from the corpus whose path is not in the
// exclusion set.
//
// With weighted selection the eligible pool is filtered, stable-sorted
// ascending by relation count, and cut to its lower half (half size rounded
// up, never below 1); the pick is uniform within that half. This biases
// selection toward sparsely connected notes without making them
// deterministic picks. Candidates with equal relation counts keep their
// corpus order, and the half cut is by position, so ties at the boundary
// fall on whichever side their position puts them.
//
// Without weighting the pick is uniform over the whole filtered pool.
//
// The second return value is false when the filtered pool is empty. That is
// the normal pool-exhausted signal, not an error; callers decide whether to
// narrow the exclusion set and retry. Pick is a pure function of its inputs
// and the random source, so a seeded rng makes it deterministic.
func Pick(corpus []Candidate, exclude map[string]struct{}, weighted bool, rng *rand.Rand) (Candidate, bool) {
	pool := make([]Candidate, 0, len(corpus))
	for _, c := range corpus {
		if _, skip := exclude[c.Path]; skip {
			continue
		}
		pool = append(pool, c)
	}
	if len(pool) == 0 {
		return Candidate{}, false
	}

	if weighted {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Relations < pool[j].Relations
		})
		pool = pool[:(len(pool)+1)/2]
	}

	return pool[rng.Intn(len(pool))], true
}
