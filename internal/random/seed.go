// Package random provides seed and source helpers for draw randomness.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a math/rand source seeded from crypto/rand. Tests that
// need reproducible draws should build their own source from a fixed seed
// instead.
func NewRand() (*rand.Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, fmt.Errorf("seed draw source: %w", err)
	}
	return rand.New(rand.NewSource(seed)), nil
}
