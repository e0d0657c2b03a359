// Package seed is the boundary where user-typed seeds become game seeds.
package seed

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// RandomRange bounds seeds handed out by Random.
const RandomRange = 1_000_000

var ErrInvalidSeed = errors.New("seed must be an integer")

// Seed identifies a game. Its decimal form is what players copy and paste to
// replay the same grid.
type Seed uint32

func (s Seed) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// Parse accepts an optionally signed base-10 integer. Values outside the
// uint32 range wrap modulo 2^32.
func Parse(raw string) (Seed, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidSeed)
	}
	v, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, raw)
	}
	return Seed(uint32(v)), nil
}

// Random picks a fresh seed in [0, RandomRange).
func Random() Seed {
	return Seed(rand.IntN(RandomRange))
}
