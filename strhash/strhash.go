/*
Package strhash maps strings to bucket indices of fixed-capacity hash tables.

The default algorithm is a polynomial hash over the characters of a key,

	h = h*multiplier + code(c)

accumulated in a 32-bit signed integer which silently wraps on overflow. The
bucket index is |h mod capacity|.

In strided mode only every skip-th character is hashed, where
skip = max(1, len/8). Long keys are therefore hashed from at most about eight
sample characters, which keeps hashing cheap for long words but makes keys that
differ only in unsampled positions collide.

Characters are Unicode code points. For keys inside the Basic Multilingual
Plane this is the same as hashing UTF-16 code units.
*/
package strhash

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Hasher selects a bucket for a key in a table of a given capacity.
// Implementations must be deterministic and return a value in [0, capacity).
type Hasher interface {
	Index(key string, multiplier, capacity int) int
}

// Index hashes key with the polynomial algorithm and returns a bucket index
// in [0, capacity). It panics if capacity < 1.
func Index(key string, multiplier, capacity int, strided bool) int {
	if capacity < 1 {
		panic(fmt.Sprintf("strhash: capacity must be positive, is %d", capacity))
	}
	return reduce(Sum32(key, multiplier, strided), capacity)
}

// Sum32 returns the raw polynomial accumulator for key.
func Sum32(key string, multiplier int, strided bool) int32 {
	m := int32(multiplier)
	var h int32
	if !strided {
		for _, r := range key {
			h = h*m + int32(r)
		}
		return h
	}
	n := utf8.RuneCountInString(key)
	skip := max(1, n/8)
	if skip == 1 {
		for _, r := range key {
			h = h*m + int32(r)
		}
		return h
	}
	i := 0
	for _, r := range key {
		if i%skip == 0 {
			h = h*m + int32(r)
		}
		i++
	}
	return h
}

// reduce folds h into [0, capacity). The remainder is taken before the
// absolute value, in 64 bits, so math.MinInt32 cannot overflow.
func reduce(h int32, capacity int) int {
	r := int64(h) % int64(capacity)
	if r < 0 {
		r = -r
	}
	return int(r)
}

// --- Strategies ------------------------------------------------------------

// Polynomial is the multiplier-based hash described in the package comment.
type Polynomial struct {
	Strided bool
}

// Index implements Hasher.
func (p Polynomial) Index(key string, multiplier, capacity int) int {
	return Index(key, multiplier, capacity, p.Strided)
}

func (p Polynomial) String() string {
	if p.Strided {
		return NamePolynomialStrided
	}
	return NamePolynomial
}

// XXHash hashes every byte of the key with xxHash64. It ignores the
// multiplier and is a drop-in for tables that need a well-distributed hash.
type XXHash struct{}

// Index implements Hasher.
func (XXHash) Index(key string, multiplier, capacity int) int {
	if capacity < 1 {
		panic(fmt.Sprintf("strhash: capacity must be positive, is %d", capacity))
	}
	return int(xxhash.Sum64String(key) % uint64(capacity))
}

func (XXHash) String() string {
	return NameXXHash
}

// Names of the built-in strategies, as used in configuration files.
const (
	NamePolynomial        = "polynomial"
	NamePolynomialStrided = "polynomial-strided"
	NameXXHash            = "xxhash"
)

// Names lists the names accepted by ByName.
func Names() []string {
	return []string{NamePolynomial, NamePolynomialStrided, NameXXHash}
}

// ByName returns the built-in strategy registered under name.
func ByName(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NamePolynomial:
		return Polynomial{}, nil
	case NamePolynomialStrided:
		return Polynomial{Strided: true}, nil
	case NameXXHash:
		return XXHash{}, nil
	}
	return nil, fmt.Errorf("unknown hash strategy %q", name)
}
