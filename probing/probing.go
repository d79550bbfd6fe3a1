/*
Package probing implements a fixed-capacity hash table with open addressing
and linear probing.

Keys and values live in two parallel arrays. A probe starts at the hashed slot
and walks forward, wrapping around at the end, until it finds the key or an
empty slot. Slots are never vacated, so an empty slot always terminates a
probe sequence. Every probe is bounded to one full cycle of the table.
*/
package probing

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/pwdict/strhash"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pwdict.probing'
func tracer() tracing.Trace {
	return tracing.Select("pwdict.probing")
}

// ErrCapacityExceeded is returned by Insert if no empty slot is left.
var ErrCapacityExceeded = errors.New("probing table capacity exceeded")

// Table is a linear-probing hash table of fixed capacity.
type Table struct {
	keys   []string
	values []int
	used   []bool // marks occupied slots; the empty string is a valid key
	hasher strhash.Hasher
	size   int
	last   atomic.Int64 // comparisons of the most recent Search
}

// Option configures a Table.
type Option func(*Table)

// WithHasher replaces the default polynomial hash.
func WithHasher(h strhash.Hasher) Option {
	return func(t *Table) {
		if h != nil {
			t.hasher = h
		}
	}
}

// New creates an empty table with capacity slots.
func New(capacity int, opts ...Option) (*Table, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("probing: capacity must be positive, is %d", capacity)
	}
	t := &Table{
		keys:   make([]string, capacity),
		values: make([]int, capacity),
		used:   make([]bool, capacity),
		hasher: strhash.Polynomial{},
	}
	for _, opt := range opts {
		opt(t)
	}
	tracer().Debugf("probing table with %d slots, hasher=%v", capacity, t.hasher)
	return t, nil
}

// Insert stores key with value at the first free slot of its probe sequence.
// Inserting a key already present is a no-op. If the table is full,
// ErrCapacityExceeded is returned and the table is unchanged.
func (t *Table) Insert(key string, value int, multiplier int) error {
	n := len(t.keys)
	i := t.hasher.Index(key, multiplier, n)
	for step := 0; step < n; step++ {
		if !t.used[i] {
			t.keys[i], t.values[i], t.used[i] = key, value, true
			t.size++
			return nil
		}
		if t.keys[i] == key {
			return nil
		}
		i = (i + 1) % n
	}
	tracer().Errorf("no free slot for %q in %d slots", key, n)
	return fmt.Errorf("%w: %d slots occupied", ErrCapacityExceeded, n)
}

// Search reports whether key is present and how many occupied slots were
// compared. A hit k slots after the hashed slot costs k+1 comparisons.
func (t *Table) Search(key string, multiplier int) (found bool, comparisons int) {
	_, found, comparisons = t.probe(key, multiplier)
	t.last.Store(int64(comparisons))
	return found, comparisons
}

// Get returns the value stored for key, if any.
func (t *Table) Get(key string, multiplier int) (int, bool) {
	i, found, _ := t.probe(key, multiplier)
	if !found {
		return 0, false
	}
	return t.values[i], true
}

func (t *Table) probe(key string, multiplier int) (slot int, found bool, comparisons int) {
	n := len(t.keys)
	i := t.hasher.Index(key, multiplier, n)
	for step := 0; step < n && t.used[i]; step++ {
		comparisons++
		if t.keys[i] == key {
			return i, true, comparisons
		}
		i = (i + 1) % n
	}
	return -1, false, comparisons
}

// LastComparisons returns the comparison count of the most recent Search.
// With concurrent readers it is the count of whichever Search finished last.
func (t *Table) LastComparisons() int {
	return int(t.last.Load())
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	return t.size
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int {
	return len(t.keys)
}

// Stats describes the slot occupancy of a table.
type Stats struct {
	Entries        int
	Capacity       int
	LongestCluster int // longest run of occupied slots, counted cyclically
}

// FillRatio returns the share of occupied slots.
func (s Stats) FillRatio() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Capacity)
}

// Stats scans all slots and reports their occupancy.
func (t *Table) Stats() Stats {
	s := Stats{Entries: t.size, Capacity: len(t.used)}
	if t.size == len(t.used) {
		s.LongestCluster = t.size
		return s
	}
	// start right after an empty slot so a cluster spanning the wrap is seen once
	start := 0
	for t.used[start] {
		start++
	}
	run := 0
	for k := 1; k <= len(t.used); k++ {
		if t.used[(start+k)%len(t.used)] {
			run++
			s.LongestCluster = max(s.LongestCluster, run)
		} else {
			run = 0
		}
	}
	return s
}
