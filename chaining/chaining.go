/*
Package chaining implements a fixed-capacity hash table which resolves
collisions by separate chaining.

Every bucket holds the entries hashing to it in insertion order. The table is
intended for write-once/read-many workloads: it is filled during a load phase
and queried read-only afterwards. There is no deletion and no resizing.
*/
package chaining

import (
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/pwdict/strhash"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pwdict.chaining'
func tracer() tracing.Trace {
	return tracing.Select("pwdict.chaining")
}

// Entry is a key together with its 1-based load ordinal.
type Entry struct {
	Key     string
	Ordinal int
}

// Table is a separate-chaining hash table of fixed capacity.
type Table struct {
	buckets [][]Entry
	hasher  strhash.Hasher
	size    int
	last    atomic.Int64 // comparisons of the most recent Search
}

// Option configures a Table.
type Option func(*Table)

// WithHasher replaces the default strided polynomial hash.
func WithHasher(h strhash.Hasher) Option {
	return func(t *Table) {
		if h != nil {
			t.hasher = h
		}
	}
}

// New creates an empty table with capacity buckets.
func New(capacity int, opts ...Option) (*Table, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("chaining: capacity must be positive, is %d", capacity)
	}
	t := &Table{
		buckets: make([][]Entry, capacity),
		hasher:  strhash.Polynomial{Strided: true},
	}
	for _, opt := range opts {
		opt(t)
	}
	tracer().Debugf("chaining table with %d buckets, hasher=%v", capacity, t.hasher)
	return t, nil
}

// Insert stores key with ordinal. Inserting a key already present is a no-op;
// the ordinal of the first insertion is kept.
func (t *Table) Insert(key string, ordinal int, multiplier int) {
	b := t.hasher.Index(key, multiplier, len(t.buckets))
	for _, e := range t.buckets[b] {
		if e.Key == key {
			return
		}
	}
	t.buckets[b] = append(t.buckets[b], Entry{Key: key, Ordinal: ordinal})
	t.size++
}

// Search reports whether key is present and how many entries of its bucket
// were compared. A hit at chain position k costs k+1 comparisons, a miss costs
// the length of the chain.
func (t *Table) Search(key string, multiplier int) (found bool, comparisons int) {
	b := t.hasher.Index(key, multiplier, len(t.buckets))
	for _, e := range t.buckets[b] {
		comparisons++
		if e.Key == key {
			found = true
			break
		}
	}
	t.last.Store(int64(comparisons))
	return found, comparisons
}

// Get returns the entry stored for key, if any.
func (t *Table) Get(key string, multiplier int) (Entry, bool) {
	b := t.hasher.Index(key, multiplier, len(t.buckets))
	for _, e := range t.buckets[b] {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// LastComparisons returns the comparison count of the most recent Search.
// With concurrent readers it is the count of whichever Search finished last.
func (t *Table) LastComparisons() int {
	return int(t.last.Load())
}

// Len returns the number of distinct keys stored.
func (t *Table) Len() int {
	return t.size
}

// Capacity returns the number of buckets.
func (t *Table) Capacity() int {
	return len(t.buckets)
}

// Stats describes the bucket occupancy of a table.
type Stats struct {
	Entries      int
	Capacity     int
	UsedBuckets  int
	LongestChain int
}

// FillRatio returns the share of non-empty buckets.
func (s Stats) FillRatio() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.UsedBuckets) / float64(s.Capacity)
}

// LoadFactor returns entries per bucket.
func (s Stats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Capacity)
}

// Stats scans all buckets and reports their occupancy.
func (t *Table) Stats() Stats {
	s := Stats{Entries: t.size, Capacity: len(t.buckets)}
	for _, chain := range t.buckets {
		if len(chain) == 0 {
			continue
		}
		s.UsedBuckets++
		s.LongestChain = max(s.LongestChain, len(chain))
	}
	return s
}
