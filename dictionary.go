package pwdict

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/pwdict/chaining"
	"github.com/npillmayer/pwdict/probing"
	"github.com/npillmayer/pwdict/strhash"
)

// Default table capacities and hash multiplier.
const (
	DefaultChainedCapacity = 1000
	DefaultProbingCapacity = 20000
	DefaultMultiplier      = 37
)

// ErrSourceUnavailable is returned if a dictionary source cannot deliver any
// words. An index is never left silently empty.
var ErrSourceUnavailable = errors.New("dictionary source unavailable")

// WordReader yields dictionary words one-by-one.
// It should return io.EOF when the stream is exhausted.
type WordReader interface {
	Next() (word string, err error)
}

// Observer receives per-table diagnostics for every lookup of an index.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveLookup(table string, found bool, comparisons int)
}

// Index is a dictionary loaded into a chaining and a probing hash table.
// After loading it is read-only and may be queried concurrently.
type Index struct {
	chained  *chaining.Table
	probing  *probing.Table
	observer Observer
	words    int
	loadErr  error // set if a load failed; the index takes no further words
}

// IndexOption configures an Index.
type IndexOption func(*indexConfig)

type indexConfig struct {
	chainedHasher strhash.Hasher
	probingHasher strhash.Hasher
	observer      Observer
}

// WithChainedHasher replaces the hash of the chaining table.
func WithChainedHasher(h strhash.Hasher) IndexOption {
	return func(c *indexConfig) { c.chainedHasher = h }
}

// WithProbingHasher replaces the hash of the probing table.
func WithProbingHasher(h strhash.Hasher) IndexOption {
	return func(c *indexConfig) { c.probingHasher = h }
}

// WithObserver installs an observer for lookup diagnostics.
func WithObserver(o Observer) IndexOption {
	return func(c *indexConfig) { c.observer = o }
}

// NewIndex creates an empty index with the given table capacities.
func NewIndex(chainedCapacity, probingCapacity int, opts ...IndexOption) (*Index, error) {
	var conf indexConfig
	for _, opt := range opts {
		opt(&conf)
	}
	ct, err := chaining.New(chainedCapacity, chaining.WithHasher(conf.chainedHasher))
	if err != nil {
		return nil, err
	}
	pt, err := probing.New(probingCapacity, probing.WithHasher(conf.probingHasher))
	if err != nil {
		return nil, err
	}
	return &Index{
		chained:  ct,
		probing:  pt,
		observer: conf.observer,
	}, nil
}

// Load inserts words into both tables, in order. Each word receives one
// 1-based ordinal, shared by both tables. An empty word list is rejected with
// ErrSourceUnavailable. If the probing table overflows, loading stops; both
// tables keep the words loaded so far and the index refuses further loads
// (see Err).
func (idx *Index) Load(words []string, multiplier int) error {
	if idx.loadErr != nil {
		return idx.loadErr
	}
	if len(words) == 0 {
		return fmt.Errorf("%w: empty word list", ErrSourceUnavailable)
	}
	for _, w := range words {
		if err := idx.insert(w, multiplier); err != nil {
			return err
		}
	}
	idx.traceLoaded()
	return nil
}

// LoadWords streams words from reader into both tables. A reader failure is
// reported as ErrSourceUnavailable, as is a reader without any words.
func (idx *Index) LoadWords(reader WordReader, multiplier int) error {
	if idx.loadErr != nil {
		return idx.loadErr
	}
	loaded := 0
	for {
		word, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: after %d words: %w", ErrSourceUnavailable, loaded, err)
		}
		if err = idx.insert(word, multiplier); err != nil {
			return err
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("%w: no words", ErrSourceUnavailable)
	}
	idx.traceLoaded()
	return nil
}

// insert fills the probing table first; it is the only one that can fail, so
// on error neither table holds word.
func (idx *Index) insert(word string, multiplier int) error {
	ordinal := idx.words + 1
	if err := idx.probing.Insert(word, ordinal, multiplier); err != nil {
		idx.loadErr = fmt.Errorf("loading word #%d %q: %w", ordinal, word, err)
		tracer().Errorf("dictionary load failed: %v", idx.loadErr)
		return idx.loadErr
	}
	idx.chained.Insert(word, ordinal, multiplier)
	idx.words++
	return nil
}

// Err returns the error of a failed load, or nil. An index with a load error
// is incomplete: it answers only for the words loaded before the failure.
func (idx *Index) Err() error {
	return idx.loadErr
}

func (idx *Index) traceLoaded() {
	s := idx.Stats()
	tracer().Infof("dictionary loaded words=%d distinct=%d", idx.words, s.Probing.Entries)
	tracer().Infof("chained fill=%.2f longest chain=%d", s.Chained.FillRatio(), s.Chained.Longest)
	tracer().Infof("probing fill=%.2f longest cluster=%d", s.Probing.FillRatio(), s.Probing.Longest)
}

// Probe is the outcome of searching one table.
type Probe struct {
	Found       bool
	Comparisons int
}

// Lookup holds the outcome of searching a key in both tables.
type Lookup struct {
	Key     string
	Chained Probe
	Probing Probe
}

// Found reports whether either table holds the key.
func (l Lookup) Found() bool {
	return l.Chained.Found || l.Probing.Found
}

// Contains reports whether candidate is a dictionary word.
func (idx *Index) Contains(candidate string, multiplier int) bool {
	return idx.Lookup(candidate, multiplier).Found()
}

// Lookup searches candidate in both tables. Both tables are always searched,
// so the result carries the comparison counts of each.
func (idx *Index) Lookup(candidate string, multiplier int) Lookup {
	if idx.loadErr != nil {
		tracer().Debugf("lookup %q on incomplete index: %v", candidate, idx.loadErr)
	}
	return Lookup{
		Key:     candidate,
		Chained: idx.search(TableChained, idx.chained, candidate, multiplier),
		Probing: idx.search(TableProbing, idx.probing, candidate, multiplier),
	}
}

func (idx *Index) search(name string, t membershipTable, key string, multiplier int) Probe {
	found, comparisons := t.Search(key, multiplier)
	if idx.observer != nil {
		idx.observer.ObserveLookup(name, found, comparisons)
	}
	return Probe{Found: found, Comparisons: comparisons}
}

// Len returns the number of words loaded, duplicates included.
func (idx *Index) Len() int {
	return idx.words
}

// Stats returns fill statistics of both tables.
func (idx *Index) Stats() IndexStats {
	return IndexStats{
		Chained: chainedStats(idx.chained),
		Probing: probingStats(idx.probing),
	}
}
