package wordlist

import (
	"io"

	"github.com/npillmayer/pwdict"
)

// Options controls how LoadDictionary builds an index. Zero values select
// the pwdict defaults.
type Options struct {
	ChainedCapacity int
	ProbingCapacity int
	Multiplier      int
	IndexOptions    []pwdict.IndexOption
}

func (o Options) withDefaults() Options {
	if o.ChainedCapacity == 0 {
		o.ChainedCapacity = pwdict.DefaultChainedCapacity
	}
	if o.ProbingCapacity == 0 {
		o.ProbingCapacity = pwdict.DefaultProbingCapacity
	}
	if o.Multiplier == 0 {
		o.Multiplier = pwdict.DefaultMultiplier
	}
	return o
}

// LoadDictionary reads a one-word-per-line dictionary from reader and returns
// a loaded index. A dictionary without words is an error
// (pwdict.ErrSourceUnavailable).
func LoadDictionary(reader io.Reader, opts Options) (*pwdict.Index, error) {
	opts = opts.withDefaults()
	idx, err := pwdict.NewIndex(opts.ChainedCapacity, opts.ProbingCapacity, opts.IndexOptions...)
	if err != nil {
		return nil, err
	}
	if err = idx.LoadWords(NewReader(reader), opts.Multiplier); err != nil {
		return nil, err
	}
	return idx, nil
}
