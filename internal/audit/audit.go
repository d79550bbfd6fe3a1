// Package audit cross-checks a loaded dictionary index against an
// independent reference set built on a prefix trie.
package audit

import (
	"github.com/derekparker/trie"

	"github.com/npillmayer/pwdict"
)

// Mismatch is a key on which a table disagrees with the reference set.
type Mismatch struct {
	Key       string
	Reference bool // key is in the reference set
	Lookup    pwdict.Lookup
}

// Report summarizes an audit.
type Report struct {
	Words          int // distinct reference words
	Probes         int // keys checked
	Mismatches     []Mismatch
	MaxChained     int // highest chained comparison count seen
	MaxProbing     int // highest probing comparison count seen
	TotalChained   int
	TotalProbing   int
	SuffixExamples []string // words equal to another word plus one character, capped
}

// OK reports whether both tables agreed with the reference on every key.
func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Reference is a set of dictionary words, stored in a trie.
type Reference struct {
	t     *trie.Trie
	count int
}

// NewReference builds a reference set from words. Duplicates are stored once.
func NewReference(words []string) *Reference {
	ref := &Reference{t: trie.New()}
	for _, w := range words {
		if _, ok := ref.t.Find(w); ok {
			continue
		}
		ref.t.Add(w, nil)
		ref.count++
	}
	return ref
}

// Contains reports whether w is a reference word.
func (ref *Reference) Contains(w string) bool {
	_, ok := ref.t.Find(w)
	return ok
}

// Len returns the number of distinct words.
func (ref *Reference) Len() int {
	return ref.count
}

// Words returns all reference words.
func (ref *Reference) Words() []string {
	return ref.t.Keys()
}

// WithPrefix returns the reference words starting with prefix.
func (ref *Reference) WithPrefix(prefix string) []string {
	return ref.t.PrefixSearch(prefix)
}

const maxSuffixExamples = 10

// Run checks every reference word and every extra key against idx. Each
// table must report reference words as found and all other keys as absent.
func Run(idx *pwdict.Index, ref *Reference, multiplier int, extra []string) Report {
	rep := Report{Words: ref.Len()}
	check := func(key string) {
		want := ref.Contains(key)
		l := idx.Lookup(key, multiplier)
		rep.Probes++
		rep.TotalChained += l.Chained.Comparisons
		rep.TotalProbing += l.Probing.Comparisons
		rep.MaxChained = max(rep.MaxChained, l.Chained.Comparisons)
		rep.MaxProbing = max(rep.MaxProbing, l.Probing.Comparisons)
		if l.Chained.Found != want || l.Probing.Found != want {
			rep.Mismatches = append(rep.Mismatches, Mismatch{Key: key, Reference: want, Lookup: l})
		}
	}
	for _, w := range ref.Words() {
		check(w)
		if len(rep.SuffixExamples) < maxSuffixExamples {
			for _, longer := range ref.WithPrefix(w) {
				if len([]rune(longer)) == len([]rune(w))+1 {
					rep.SuffixExamples = append(rep.SuffixExamples, longer)
					break
				}
			}
		}
	}
	for _, k := range extra {
		check(k)
	}
	return rep
}
