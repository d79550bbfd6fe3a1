package pwdict

import (
	"unicode/utf8"
)

// DefaultMinLength is the minimum number of characters of a strong password.
const DefaultMinLength = 8

// Reason tells which rule decided a verdict.
type Reason int

const (
	ReasonNone             Reason = iota // strong: no rule matched
	ReasonTooShort                       // fewer than MinLength characters
	ReasonDictionaryWord                 // the candidate itself is a dictionary word
	ReasonDictionarySuffix               // dictionary word plus one trailing character
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTooShort:
		return "too_short"
	case ReasonDictionaryWord:
		return "dictionary_word"
	case ReasonDictionarySuffix:
		return "dictionary_suffix"
	}
	return "unknown"
}

// Verdict is the classification of one candidate password.
type Verdict struct {
	Candidate string
	Strong    bool
	Reason    Reason
	Lookups   []Lookup // dictionary lookups performed, in order
}

// VerdictObserver is notified of every verdict a classifier reaches.
// Implementations must be safe for concurrent use.
type VerdictObserver interface {
	ObserveVerdict(v Verdict)
}

// Classifier applies the length and dictionary rules to candidates.
type Classifier struct {
	Index      *Index
	Multiplier int
	MinLength  int // DefaultMinLength if < 1
	Observer   VerdictObserver
}

// NewClassifier creates a classifier with default minimum length.
func NewClassifier(index *Index, multiplier int) *Classifier {
	return &Classifier{
		Index:      index,
		Multiplier: multiplier,
		MinLength:  DefaultMinLength,
	}
}

// IsStrongPassword reports whether candidate is neither too short, nor a
// dictionary word, nor a dictionary word followed by one character.
func IsStrongPassword(candidate string, index *Index, multiplier int) bool {
	return NewClassifier(index, multiplier).Classify(candidate).Strong
}

// Classify runs the rules in order; the first rule that matches makes the
// candidate weak.
//
// Example, with "password" in the dictionary:
//
//	"short"     => weak, too_short
//	"password"  => weak, dictionary_word
//	"password1" => weak, dictionary_suffix
//	"Xk9#mQ2z"  => strong
func (c *Classifier) Classify(candidate string) Verdict {
	v := c.classify(candidate)
	if c.Observer != nil {
		c.Observer.ObserveVerdict(v)
	}
	return v
}

func (c *Classifier) classify(candidate string) Verdict {
	v := Verdict{Candidate: candidate}
	minLength := c.MinLength
	if minLength < 1 {
		minLength = DefaultMinLength
	}
	if utf8.RuneCountInString(candidate) < minLength {
		v.Reason = ReasonTooShort
		return v
	}
	l := c.Index.Lookup(candidate, c.Multiplier)
	v.Lookups = append(v.Lookups, l)
	if l.Found() {
		v.Reason = ReasonDictionaryWord
		return v
	}
	_, last := utf8.DecodeLastRuneInString(candidate)
	l = c.Index.Lookup(candidate[:len(candidate)-last], c.Multiplier)
	v.Lookups = append(v.Lookups, l)
	if l.Found() {
		v.Reason = ReasonDictionarySuffix
		return v
	}
	v.Strong = true
	tracer().Debugf("candidate of length %d is strong", len(candidate))
	return v
}
