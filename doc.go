/*
Package pwdict classifies candidate passwords as weak or strong by checking
them against a dictionary of known words.

A dictionary is loaded once into two independent hash tables, one resolving
collisions by separate chaining (package chaining) and one by linear probing
(package probing). Both tables hash keys with the polynomial string hash of
strhash, and both are consulted for every lookup, so the comparison costs of
the two collision strategies can be observed side by side.

A candidate is weak if it

  - is shorter than eight characters,
  - is a dictionary word, or
  - is a dictionary word followed by one extra character (e.g. "password1").

Everything else is considered strong. No further transformations (case
folding, leetspeak, multiple suffixes) are applied.

Word sources are format-agnostic: anything implementing WordReader can feed a
dictionary. Package wordlist adapts line-oriented text files.

Example usage:

	idx, _ := pwdict.NewIndex(1000, 20000)
	if err := idx.Load([]string{"password", "dragon", "sunshine"}, 37); err != nil {
		...
	}
	pwdict.IsStrongPassword("password1", idx, 37) // false

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package pwdict

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pwdict'
func tracer() tracing.Trace {
	return tracing.Select("pwdict")
}
