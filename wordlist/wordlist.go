/*
Package wordlist reads dictionaries and candidate lists from line-oriented
text.

A dictionary file holds one word per line. Lines are trimmed of surrounding
white space; blank lines are skipped. No other interpretation takes place, a
line "foo,bar" is the single word "foo,bar".

Example usage:

	f, _ := os.Open("path/to/Dictionary.csv")
	defer f.Close()

	idx, err := wordlist.LoadDictionary(f, wordlist.Options{})
*/
package wordlist

import (
	"bufio"
	"io"
	"strings"

	"github.com/npillmayer/pwdict"
)

// CandidateSeparator delimits candidates on a single input line.
const CandidateSeparator = ", "

// Reader streams dictionary words from text, one word per line.
// It implements pwdict.WordReader.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

var _ pwdict.WordReader = (*Reader)(nil)

// NewReader creates a word reader for r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Reader{scanner: scanner}
}

// Next returns the next non-blank, trimmed line.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, error) {
	for r.scanner.Scan() {
		r.line++
		word := strings.TrimSpace(r.scanner.Text())
		if word == "" {
			continue
		}
		return word, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// ReadAll collects all remaining words of r.
func ReadAll(r pwdict.WordReader) ([]string, error) {
	var words []string
	for {
		w, err := r.Next()
		if err == io.EOF {
			return words, nil
		}
		if err != nil {
			return words, err
		}
		words = append(words, w)
	}
}

// SplitCandidates splits an input line into candidate passwords, separated by
// comma and space. A trailing line break is removed, as are trailing empty
// items. Empty items between separators are kept. Apart from that candidates
// are taken literally, including any white space.
func SplitCandidates(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil
	}
	candidates := strings.Split(line, CandidateSeparator)
	for len(candidates) > 0 && candidates[len(candidates)-1] == "" {
		candidates = candidates[:len(candidates)-1]
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates
}
