package wordlist

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/npillmayer/pwdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	src := strings.NewReader("password\n  dragon \r\n\n\t\nsun,shine\nübergröße")
	r := NewReader(src)
	words, err := ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "dragon", "sun,shine", "übergröße"}, words)
	assert.Equal(t, 6, r.Line())
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderError(t *testing.T) {
	r := NewReader(iotest.ErrReader(errors.New("device gone")))
	_, err := r.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
}

func TestSplitCandidates(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{line: "password1, Xk9#mQ2z, short\n", want: []string{"password1", "Xk9#mQ2z", "short"}},
		{line: "single", want: []string{"single"}},
		{line: "a,b, c", want: []string{"a,b", "c"}},
		{line: "x, , y", want: []string{"x", "", "y"}},
		{line: ", x", want: []string{"", "x"}},
		{line: "trailing, ", want: []string{"trailing"}},
		{line: "trailing, , ", want: []string{"trailing"}},
		{line: ", ", want: nil},
		{line: "", want: nil},
		{line: "\r\n", want: nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitCandidates(tt.line), "line %q", tt.line)
	}
}

func TestLoadDictionary(t *testing.T) {
	idx, err := LoadDictionary(strings.NewReader("password\ndragon\nsunshine\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
	assert.True(t, idx.Contains("sunshine", pwdict.DefaultMultiplier))
	assert.False(t, pwdict.IsStrongPassword("sunshine7", idx, pwdict.DefaultMultiplier))
	assert.True(t, pwdict.IsStrongPassword("Xk9#mQ2z", idx, pwdict.DefaultMultiplier))

	s := idx.Stats()
	assert.Equal(t, pwdict.DefaultChainedCapacity, s.Chained.Capacity)
	assert.Equal(t, pwdict.DefaultProbingCapacity, s.Probing.Capacity)
}

func TestLoadDictionaryCustomCapacities(t *testing.T) {
	idx, err := LoadDictionary(strings.NewReader("a\nb\nc\n"), Options{ChainedCapacity: 2, ProbingCapacity: 5, Multiplier: 31})
	require.NoError(t, err)
	assert.True(t, idx.Contains("b", 31))
	assert.Equal(t, 5, idx.Stats().Probing.Capacity)
}

func TestLoadDictionaryEmpty(t *testing.T) {
	_, err := LoadDictionary(strings.NewReader("\n   \n"), Options{})
	assert.ErrorIs(t, err, pwdict.ErrSourceUnavailable)
}
