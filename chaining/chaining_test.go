package chaining

import (
	"fmt"
	"testing"

	"github.com/npillmayer/pwdict/strhash"
)

func TestNewRejectsBadCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		if _, err := New(c); err == nil {
			t.Fatalf("expected error for capacity %d", c)
		}
	}
}

func TestInsertSearch(t *testing.T) {
	table, err := New(1000)
	if err != nil {
		t.Fatal(err)
	}
	words := []string{"password", "dragon", "sunshine", ""}
	for i, w := range words {
		table.Insert(w, i+1, 37)
	}
	for _, w := range words {
		if found, c := table.Search(w, 37); !found || c < 1 {
			t.Fatalf("%q should be found with at least one comparison, got found=%v comparisons=%d", w, found, c)
		}
	}
	if found, _ := table.Search("letmein", 37); found {
		t.Fatalf("letmein was never inserted")
	}
	if table.Len() != len(words) {
		t.Fatalf("expected %d entries, have %d", len(words), table.Len())
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	table, _ := New(1)
	table.Insert("alpha", 1, 37)
	table.Insert("beta", 2, 37)
	_, before := table.Search("beta", 37)
	table.Insert("beta", 3, 37)
	table.Insert("alpha", 4, 37)
	_, after := table.Search("beta", 37)
	if before != after {
		t.Fatalf("duplicate insert changed comparisons from %d to %d", before, after)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 entries, have %d", table.Len())
	}
	if e, ok := table.Get("beta", 37); !ok || e.Ordinal != 2 {
		t.Fatalf("expected first ordinal to be kept, got %+v", e)
	}
	if s := table.Stats(); s.LongestChain != 2 {
		t.Fatalf("chain should not grow on duplicates, longest is %d", s.LongestChain)
	}
}

func TestComparisonsFollowChainPosition(t *testing.T) {
	table, _ := New(1) // single bucket, one chain in insertion order
	keys := []string{"k0", "k1", "k2", "k3", "k4"}
	for i, k := range keys {
		table.Insert(k, i+1, 37)
	}
	for pos, k := range keys {
		found, c := table.Search(k, 37)
		if !found || c != pos+1 {
			t.Fatalf("%q at position %d: found=%v comparisons=%d, want %d", k, pos, found, c, pos+1)
		}
		if table.LastComparisons() != c {
			t.Fatalf("LastComparisons is %d, want %d", table.LastComparisons(), c)
		}
	}
	found, c := table.Search("missing", 37)
	if found || c != len(keys) {
		t.Fatalf("miss should scan the whole chain: found=%v comparisons=%d", found, c)
	}
}

func TestStridedCollisionsStayDistinct(t *testing.T) {
	table, _ := New(1000)
	table.Insert("supercalifragilistic", 1, 37)
	table.Insert("supercalifragilistix", 2, 37)
	if found, c := table.Search("supercalifragilistix", 37); !found || c != 2 {
		t.Fatalf("colliding key should be second in chain: found=%v comparisons=%d", found, c)
	}
	if s := table.Stats(); s.UsedBuckets != 1 || s.Entries != 2 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestWithHasher(t *testing.T) {
	table, _ := New(97, WithHasher(strhash.XXHash{}))
	for i := range 500 {
		table.Insert(fmt.Sprintf("word%03d", i), i+1, 37)
	}
	for i := range 500 {
		if found, _ := table.Search(fmt.Sprintf("word%03d", i), 37); !found {
			t.Fatalf("word%03d not found", i)
		}
	}
	s := table.Stats()
	if s.Entries != 500 || s.Capacity != 97 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if lf := s.LoadFactor(); lf < 5 || lf > 6 {
		t.Fatalf("load factor should be 500/97, is %f", lf)
	}
}
