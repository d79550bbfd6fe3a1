package strhash

import (
	"math"
	"strings"
	"testing"
)

func TestIndexKnownValues(t *testing.T) {
	tests := []struct {
		key      string
		capacity int
		strided  bool
		want     int
	}{
		{key: "abc", capacity: 1000, strided: true, want: 518},
		{key: "abc", capacity: 20000, strided: false, want: 16518},
		{key: "password", capacity: 1000, strided: true, want: 763},
		{key: "password", capacity: 20000, strided: false, want: 12763},
		{key: "dragon", capacity: 1000, strided: true, want: 973}, // accumulator wraps negative
		{key: "dragon", capacity: 20000, strided: false, want: 5973},
		{key: "supercalifragilistic", capacity: 1000, strided: true, want: 624},
		{key: "supercalifragilistic", capacity: 20000, strided: false, want: 5391},
		{key: "", capacity: 1000, strided: true, want: 0},
		{key: "", capacity: 20000, strided: false, want: 0},
	}
	for _, tt := range tests {
		if got := Index(tt.key, 37, tt.capacity, tt.strided); got != tt.want {
			t.Errorf("Index(%q, 37, %d, %v) = %d, want %d", tt.key, tt.capacity, tt.strided, got, tt.want)
		}
	}
}

func TestSum32Wraps(t *testing.T) {
	if h := Sum32("dragon", 37, false); h != -1436825973 {
		t.Fatalf("expected wrapped accumulator -1436825973, got %d", h)
	}
}

func TestStridedSamplingCollides(t *testing.T) {
	// 20 runes => skip 2, the last rune (index 19) is never sampled
	a := Index("supercalifragilistic", 37, 1000, true)
	b := Index("supercalifragilistix", 37, 1000, true)
	if a != b {
		t.Fatalf("keys differing in an unsampled position should collide, got %d and %d", a, b)
	}
	a = Index("supercalifragilistic", 37, 20000, false)
	b = Index("supercalifragilistix", 37, 20000, false)
	if a == b {
		t.Fatalf("full hashing should separate the keys, both are %d", a)
	}
}

func TestIndexDeterministic(t *testing.T) {
	for _, h := range []Hasher{Polynomial{}, Polynomial{Strided: true}, XXHash{}} {
		first := h.Index("sunshine", 37, 977)
		for range 10 {
			if got := h.Index("sunshine", 37, 977); got != first {
				t.Fatalf("%v: index changed from %d to %d", h, first, got)
			}
		}
	}
}

func TestIndexRange(t *testing.T) {
	keys := []string{"", "a", "password", "Mädchen", "übergröße", "日本語のパスワード",
		strings.Repeat("z", 257), "\U0001F600smile"}
	for _, capacity := range []int{1, 2, 7, 1000, 20000, math.MaxInt32} {
		for _, m := range []int{1, 31, 37, -37, 65599} {
			for _, key := range keys {
				for _, h := range []Hasher{Polynomial{}, Polynomial{Strided: true}, XXHash{}} {
					got := h.Index(key, m, capacity)
					if got < 0 || got >= capacity {
						t.Fatalf("%v: Index(%q, %d, %d) = %d out of range", h, key, m, capacity, got)
					}
				}
			}
		}
	}
}

func TestReduceMinInt32(t *testing.T) {
	for _, capacity := range []int{1, 3, 1000, math.MaxInt32} {
		got := reduce(math.MinInt32, capacity)
		if got < 0 || got >= capacity {
			t.Fatalf("reduce(MinInt32, %d) = %d out of range", capacity, got)
		}
	}
}

func TestIndexPanicsOnBadCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for capacity 0")
		}
	}()
	Index("x", 37, 0, false)
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		h, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) failed: %v", name, err)
		}
		if s, ok := h.(interface{ String() string }); !ok || s.String() != name {
			t.Fatalf("ByName(%q) returned %v", name, h)
		}
	}
	if _, err := ByName("murmur"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}
