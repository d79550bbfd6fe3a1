package pwdict

import (
	"github.com/npillmayer/pwdict/chaining"
	"github.com/npillmayer/pwdict/probing"
)

// Names under which the two tables report diagnostics.
const (
	TableChained = "chained"
	TableProbing = "probing"
)

// TableStats reports density metrics for one table of an index.
type TableStats struct {
	Backend  string
	Entries  int
	Capacity int
	Used     int // non-empty buckets (chained) or occupied slots (probing)
	Longest  int // longest chain (chained) or longest cluster (probing)
}

// FillRatio returns the share of used buckets or slots.
func (s TableStats) FillRatio() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Used) / float64(s.Capacity)
}

// IndexStats holds the statistics of both tables of an index.
type IndexStats struct {
	Chained TableStats
	Probing TableStats
}

// membershipTable is the internal backend abstraction both tables satisfy.
type membershipTable interface {
	Search(key string, multiplier int) (bool, int)
	Len() int
	Capacity() int
}

var (
	_ membershipTable = (*chaining.Table)(nil)
	_ membershipTable = (*probing.Table)(nil)
)

func chainedStats(t *chaining.Table) TableStats {
	s := t.Stats()
	return TableStats{
		Backend:  TableChained,
		Entries:  s.Entries,
		Capacity: s.Capacity,
		Used:     s.UsedBuckets,
		Longest:  s.LongestChain,
	}
}

func probingStats(t *probing.Table) TableStats {
	s := t.Stats()
	return TableStats{
		Backend:  TableProbing,
		Entries:  s.Entries,
		Capacity: s.Capacity,
		Used:     s.Entries,
		Longest:  s.LongestCluster,
	}
}
