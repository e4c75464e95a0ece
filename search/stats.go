package search

// Stats counts what a search did. Counters are plain fields carried by the
// solver and returned to the caller, never ambient globals, so runs stay
// deterministic and comparable.
type Stats struct {
	Nodes        uint64
	Lookups      uint64
	Hits         uint64
	Stores       uint64
	Cutoffs      uint64
	KillerWins   uint64
	ForcedBlocks uint64
}

// Merge folds other into s.
func (s *Stats) Merge(other Stats) {
	s.Nodes += other.Nodes
	s.Lookups += other.Lookups
	s.Hits += other.Hits
	s.Stores += other.Stores
	s.Cutoffs += other.Cutoffs
	s.KillerWins += other.KillerWins
	s.ForcedBlocks += other.ForcedBlocks
}
