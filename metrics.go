package ucsbuf

// Stats contains a point-in-time snapshot of Buffer memory accounting.
type Stats struct {
	Committed     int // bytes committed across live links
	Capacity      int // total capacity of live links
	Links         int // live links in the chain
	SpareLinks    int // detached links retained for reuse
	SpareCapacity int // total capacity of spare links
}

// Utilization returns the ratio of committed bytes to all held capacity,
// spares included (0.0 to 1.0). Returns 0.0 when nothing is allocated.
func (s Stats) Utilization() float64 {
	total := s.Capacity + s.SpareCapacity
	if total == 0 {
		return 0
	}
	return float64(s.Committed) / float64(total)
}

// LinkStat describes a single link in the chain.
type LinkStat struct {
	Committed int
	Capacity  int
}

// LinkStats returns per-link accounting for the live chain, head first. Like
// Stats, taking the snapshot is not a mutation.
func (b *Buffer) LinkStats() []LinkStat {
	b.check()
	out := make([]LinkStat, len(b.links))
	for i, l := range b.links {
		out[i] = LinkStat{Committed: len(l), Capacity: cap(l)}
	}
	return out
}

// Stats returns a snapshot of Buffer statistics. Taking a snapshot is not a
// mutation: outstanding Views stay valid.
func (b *Buffer) Stats() Stats {
	b.check()
	var s Stats
	s.Links = len(b.links)
	s.SpareLinks = len(b.spare)
	for _, l := range b.links {
		s.Committed += len(l)
		s.Capacity += cap(l)
	}
	for _, l := range b.spare {
		s.SpareCapacity += cap(l)
	}
	return s
}
