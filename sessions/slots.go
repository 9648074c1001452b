package sessions

import "sort"

// Slot identifies one live connection. Slots are dense: the lowest free ID
// is always handed out next, so a steady population of N connections uses
// IDs 0..N-1.
type Slot uint32

// slots hands out IDs from a linear range and reuses returned ones.
// returned holds the holes in [0, next), sorted ascending.
type slots struct {
	next     Slot
	returned []Slot
}

// take returns the lowest free slot ID.
func (s *slots) take() Slot {
	if len(s.returned) > 0 {
		id := s.returned[0]
		s.returned = s.returned[1:]
		return id
	}
	id := s.next
	s.next++
	return id
}

// restore returns a slot ID to the free pool. Returning the highest live ID
// shrinks the range, swallowing any holes that now sit at its top.
func (s *slots) restore(id Slot) {
	if s.next > 0 && id == s.next-1 {
		s.next--
		for n := len(s.returned); n > 0 && s.next > 0 && s.returned[n-1] == s.next-1; n = len(s.returned) {
			s.returned = s.returned[:n-1]
			s.next--
		}
		return
	}
	s.returned = append(s.returned, id)
	sort.Slice(s.returned, func(i, j int) bool { return s.returned[i] < s.returned[j] })
}

// live returns the number of IDs currently handed out.
func (s *slots) live() int {
	return int(s.next) - len(s.returned)
}
