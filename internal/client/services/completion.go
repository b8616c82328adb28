package services

import "slices"

// CompletionSet is a set of course ids that remembers insertion order, so
// the persisted list reads in the order courses were completed.
type CompletionSet struct {
	ids []int
}

// NewCompletionSet builds a set from ids, dropping duplicates.
func NewCompletionSet(ids ...int) *CompletionSet {
	s := &CompletionSet{ids: make([]int, 0, len(ids))}
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

func (s *CompletionSet) Has(id int) bool {
	return slices.Contains(s.ids, id)
}

// Toggle flips membership of id and reports whether it is now present.
func (s *CompletionSet) Toggle(id int) bool {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// IDs returns a copy of the members in insertion order.
func (s *CompletionSet) IDs() []int {
	return slices.Clone(s.ids)
}

func (s *CompletionSet) Len() int {
	return len(s.ids)
}

func (s *CompletionSet) Clone() *CompletionSet {
	return &CompletionSet{ids: slices.Clone(s.ids)}
}

// Filter returns a new set holding only the ids keep accepts, plus the ids
// that were dropped.
func (s *CompletionSet) Filter(keep func(id int) bool) (*CompletionSet, []int) {
	out := &CompletionSet{ids: make([]int, 0, len(s.ids))}
	var dropped []int
	for _, id := range s.ids {
		if keep(id) {
			out.ids = append(out.ids, id)
		} else {
			dropped = append(dropped, id)
		}
	}
	return out, dropped
}
