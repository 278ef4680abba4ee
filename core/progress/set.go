package progress

import "sort"

// Set holds the ids of the items a user has marked done. It may contain ids
// that are no longer reachable from the catalog; counting simply ignores them.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips the membership of id and reports the new state.
func (s Set) Toggle(id string) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) Clone() Set {
	clone := make(Set, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}

// IDs returns the members sorted, for deterministic persistence payloads.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
