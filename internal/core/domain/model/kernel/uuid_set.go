package kernel

import "github.com/google/uuid"

// UUIDSet is an insertion-ordered set of identifiers. It backs status allow-lists,
// contracted-service ids and confirmed-service ids, where duplicates carry no meaning
// but a stable order keeps persistence and API output deterministic.
//
// UUIDSet is immutable: Add returns a new set.
type UUIDSet struct {
	ids   []UUID
	index map[uuid.UUID]struct{}
}

// NewUUIDSet builds a set from ids, dropping duplicates and keeping first occurrence order.
func NewUUIDSet(ids ...UUID) UUIDSet {
	s := UUIDSet{
		ids:   make([]UUID, 0, len(ids)),
		index: make(map[uuid.UUID]struct{}, len(ids)),
	}
	for _, id := range ids {
		if _, ok := s.index[id.id]; ok {
			continue
		}
		s.index[id.id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

// Contains reports membership.
func (s UUIDSet) Contains(id UUID) bool {
	_, ok := s.index[id.id]
	return ok
}

// Len returns the number of distinct ids.
func (s UUIDSet) Len() int {
	return len(s.ids)
}

// IsEmpty reports whether the set has no ids.
func (s UUIDSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// Slice returns a copy of the ids in insertion order.
func (s UUIDSet) Slice() []UUID {
	out := make([]UUID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Strings returns the ids in insertion order as strings.
func (s UUIDSet) Strings() []string {
	out := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, id.String())
	}
	return out
}

// Add returns a new set that also contains id.
func (s UUIDSet) Add(id UUID) UUIDSet {
	return NewUUIDSet(append(s.Slice(), id)...)
}

// Equal compares as sets; order is ignored.
func (s UUIDSet) Equal(other UUIDSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Missing returns the ids of s that are absent from other, in s order.
func (s UUIDSet) Missing(other UUIDSet) []UUID {
	missing := make([]UUID, 0)
	for _, id := range s.ids {
		if !other.Contains(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// IsSubsetOf reports whether every id of s is in other.
func (s UUIDSet) IsSubsetOf(other UUIDSet) bool {
	return len(s.Missing(other)) == 0
}

// UUIDSetFromStrings parses every element and builds a set.
func UUIDSetFromStrings(values []string) (UUIDSet, error) {
	ids := make([]UUID, 0, len(values))
	for _, v := range values {
		id, err := UUIDFromString(v)
		if err != nil {
			return UUIDSet{}, err
		}
		ids = append(ids, id)
	}
	return NewUUIDSet(ids...), nil
}
