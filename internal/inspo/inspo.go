// Package inspo keeps the customer's inspiration images for one session.
package inspo

// Set is an ordered collection of image references with no duplicates.
// References are compared by exact string equality. The zero value is an
// empty set ready to use. A Set is not safe for concurrent use.
type Set struct {
	refs  []string
	index map[string]struct{}
}

// Add appends ref unless it is empty or already present. It reports whether
// the set changed.
func (s *Set) Add(ref string) bool {
	if ref == "" || s.Contains(ref) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[ref] = struct{}{}
	s.refs = append(s.refs, ref)
	return true
}

// Remove drops ref. Removing a reference that is not present is a no-op.
func (s *Set) Remove(ref string) bool {
	if !s.Contains(ref) {
		return false
	}
	delete(s.index, ref)
	for i, r := range s.refs {
		if r == ref {
			s.refs = append(s.refs[:i], s.refs[i+1:]...)
			break
		}
	}
	return true
}

func (s *Set) Contains(ref string) bool {
	_, ok := s.index[ref]
	return ok
}

func (s *Set) Len() int {
	return len(s.refs)
}

// List returns the references in insertion order.
func (s *Set) List() []string {
	return append([]string{}, s.refs...)
}

// Clear empties the set, e.g. after a successful submission.
func (s *Set) Clear() {
	s.refs = nil
	s.index = nil
}
