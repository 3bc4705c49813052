package engine

// Selection holds the address the user picked. The zero value is empty.
type Selection struct {
	candidate *AddressCandidate
}

// Set replaces the current selection.
func (s *Selection) Set(c AddressCandidate) {
	s.candidate = &c
}

// Clear forgets the current selection.
func (s *Selection) Clear() {
	s.candidate = nil
}

// Location returns the selected coordinates.
func (s *Selection) Location() (Location, bool) {
	if s == nil || s.candidate == nil {
		return Location{}, false
	}
	return s.candidate.Location, true
}

// Candidate returns the selected candidate, or nil.
func (s *Selection) Candidate() *AddressCandidate {
	if s == nil {
		return nil
	}
	return s.candidate
}
