package generator

import "strconv"

// IDSequence hands out identifiers for one generation call. Next("input")
// yields input-1, input-2 and so on, counting each key separately. A sequence
// is owned by a single call and is not safe for concurrent use; create a fresh
// one per call so output does not depend on earlier calls.
type IDSequence struct {
	counts map[string]int
}

// NewIDSequence returns an empty sequence.
func NewIDSequence() *IDSequence {
	return &IDSequence{counts: make(map[string]int)}
}

// Next returns the next identifier for key.
func (s *IDSequence) Next(key string) string {
	if s.counts == nil {
		s.counts = make(map[string]int)
	}
	s.counts[key]++
	return key + "-" + strconv.Itoa(s.counts[key])
}

// Issued reports how many identifiers were handed out for key.
func (s *IDSequence) Issued(key string) int {
	return s.counts[key]
}
