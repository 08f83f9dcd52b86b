package naming

import (
	"fmt"
	"sync"
)

// NameSet tracks name stems claimed within one planning pass plus stems
// already present in the destination directory, and resolves duplicates by
// appending "_N" suffixes. Suffixes are assigned in claim order, so a plan
// built twice over an unchanged directory yields identical names. All
// methods are goroutine-safe.
type NameSet struct {
	mu       sync.Mutex
	used     map[string]bool
	counters map[string]int // base stem → next suffix to try
}

// NewNameSet creates a ready-to-use set.
func NewNameSet() *NameSet {
	return &NameSet{
		used:     make(map[string]bool),
		counters: make(map[string]int),
	}
}

// Add marks stem as taken without assigning a suffix. Used to pre-seed the
// set with names already on disk.
func (s *NameSet) Add(stem string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[stem] = true
}

// Claim reserves stem, or the first free "stem_N" variant when stem is
// already taken. It returns the reserved stem and the suffix used (0 when
// the stem was free).
func (s *NameSet) Claim(stem string) (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.used[stem] {
		s.used[stem] = true
		return stem, 0
	}

	counter := s.counters[stem]
	if counter == 0 {
		counter = 1
	}
	for {
		candidate := fmt.Sprintf("%s_%d", stem, counter)
		if !s.used[candidate] {
			s.counters[stem] = counter + 1
			s.used[candidate] = true
			return candidate, counter
		}
		counter++
	}
}
