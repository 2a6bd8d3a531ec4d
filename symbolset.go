package img2ascii

import (
	"slices"
	"strings"
	"sync"
)

// SymbolSet is a set of symbols that remembers insertion order.
// A SymbolSet is safe for concurrent use.
type SymbolSet struct {
	mu      sync.RWMutex
	order   []rune
	members map[rune]struct{}
}

// NewSymbolSet creates a set holding runes, in the given order.
func NewSymbolSet(runes ...rune) *SymbolSet {
	s := &SymbolSet{members: make(map[rune]struct{})}
	for _, r := range runes {
		s.add(r)
	}
	return s
}

// Add inserts r. Adding an existing symbol does not move it.
func (s *SymbolSet) Add(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(r)
}

func (s *SymbolSet) add(r rune) {
	if _, exists := s.members[r]; !exists {
		s.order = append(s.order, r)
		s.members[r] = struct{}{}
	}
}

// Remove deletes r if present.
func (s *SymbolSet) Remove(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(r)
}

func (s *SymbolSet) remove(r rune) {
	if _, exists := s.members[r]; exists {
		delete(s.members, r)
		if i := slices.Index(s.order, r); i >= 0 {
			s.order = slices.Delete(s.order, i, i+1)
		}
	}
}

// AddRange inserts every symbol from lo to hi inclusive, ascending. The
// bounds are swapped when lo > hi.
func (s *SymbolSet) AddRange(lo, hi rune) {
	if lo > hi {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for r := lo; ; r++ {
		s.add(r)
		if r == hi {
			break
		}
	}
}

// RemoveRange deletes every symbol from lo to hi inclusive. The bounds
// are swapped when lo > hi.
func (s *SymbolSet) RemoveRange(lo, hi rune) {
	if lo > hi {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for r := lo; ; r++ {
		s.remove(r)
		if r == hi {
			break
		}
	}
}

// Contains reports whether r is in the set.
func (s *SymbolSet) Contains(r rune) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[r]
	return ok
}

// Len returns the number of symbols.
func (s *SymbolSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Runes returns the symbols in insertion order.
func (s *SymbolSet) Runes() []rune {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Sorted returns the symbols in ascending code point order.
func (s *SymbolSet) Sorted() []rune {
	out := s.Runes()
	slices.Sort(out)
	return out
}

// String lists the sorted symbols, each followed by a space.
func (s *SymbolSet) String() string {
	var sb strings.Builder
	for _, r := range s.Sorted() {
		sb.WriteRune(r)
		sb.WriteByte(' ')
	}
	return sb.String()
}

// Bounds of the "all" range: printable ASCII.
const (
	FirstPrintable = ' '
	LastPrintable  = '~'
)

// ParseRange parses a symbol range expression: a single symbol, "all"
// (printable ASCII), "space", or "a-b". The bounds are returned ascending.
// A single symbol is checked first, so "-" is the hyphen itself.
func ParseRange(expr string) (lo, hi rune, ok bool) {
	runes := []rune(expr)
	switch {
	case len(runes) == 1:
		lo, hi = runes[0], runes[0]
	case expr == "all":
		lo, hi = FirstPrintable, LastPrintable
	case expr == "space":
		lo, hi = ' ', ' '
	case len(runes) == 3 && runes[1] == '-':
		lo, hi = runes[0], runes[2]
	default:
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}
