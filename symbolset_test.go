package img2ascii

import (
	"slices"
	"testing"
)

func TestSymbolSetAddRemove(t *testing.T) {
	s := NewSymbolSet('c', 'a', 'b', 'a')
	if s.Len() != 3 {
		t.Fatalf("Expected duplicates to be dropped, got %d symbols", s.Len())
	}
	if got := s.Runes(); !slices.Equal(got, []rune{'c', 'a', 'b'}) {
		t.Errorf("Runes() = %q, want insertion order", got)
	}
	if got := s.Sorted(); !slices.Equal(got, []rune{'a', 'b', 'c'}) {
		t.Errorf("Sorted() = %q, want [a b c]", got)
	}

	s.Add('a')
	if got := s.Runes(); !slices.Equal(got, []rune{'c', 'a', 'b'}) {
		t.Errorf("Re-adding should not move a symbol, got %q", got)
	}

	s.Remove('a')
	s.Remove('z')
	if s.Contains('a') {
		t.Error("Expected 'a' to be removed")
	}
	if got := s.Runes(); !slices.Equal(got, []rune{'c', 'b'}) {
		t.Errorf("Runes() after remove = %q, want [c b]", got)
	}
}

func TestSymbolSetRanges(t *testing.T) {
	s := NewSymbolSet()
	s.AddRange('0', '9')
	if s.Len() != 10 {
		t.Fatalf("Expected 10 digits, got %d", s.Len())
	}

	s.RemoveRange('7', '3')
	want := []rune{'0', '1', '2', '8', '9'}
	if got := s.Sorted(); !slices.Equal(got, want) {
		t.Errorf("After RemoveRange(7, 3) got %q, want %q", got, want)
	}

	s.AddRange('b', 'a')
	if !s.Contains('a') || !s.Contains('b') {
		t.Error("Reversed AddRange should add both bounds")
	}

	s.AddRange('x', 'x')
	if !s.Contains('x') {
		t.Error("Single element range should add its bound")
	}
}

func TestSymbolSetPrintableRange(t *testing.T) {
	s := NewSymbolSet()
	s.AddRange(' ', '~')
	if s.Len() != 95 {
		t.Errorf("Expected 95 printable ASCII symbols, got %d", s.Len())
	}
}

func TestSymbolSetString(t *testing.T) {
	s := NewSymbolSet('b', 'a', 'c')
	if got := s.String(); got != "a b c " {
		t.Errorf("String() = %q, want %q", got, "a b c ")
	}
	if got := NewSymbolSet().String(); got != "" {
		t.Errorf("Empty set String() = %q, want empty", got)
	}
}

func TestSymbolSetRunesIsCopy(t *testing.T) {
	s := NewSymbolSet('a', 'b')
	runes := s.Runes()
	runes[0] = 'z'
	if s.Contains('z') || !slices.Equal(s.Runes(), []rune{'a', 'b'}) {
		t.Error("Mutating Runes() result should not affect the set")
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		expr   string
		lo, hi rune
		ok     bool
	}{
		{"a", 'a', 'a', true},
		{"-", '-', '-', true},
		{"é", 'é', 'é', true},
		{"all", ' ', '~', true},
		{"space", ' ', ' ', true},
		{"0-9", '0', '9', true},
		{"z-a", 'a', 'z', true},
		{"---", '-', '-', true},
		{"", 0, 0, false},
		{"ab", 0, 0, false},
		{"a-", 0, 0, false},
		{"a+b", 0, 0, false},
		{"a-bc", 0, 0, false},
		{"ALL", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			lo, hi, ok := ParseRange(tt.expr)
			if ok != tt.ok || lo != tt.lo || hi != tt.hi {
				t.Errorf("ParseRange(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.expr, lo, hi, ok, tt.lo, tt.hi, tt.ok)
			}
		})
	}
}
