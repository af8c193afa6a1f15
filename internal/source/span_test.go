package source

import (
	"testing"
)

func TestSpan_ShiftLeft(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{"shift normal span left by 5", Span{File: 1, Start: 10, End: 20}, 5, Span{File: 1, Start: 5, End: 15}},
		{"shift by 0", Span{File: 1, Start: 10, End: 20}, 0, Span{File: 1, Start: 10, End: 20}},
		{"shift equals start", Span{File: 1, Start: 10, End: 20}, 10, Span{File: 1, Start: 0, End: 10}},
		{"shift larger than start returns original", Span{File: 1, Start: 10, End: 20}, 15, Span{File: 1, Start: 10, End: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.ShiftLeft(tt.shift); got != tt.expected {
				t.Fatalf("ShiftLeft(%d) = %v, want %v", tt.shift, got, tt.expected)
			}
		})
	}
}

func TestSpan_ShiftRight(t *testing.T) {
	got := Span{File: 2, Start: 3, End: 7}.ShiftRight(4)
	want := Span{File: 2, Start: 7, End: 11}
	if got != want {
		t.Fatalf("ShiftRight = %v, want %v", got, want)
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must keep receiver, got %v", got)
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{Span{Start: 0, End: 5}, Span{Start: 4, End: 6}, true},
		{Span{Start: 0, End: 5}, Span{Start: 5, End: 6}, false},
		{Span{Start: 3, End: 3}, Span{Start: 0, End: 6}, false},
		{Span{File: 1, Start: 0, End: 5}, Span{File: 2, Start: 0, End: 5}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Fatalf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSpan_ContainsAndLen(t *testing.T) {
	s := Span{Start: 2, End: 6}
	if s.Len() != 4 || s.Empty() {
		t.Fatalf("unexpected Len/Empty for %v", s)
	}
	if !s.Contains(2) || !s.Contains(5) || s.Contains(6) {
		t.Fatalf("Contains must follow half-open semantics")
	}
}
