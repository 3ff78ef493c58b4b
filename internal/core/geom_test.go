package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	if r.Right() != 12 || r.Bottom() != 7 {
		t.Errorf("Right/Bottom = %d/%d, expected 12/7", r.Right(), r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 10, 4)
	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"origin", 2, 3, true},
		{"inside", 6, 5, true},
		{"last cell", 11, 6, true},
		{"right edge", 12, 3, false},
		{"bottom edge", 2, 7, false},
		{"left of origin", 1, 3, false},
		{"above origin", 2, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		n        int
		expected Rect
	}{
		{"tunnel box border", NewRect(14, 3, 14, 5), 1, NewRect(15, 4, 12, 3)},
		{"zero", NewRect(2, 3, 10, 4), 0, NewRect(2, 3, 10, 4)},
		{"collapses height", NewRect(2, 3, 10, 4), 3, NewRect(5, 6, 4, 0)},
		{"collapses both", NewRect(0, 0, 2, 2), 2, NewRect(2, 2, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inset(tt.n); got != tt.expected {
				t.Errorf("Inset(%d) = %+v, expected %+v", tt.n, got, tt.expected)
			}
		})
	}

	// An empty inset contains nothing, so box text past the border is dropped.
	if in := NewRect(0, 0, 5, 2).Inset(1); in.Contains(in.X, in.Y) {
		t.Errorf("empty inset %+v should contain nothing", in)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, lo, hi, expected int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
		{-7, 0, 12, 0}, // Text wider than a tunnel box starts at its left edge
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
