package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if got := s.GetCell(5, 5); got != (Cell{Rune: 'X', Color: ColorRed}) {
		t.Errorf("GetCell(5, 5) = %+v", got)
	}

	// Set keeps the color already in the cell.
	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Rune != 'Y' || got.Color != ColorRed {
		t.Errorf("after Set, GetCell(5, 5) = %+v", got)
	}

	// Out of bounds is silent.
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColored(0, -1, 'A', ColorBlue)
	s.SetColored(0, 100, 'A', ColorBlue)

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{name: "plain", x: 0, text: "Hello", expected: "Hello     "},
		{name: "offset", x: 3, text: "abc", expected: "   abc    "},
		{name: "clipped", x: 7, text: "abcdef", expected: "       abc"},
		{name: "multibyte", x: 0, text: "→ Gear", expected: "→ Gear    "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			s.DrawText(tc.x, 0, tc.text)
			if got := s.Row(0); got != tc.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorCyan)

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(4, 0).Color != ColorCyan {
		t.Error("centered text should carry its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorGray)

	expected := strings.Join([]string{
		"┌───┐",
		"│   │",
		"└───┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'X')
	s.Resize(6, 2)

	if s.Width() != 6 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 6x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("resize should clear content")
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionTarget) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionTarget)
	f.Set(ActionTurnLeft)
	if !f.Has(ActionTarget) || !f.Has(ActionTurnLeft) || f.Has(ActionTurnUp) {
		t.Errorf("unexpected actions %v", f.Actions)
	}
	f.Clear()
	if f.Has(ActionTarget) {
		t.Error("Clear should drop all actions")
	}
	if ActionSolve.String() != "Solve" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
