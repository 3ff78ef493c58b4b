package tunnels

import (
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

// Symbol is the landmark drawn in one cell of the cube.
type Symbol struct {
	Name  string
	Glyph rune
}

// canonicalSymbols is the rule-seed 1 layout, indexed by cell.
var canonicalSymbols = [maze.CellCount]Symbol{
	{"Chip", '▦'}, {"Ring", '○'}, {"Drop", '◊'},
	{"Cube", '■'}, {"Cloud", '☁'}, {"Command", '⌘'},
	{"Heart monitor", '∿'}, {"Anchor", '†'}, {"Medal", '✪'},
	{"Lock", '⊡'}, {"Crossing", '╳'}, {"Moon", '☾'},
	{"Globe", '⊕'}, {"Heart", '♥'}, {"Link", '∞'},
	{"Eye", '◉'}, {"Feather", '∫'}, {"Flag", '⚑'},
	{"Chart", '▟'}, {"Umbrella", '☂'}, {"Wind", '≋'},
	{"Shield", '▽'}, {"Star", '★'}, {"Sun", '☼'},
	{"Quarter", '◔'}, {"Radio", '⌁'}, {"Gear", '⚙'},
}

// SymbolSet assigns a symbol to every cell.
type SymbolSet [maze.CellCount]Symbol

// NewSymbolSet returns the layout for a rule seed. Seed 1 is the canonical
// layout; other seeds permute it deterministically.
func NewSymbolSet(ruleSeed int) SymbolSet {
	set := SymbolSet(canonicalSymbols)
	if ruleSeed == 1 {
		return set
	}
	rng := rand.New(rand.NewSource(int64(ruleSeed)))
	rng.Shuffle(len(set), func(i, j int) {
		set[i], set[j] = set[j], set[i]
	})
	return set
}

// At returns the symbol of a cell, or a placeholder for invalid cells.
func (s *SymbolSet) At(c maze.Cell) Symbol {
	if !c.Valid() {
		return Symbol{Name: "?", Glyph: '?'}
	}
	return s[c]
}

// Name returns the symbol name of a cell.
func (s *SymbolSet) Name(c maze.Cell) string {
	return s.At(c).Name
}

// Lookup finds the cell carrying the named symbol, ignoring case.
func (s *SymbolSet) Lookup(name string) (maze.Cell, bool) {
	for i, sym := range s {
		if strings.EqualFold(sym.Name, name) {
			return maze.Cell(i), true
		}
	}
	return 0, false
}
