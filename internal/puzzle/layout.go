// Package puzzle lays out sliding-tile boards: it cuts a picture into a
// grid, shuffles the pieces and checks when they are back in order.
package puzzle

import (
	"github.com/abhisek/playarcade/internal/shuffle"
)

// Kind records which fallback produced a board's tiles.
type Kind int

const (
	// KindSliced tiles each carry their own PNG fragment.
	KindSliced Kind = iota
	// KindOffset tiles reference the whole image with a per-tile offset.
	KindOffset
	// KindAbstract tiles carry no picture and are told apart by number.
	KindAbstract
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindSliced:
		return "sliced"
	case KindOffset:
		return "offset"
	default:
		return "abstract"
	}
}

// Offset positions the whole image behind one tile, in percent, the way a
// CSS background-position would.
type Offset struct {
	X, Y float64
}

// Tile is one piece of the board. Canonical never changes after layout;
// Current is the slot the piece occupies now.
type Tile struct {
	Canonical int
	Current   int
	Fragment  []byte  // PNG bytes, KindSliced only
	Offset    *Offset // KindOffset only
}

// Layout is a shuffled board. Tiles are indexed by canonical index.
type Layout struct {
	Grid  int
	Kind  Kind
	Image string // source reference, used to render KindOffset tiles

	tiles []Tile
	slots []int // slot -> canonical index of the tile in it
}

// newLayout arranges tiles with a shuffled, never-solved start.
func newLayout(grid int, kind Kind, image string, tiles []Tile, src shuffle.Source) *Layout {
	l := &Layout{Grid: grid, Kind: kind, Image: image, tiles: tiles}
	l.Reshuffle(src)
	return l
}

// Reshuffle deals the tiles into a new random arrangement. When the
// shuffle happens to come out solved, the first two tiles are swapped so
// the board always starts unsolved.
func (l *Layout) Reshuffle(src shuffle.Source) {
	n := len(l.tiles)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	shuffle.Slice(src, order)
	l.place(order)

	if n >= 2 && l.Solved() {
		order[0], order[1] = order[1], order[0]
		l.place(order)
	}
}

func (l *Layout) place(order []int) {
	l.slots = order
	for slot, canon := range order {
		l.tiles[canon].Current = slot
	}
}

// Len returns the number of tiles.
func (l *Layout) Len() int { return len(l.tiles) }

// Tiles returns the tiles in canonical order.
func (l *Layout) Tiles() []Tile {
	out := make([]Tile, len(l.tiles))
	copy(out, l.tiles)
	return out
}

// TileAt returns the tile occupying slot.
func (l *Layout) TileAt(slot int) Tile {
	return l.tiles[l.slots[slot]]
}

// Solved reports whether every tile sits in its canonical slot.
func (l *Layout) Solved() bool {
	for _, t := range l.tiles {
		if t.Current != t.Canonical {
			return false
		}
	}
	return true
}

// Swap exchanges the tiles in two slots. It is a no-op, returning false,
// once the board is solved or when the slots are equal or out of range.
func (l *Layout) Swap(a, b int) bool {
	n := len(l.slots)
	if l.Solved() || a == b || a < 0 || b < 0 || a >= n || b >= n {
		return false
	}
	ca, cb := l.slots[a], l.slots[b]
	l.slots[a], l.slots[b] = cb, ca
	l.tiles[ca].Current = b
	l.tiles[cb].Current = a
	return true
}

// Arrange places tiles so that slot i holds canonical order[i]. It is
// used to restore a saved board and by tests.
func (l *Layout) Arrange(order []int) bool {
	if len(order) != len(l.tiles) {
		return false
	}
	seen := make([]bool, len(order))
	for _, c := range order {
		if c < 0 || c >= len(order) || seen[c] {
			return false
		}
		seen[c] = true
	}
	l.place(append([]int(nil), order...))
	return true
}

// Order returns the canonical index in each slot.
func (l *Layout) Order() []int {
	return append([]int(nil), l.slots...)
}
