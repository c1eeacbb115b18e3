// Package block implements Piet's connected-component block resolver
// and the (DP, CC) edge-codel selection rule (spec §4.3, §4.5).
package block

import (
	"github.com/bdwalton/piet/color"
	"github.com/bdwalton/piet/raster"
)

// Position is a codel coordinate.
type Position struct {
	X, Y int
}

func (p Position) add(dx, dy int) Position {
	return Position{p.X + dx, p.Y + dy}
}

// DP is the direction pointer.
type DP uint8

const (
	Right DP = iota
	Down
	Left
	Up
)

// Unit returns the (dx, dy) step for a single move in direction d.
func (d DP) Unit() (int, int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	panic("block: invalid DP")
}

// Rotate returns d rotated clockwise by n steps (n may be negative).
func (d DP) Rotate(n int) DP {
	return DP(((int(d) + n) % 4 + 4) % 4)
}

func (d DP) String() string {
	return [...]string{"right", "down", "left", "up"}[d]
}

// CC is the codel chooser. It shares DP's type so that Left and Right
// name both a direction and a chooser; a CC is only ever Left or Right
// and prints through DP's String.
type CC = DP

// Toggled returns the opposite chooser.
func (c CC) Toggled() CC {
	if c == Left {
		return Right
	}
	return Left
}

// NonStandardAs controls how the NonStandard color sentinel is
// treated by the black/white/valid tests (spec §4.1, default White).
type NonStandardAs uint8

const (
	AsWhite NonStandardAs = iota
	AsBlack
)

// IsBlack reports whether p is black for traversal purposes: out of
// bounds, exactly Black, or NonStandard configured to behave as black.
func IsBlack(g *raster.Grid, p Position, nonstd NonStandardAs) bool {
	if !g.InBounds(p.X, p.Y) {
		return true
	}
	c := g.At(p.X, p.Y)
	if c.Kind == color.Black {
		return true
	}
	return c.Kind == color.NonStandard && nonstd == AsBlack
}

// IsWhite reports whether p is white for slide purposes.
func IsWhite(g *raster.Grid, p Position, nonstd NonStandardAs) bool {
	if !g.InBounds(p.X, p.Y) {
		return false
	}
	c := g.At(p.X, p.Y)
	if c.Kind == color.White {
		return true
	}
	return c.Kind == color.NonStandard && nonstd == AsWhite
}

// IsValid reports whether p is in-bounds and not black.
func IsValid(g *raster.Grid, p Position, nonstd NonStandardAs) bool {
	return g.InBounds(p.X, p.Y) && !IsBlack(g, p, nonstd)
}

// Block is the maximal 4-connected region of identically-colored
// codels containing some queried position.
type Block struct {
	Color     color.Color
	Positions []Position
}

// Value is the codel count of the block.
func (b Block) Value() int {
	return len(b.Positions)
}

// Resolve computes Block(p) via an explicit-stack flood fill (spec
// §4.3, §9: "flood fill must be iterative" — a recursive fill blows
// the stack on large uniformly-colored regions). p must be a colored
// (non-white, non-black) codel.
func Resolve(g *raster.Grid, p Position) Block {
	target := g.At(p.X, p.Y)

	seen := map[Position]bool{p: true}
	positions := []Position{p}
	stack := []Position{p}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range [...]DP{Right, Down, Left, Up} {
			dx, dy := d.Unit()
			n := cur.add(dx, dy)
			if seen[n] || !g.InBounds(n.X, n.Y) {
				continue
			}
			if g.At(n.X, n.Y) != target {
				continue
			}
			seen[n] = true
			positions = append(positions, n)
			stack = append(stack, n)
		}
	}

	return Block{Color: target, Positions: positions}
}

// EdgeCodel returns the single codel of b selected by (dp, cc) per
// spec §4.3's two-stage extremum rule.
func EdgeCodel(b Block, dp DP, cc CC) Position {
	candidates := extremeInDirection(b.Positions, dp)
	return extremeForChooser(candidates, dp, cc)[0]
}

// extremeInDirection keeps the codels extremal in the DP direction:
// max Y for Down, min X for Left, min Y for Up, max X for Right.
func extremeInDirection(ps []Position, dp DP) []Position {
	best := ps[0]
	for _, p := range ps[1:] {
		if better(p, best, dp) {
			best = p
		}
	}

	out := make([]Position, 0, len(ps))
	for _, p := range ps {
		if sameExtreme(p, best, dp) {
			out = append(out, p)
		}
	}
	return out
}

func better(p, best Position, dp DP) bool {
	switch dp {
	case Down:
		return p.Y > best.Y
	case Left:
		return p.X < best.X
	case Up:
		return p.Y < best.Y
	case Right:
		return p.X > best.X
	}
	panic("block: invalid DP")
}

func sameExtreme(p, best Position, dp DP) bool {
	switch dp {
	case Down, Up:
		return p.Y == best.Y
	default:
		return p.X == best.X
	}
}

// extremeForChooser selects the single codel extremal in the
// direction "cc relative to dp", per the table in spec §4.3.
func extremeForChooser(ps []Position, dp DP, cc CC) []Position {
	var axisMin bool // true: pick minimum on the relevant secondary axis

	switch dp {
	case Right:
		axisMin = cc == Left // CC=Left -> min y; CC=Right -> max y
	case Down:
		axisMin = cc == Right // CC=Left -> max x; CC=Right -> min x
	case Left:
		axisMin = cc == Right // CC=Left -> max y; CC=Right -> min y
	case Up:
		axisMin = cc == Left // CC=Left -> min x; CC=Right -> max x
	}

	useY := dp == Right || dp == Left

	best := ps[0]
	for _, p := range ps[1:] {
		var replace bool
		if useY {
			if axisMin {
				replace = p.Y < best.Y
			} else {
				replace = p.Y > best.Y
			}
		} else {
			if axisMin {
				replace = p.X < best.X
			} else {
				replace = p.X > best.X
			}
		}
		if replace {
			best = p
		}
	}

	return []Position{best}
}
