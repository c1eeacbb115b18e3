// Package pvm implements the Piet virtual machine's traversal engine
// and opcode executor (spec §4.4, §4.6): the outer state machine that
// walks the codel grid block to block, and the stack-based instruction
// set it dispatches into.
package pvm

import (
	"bufio"
	"context"
	"io"

	"github.com/bdwalton/piet/block"
	"github.com/bdwalton/piet/color"
	"github.com/bdwalton/piet/raster"
)

// Config holds the VM's startup options (spec §6 CLI surface).
type Config struct {
	NonStandardAs block.NonStandardAs
	MaxSteps      int  // 0 = unlimited
	ByteInput     bool // true: in_char reads one raw byte; false: one UTF-8 rune
}

// Reason names why a Run loop stopped.
type Reason int

const (
	// RunningReason is never returned from Run; it marks a State
	// that has not yet terminated.
	RunningReason Reason = iota
	BounceLimit
	SlideTrap
	StepBudget
	OriginBlack
	Canceled
)

func (r Reason) String() string {
	switch r {
	case BounceLimit:
		return "eight consecutive failed moves"
	case SlideTrap:
		return "white-slide cycle"
	case StepBudget:
		return "step budget exceeded"
	case OriginBlack:
		return "origin codel is black"
	case Canceled:
		return "canceled"
	default:
		return "running"
	}
}

// State is the PVM's mutable execution context (spec §3 PVMState).
// Cursor always lies on a codel that is non-black and in-bounds (I1)
// as long as the state hasn't yet terminated.
type State struct {
	cfg Config

	Grid   *raster.Grid
	Cursor block.Position
	DP     block.DP
	CC     block.CC
	Stack  []int64

	// LastColor is the color of the block the cursor most recently
	// exited, or color.WhiteColor if the cursor arrived via a white
	// slide (I2).
	LastColor color.Color

	bounceCount int
	ccToggled   bool

	Steps     int
	Halted    bool
	HaltedWhy Reason

	in  *bufio.Reader
	out io.Writer

	Trace func(format string, args ...any) // nil disables tracing
}

// New builds a fresh State positioned at the grid's origin codel, per
// spec §3/§7: if (0,0) is black, the program halts having taken no
// steps. A white origin is not halted here; Step slides off it on the
// first call, per spec §8's white-start boundary case.
func New(g *raster.Grid, cfg Config, in io.Reader, out io.Writer) *State {
	s := &State{
		cfg:    cfg,
		Grid:   g,
		Cursor: block.Position{X: 0, Y: 0},
		DP:     block.Right,
		CC:     block.Left,
		in:     newReader(in),
		out:    out,
	}

	if block.IsBlack(g, s.Cursor, cfg.NonStandardAs) {
		s.Halted = true
		s.HaltedWhy = OriginBlack
	}

	return s
}

func (s *State) trace(format string, args ...any) {
	if s.Trace != nil {
		s.Trace(format, args...)
	}
}

// Run drives Step until the program halts, the context is canceled, or
// the configured step budget is exhausted.
func (s *State) Run(ctx context.Context) {
	for !s.Halted {
		select {
		case <-ctx.Done():
			s.Halted = true
			s.HaltedWhy = Canceled
			return
		default:
		}

		if s.cfg.MaxSteps > 0 && s.Steps >= s.cfg.MaxSteps {
			s.Halted = true
			s.HaltedWhy = StepBudget
			return
		}

		s.Step()
	}
}

// Step performs a single traversal step (spec §4.4): it resolves the
// current block, attempts to exit it up to eight times (toggling CC
// then rotating DP on each failure), and either slides across white,
// dispatches an opcode on a successful colored transition, or
// terminates the program.
//
// A cursor that already sits on white (the origin included — a
// program may start there) is never resolved as a colored block; it
// slides immediately, matching the white-start boundary in spec §8.
func (s *State) Step() {
	if s.Halted {
		return
	}

	if block.IsWhite(s.Grid, s.Cursor, s.cfg.NonStandardAs) {
		exit, ok := s.slide(s.Cursor)
		if !ok {
			s.Halted = true
			s.HaltedWhy = SlideTrap
			s.trace("halt: %s", s.HaltedWhy)
			return
		}
		s.LastColor = color.WhiteColor
		s.Cursor = exit
		s.Steps++
		s.trace("step %d: slide -> (%d,%d) dp=%s cc=%s stack=%d", s.Steps, exit.X, exit.Y, s.DP, s.CC, len(s.Stack))
		return
	}

	b := block.Resolve(s.Grid, s.Cursor)
	v := int64(b.Value())

	s.bounceCount = 0
	s.ccToggled = false

	for {
		e := block.EdgeCodel(b, s.DP, s.CC)
		dx, dy := s.DP.Unit()
		n := block.Position{X: e.X + dx, Y: e.Y + dy}

		switch {
		case block.IsBlack(s.Grid, n, s.cfg.NonStandardAs):
			if !s.bounce() {
				s.Halted = true
				s.HaltedWhy = BounceLimit
				s.trace("halt: %s", s.HaltedWhy)
				return
			}
			continue

		case block.IsWhite(s.Grid, n, s.cfg.NonStandardAs):
			exit, ok := s.slide(n)
			if !ok {
				s.Halted = true
				s.HaltedWhy = SlideTrap
				s.trace("halt: %s", s.HaltedWhy)
				return
			}
			s.LastColor = color.WhiteColor
			s.Cursor = exit
			s.Steps++
			s.trace("step %d: slide -> (%d,%d) dp=%s cc=%s stack=%d", s.Steps, exit.X, exit.Y, s.DP, s.CC, len(s.Stack))
			return

		default:
			newColor := s.Grid.At(n.X, n.Y)
			if s.LastColor != color.WhiteColor {
				hd := color.HueDelta(b.Color, newColor)
				ld := color.LightnessDelta(b.Color, newColor)
				op := opcodeTable[hd][ld]
				op(s, v)
			}
			s.LastColor = s.Grid.At(e.X, e.Y)
			s.Cursor = n
			s.Steps++
			s.trace("step %d: move -> (%d,%d) dp=%s cc=%s stack=%d", s.Steps, n.X, n.Y, s.DP, s.CC, len(s.Stack))
			return
		}
	}
}

// bounce applies one failed-move toggle per spec §4.4 step 3(c) and
// reports whether another attempt should be made (false once the
// eight-attempt limit is reached).
func (s *State) bounce() bool {
	if !s.ccToggled {
		s.CC = s.CC.Toggled()
		s.ccToggled = true
	} else {
		s.DP = s.DP.Rotate(1)
		s.ccToggled = false
	}
	s.bounceCount++
	s.trace("bounce %d/8: dp=%s cc=%s", s.bounceCount, s.DP, s.CC)
	return s.bounceCount < 8
}

// slideKey identifies a (position, DP) pair visited during a white
// slide, used to detect the trap condition in spec §4.4.
type slideKey struct {
	pos block.Position
	dp  block.DP
}

// slide walks across white codels starting at the white cell `start`
// (spec §4.4 "White slide"). It returns the first non-white, non-black
// codel reached, or ok=false if the slide revisits a (position, DP)
// pair before exiting.
func (s *State) slide(start block.Position) (block.Position, bool) {
	visited := map[slideKey]bool{}
	cur := start

	for {
		key := slideKey{pos: cur, dp: s.DP}
		if visited[key] {
			return block.Position{}, false
		}
		visited[key] = true

		dx, dy := s.DP.Unit()
		next := block.Position{X: cur.X + dx, Y: cur.Y + dy}

		switch {
		case block.IsWhite(s.Grid, next, s.cfg.NonStandardAs):
			cur = next
		case block.IsBlack(s.Grid, next, s.cfg.NonStandardAs):
			s.CC = s.CC.Toggled()
			s.DP = s.DP.Rotate(1)
		default:
			return next, true
		}
	}
}
