package pvm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"
)

// opInChar reads a single character of input and pushes its code
// point (spec §4.6, §9): a full Unicode rune by default, or one raw
// byte when the VM is configured for byte-mode input (useful for
// programs written against ASCII/Latin-1 sample code). End of input
// is a silent no-op, matching the underflow convention elsewhere in
// the instruction set.
func opInChar(s *State, value int64) {
	if s.cfg.ByteInput {
		b, err := s.in.ReadByte()
		if err != nil {
			return
		}
		s.push(int64(b))
		return
	}

	r, _, err := s.in.ReadRune()
	if err != nil {
		return
	}
	s.push(int64(r))
}

// opInNumber reads a decimal integer from input, skipping leading
// whitespace, per spec §9: an optional sign followed by one or more
// digits. If no digits are read, the instruction is a no-op and the
// consumed whitespace/sign bytes are not un-read.
func opInNumber(s *State, value int64) {
	for {
		r, _, err := s.in.ReadRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(r) {
			s.in.UnreadRune()
			break
		}
	}

	var buf []rune
	r, _, err := s.in.ReadRune()
	if err == nil && (r == '+' || r == '-') {
		buf = append(buf, r)
	} else if err == nil {
		s.in.UnreadRune()
	}

	for {
		r, _, err := s.in.ReadRune()
		if err != nil {
			break
		}
		if r < '0' || r > '9' {
			s.in.UnreadRune()
			break
		}
		buf = append(buf, r)
	}

	digits := buf
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return
	}

	n, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return
	}
	s.push(n)
}

// opOutNumber pops a value and writes its decimal representation.
func opOutNumber(s *State, value int64) {
	x, ok := s.pop()
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "%d", x)
}

// opOutChar pops a value and writes it as a single character, encoded
// per the same byte/rune mode as in_char.
func opOutChar(s *State, value int64) {
	x, ok := s.pop()
	if !ok {
		return
	}
	if s.cfg.ByteInput {
		s.out.Write([]byte{byte(x)})
		return
	}
	fmt.Fprintf(s.out, "%c", rune(x))
}

// newReader wraps r for rune-at-a-time and byte-at-a-time reads. It is
// exported indirectly through New; kept as a separate helper so a CLI
// entry point can swap in a raw-mode terminal reader for interactive
// in_char without changing this package.
func newReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(r)
}
