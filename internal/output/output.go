// Package output renders (address, 32-bit word) pairs into one of the two
// textual machine-code formats this dialect supports. Grounded on the
// teacher's ie64dis.go formatting helpers (fixed-width hex rendering joined
// line by line), adapted to the two concrete line templates this spec
// requires instead of a disassembly listing.
package output

import (
	"fmt"
	"strings"
)

// Mode selects the output line template.
type Mode int

const (
	PS2 Mode = iota
	PNACH
)

// Builder accumulates formatted output lines for one compile.
type Builder struct {
	formatChar string
	mode       Mode
	lines      []string
}

// NewBuilder returns a Builder for mode, substituting the address string's
// first character with formatChar unless formatChar is "-" or not exactly
// one character.
func NewBuilder(mode Mode, formatChar string) *Builder {
	return &Builder{mode: mode, formatChar: formatChar}
}

// Append formats one (address, word) pair and records the line.
func (b *Builder) Append(address, word uint32) {
	addr := fmt.Sprintf("%08X", address)
	if len(b.formatChar) == 1 && b.formatChar != "-" {
		addr = b.formatChar + addr[1:]
	}
	hex := fmt.Sprintf("%08X", word)

	switch b.mode {
	case PNACH:
		b.lines = append(b.lines, fmt.Sprintf("patch=1,EE,%s,extended,%s", addr, hex))
	default:
		b.lines = append(b.lines, fmt.Sprintf("%s %s", addr, hex))
	}
}

// String joins the accumulated lines with "\n".
func (b *Builder) String() string {
	return strings.Join(b.lines, "\n")
}

// Len reports how many lines have been appended.
func (b *Builder) Len() int {
	return len(b.lines)
}
