package compiler

import (
	"fmt"
	"strings"
)

// labelTable maps label spellings to their assigned addresses. It satisfies
// operand.Labels (case-insensitive Resolve) and additionally exposes a
// case-sensitive lookup for the hexcode/setreg bare-label grammar, which —
// per the dialect's own asymmetry — does not fold case the way every other
// label reference does.
type labelTable struct {
	byLower map[string]uint32
	exact   map[string]uint32
}

func newLabelTable() *labelTable {
	return &labelTable{
		byLower: make(map[string]uint32),
		exact:   make(map[string]uint32),
	}
}

// Resolve implements operand.Labels: case-insensitive lookup.
func (lt *labelTable) Resolve(name string) (uint32, bool) {
	addr, ok := lt.byLower[strings.ToLower(name)]
	return addr, ok
}

// ResolveExact looks up name with exact case, for hexcode/setreg's bare-
// label form.
func (lt *labelTable) ResolveExact(name string) (uint32, bool) {
	addr, ok := lt.exact[name]
	return addr, ok
}

// Define records name at addr. A second definition of the same name
// (case-insensitively) is an error, not a silent redefinition.
func (lt *labelTable) Define(name string, addr uint32) error {
	lower := strings.ToLower(name)
	if _, exists := lt.byLower[lower]; exists {
		return fmt.Errorf("duplicate label %q", name)
	}
	lt.byLower[lower] = addr
	lt.exact[name] = addr
	return nil
}
