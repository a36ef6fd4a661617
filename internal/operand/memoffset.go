package operand

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// memOffsetRe matches the load/store "offset(base)" syntax. The offset half
// may be empty (bare "(base)" means offset 0); the base half names a GPR.
var memOffsetRe = regexp.MustCompile(`^([^()\s]*)\(([^()\s]+)\)$`)

// ParseMemOffset splits a load/store operand of the form "offset(base)" into
// its signed offset and base register number. The offset is not range-
// checked here; the load/store encoders keep only its low 16 bits. It is
// resolved with the same value grammar as Parse's non-immediate $-hex step,
// plus decimal and label fallbacks; the base is resolved by Parse itself
// (non-immediate context), so a base written as "$t0", "t0", or a decimal
// register index all work.
func ParseMemOffset(op string, labels Labels) (imm int32, rs byte, err error) {
	op = strings.TrimSpace(op)
	m := memOffsetRe.FindStringSubmatch(op)
	if m == nil {
		return 0, 0, fmt.Errorf("malformed memory operand %q, expected offset(base)", op)
	}

	offsetStr, baseStr := m[1], m[2]

	imm, err = parseOffsetValue(offsetStr, labels)
	if err != nil {
		return 0, 0, fmt.Errorf("memory operand %q: %v", op, err)
	}

	baseVal, err := Parse(baseStr, labels, false)
	if err != nil {
		return 0, 0, fmt.Errorf("memory operand %q: invalid base register: %v", op, err)
	}
	if baseVal < 0 || baseVal >= 32 {
		return 0, 0, fmt.Errorf("memory operand %q: base register index %d out of range", op, baseVal)
	}

	return imm, byte(baseVal), nil
}

func parseOffsetValue(s string, labels Labels) (int32, error) {
	if s == "" {
		return 0, nil
	}
	if strings.HasPrefix(s, "$") {
		return parseHexTail(s[1:])
	}
	if hasHexPrefix(s) {
		return parseHexTail(s[2:])
	}
	if v, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(v), nil
	}
	if addr, ok := resolveLabel(s, labels); ok {
		return int32(addr), nil
	}
	return 0, fmt.Errorf("unresolved offset %q", s)
}
