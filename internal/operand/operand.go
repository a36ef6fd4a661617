// Package operand parses a single textual assembly operand — register,
// immediate, or label reference — into its signed 32-bit encoded value,
// following the fixed priority order the dialect requires. Grounded on the
// teacher's exprParser.parseExprAtom (ie64asm.go): try $-hex, then 0x-hex,
// then decimal, then identifier/label, in that order — generalised here
// into the larger, context-sensitive priority chain this dialect's fixed
// (non-expression) operand grammar calls for.
package operand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eeasm/ps2masm/internal/register"
)

// Labels resolves a label spelling to its assigned address. Implementations
// must be case-insensitive, per the dialect's label-naming rule.
type Labels interface {
	Resolve(name string) (uint32, bool)
}

// Parse resolves op to its signed 32-bit value. immediateContext selects
// between the two mutually exclusive "$" interpretations: a bare hex literal
// when true (operand positions that only ever hold an immediate), or a
// register-or-hex fallback when false (operand positions that may hold
// either a register or a raw address).
func Parse(op string, labels Labels, immediateContext bool) (int32, error) {
	op = strings.TrimSpace(op)
	if op == "" {
		return 0, fmt.Errorf("empty operand")
	}

	// 1. Immediate-context $-hex.
	if immediateContext && strings.HasPrefix(op, "$") {
		v, err := parseHexTail(op[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid immediate %q: %v", op, err)
		}
		return v, nil
	}

	// 2. Register (cleaned of stray label sigils).
	for _, candidate := range registerCandidates(op) {
		if n, ok := register.Lookup(candidate); ok {
			return int32(n), nil
		}
	}

	// 3. 0x-hex.
	if hasHexPrefix(op) {
		v, err := parseHexTail(op[2:])
		if err != nil {
			return 0, fmt.Errorf("invalid hex literal %q: %v", op, err)
		}
		return v, nil
	}

	// 4. Non-immediate $-hex (immediateContext is false here, or step 1
	// would already have returned).
	if strings.HasPrefix(op, "$") {
		v, err := parseHexTail(op[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid hex literal %q: %v", op, err)
		}
		return v, nil
	}

	// 5. Decimal integer.
	if v, err := strconv.ParseInt(op, 10, 32); err == nil {
		return int32(v), nil
	}

	// 6. Label, with tolerance for stray leading/trailing ':'.
	if addr, ok := resolveLabel(op, labels); ok {
		return int32(addr), nil
	}

	return 0, fmt.Errorf("unresolved operand %q", op)
}

// registerCandidates produces the spellings to try against the register
// table for step 2: the operand as-is, then — only when it begins or ends
// with a stray ':' or ';' — the tail and/or the right-trimmed form, so a
// real label reference like ":loop" is never mistaken for a register while
// a register written with a stray sigil still resolves.
func registerCandidates(op string) []string {
	candidates := []string{op}
	if len(op) > 0 && (op[0] == ':' || op[0] == ';') {
		candidates = append(candidates, strings.TrimRight(op[1:], ":;"))
	}
	if len(op) > 0 && (op[len(op)-1] == ':' || op[len(op)-1] == ';') {
		candidates = append(candidates, strings.TrimRight(op, ":;"))
	}
	return candidates
}

// resolveLabel looks up name in labels, then — only on a miss — retries
// after stripping one leading and/or one trailing ':'.
func resolveLabel(name string, labels Labels) (uint32, bool) {
	if addr, ok := labels.Resolve(name); ok {
		return addr, true
	}
	stripped := strings.TrimPrefix(name, ":")
	stripped = strings.TrimSuffix(stripped, ":")
	if stripped != name {
		return labels.Resolve(stripped)
	}
	return 0, false
}

func hasHexPrefix(op string) bool {
	return len(op) >= 2 && op[0] == '0' && (op[1] == 'x' || op[1] == 'X')
}

// parseHexTail parses s as an unsigned 32-bit hex literal. An empty or
// non-hex tail, or a value that overflows 32 bits, is an error.
func parseHexTail(s string) (int32, error) {
	if s == "" {
		return 0, fmt.Errorf("missing hex digits")
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return int32(uint32(v)), nil
}
