// Package register holds the static GPR/FPR name tables for the Emotion
// Engine dialect: a case-insensitive lookup from register spelling to its
// 0..31 index, built once at package init and never mutated afterwards.
package register

import (
	"strconv"
	"strings"
)

// gprNames lists the 32 general-purpose registers in index order.
var gprNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

var byName = make(map[string]byte, 32*3+32*2)

func init() {
	for i, name := range gprNames {
		n := byte(i)
		byName[name] = n
		byName["$"+name] = n
		byName[strconv.Itoa(i)] = n
	}
	for i := 0; i < 32; i++ {
		name := "f" + strconv.Itoa(i)
		byName[name] = byte(i)
		byName["$"+name] = byte(i)
	}
}

// Lookup resolves a register spelling (GPR name, "$name", decimal index, or
// FPR "fN"/"$fN") to its 0..31 index, case-insensitively. Lookup alone
// cannot distinguish a GPR spelling from an FPR spelling that happens to
// share a number — callers that care (memory offsets, ALU operands) know
// from context which bank they expect; IsFPR resolves the ambiguous case.
func Lookup(name string) (byte, bool) {
	n, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// IsFPR reports whether op names a floating-point register, after
// stripping at most one leading '$'. It matches "f<n>" with 0 <= n < 32,
// independent of whether "f<n>" also collides with a GPR spelling.
func IsFPR(op string) (byte, bool) {
	s := strings.ToLower(strings.TrimSpace(op))
	s = strings.TrimPrefix(s, "$")
	if len(s) < 2 || s[0] != 'f' {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n >= 32 {
		return 0, false
	}
	return byte(n), true
}
