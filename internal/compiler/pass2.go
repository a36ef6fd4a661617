package compiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eeasm/ps2masm/internal/opcode"
	"github.com/eeasm/ps2masm/internal/output"
	"github.com/eeasm/ps2masm/internal/source"
)

// runPass2 replays the same line sequence pass 1 walked, this time with a
// complete label table, encoding every statement and emitting its words
// into out. A line that fails to encode contributes a diagnostic at the
// address it would have consumed and leaves the address counter untouched,
// so the rest of the file still reports sensibly.
func runPass2(lines []source.Line, labels *labelTable, out *output.Builder) []Diagnostic {
	var diags []Diagnostic
	var addr uint32
	stripper := source.NewStripper()

	fail := func(ln source.Line, addr uint32, err error) {
		diags = append(diags, Diagnostic{
			File: ln.File, Line: ln.LineNo, GlobalIndex: ln.Index,
			Address: addr, AddressValid: true, Data: "N/A",
			Message: err.Error(), SourceText: ln.Text, FromMain: ln.FromMain,
		})
	}

	for _, ln := range lines {
		stripped := stripper.Strip(ln.Text)
		if stripped == "" {
			continue
		}
		st := parseStatement(stripped)
		if st.rest == "" {
			continue
		}

		keyword, tail := splitKeyword(st.rest)
		lowerKeyword := strings.ToLower(keyword)

		switch lowerKeyword {
		case directiveAddress:
			v, err := parseAddressValue(tail)
			if err != nil {
				fail(ln, addr, err)
				continue
			}
			addr = v

		case directivePrint:
			s, err := parsePrintString(tail)
			if err != nil {
				fail(ln, addr, err)
				continue
			}
			words := encodePrintWords(s)
			for _, w := range words {
				out.Append(addr, w)
				addr += 4
			}

		case directiveHexcode:
			v, err := resolveDirectiveValue(tail, labels)
			if err != nil {
				fail(ln, addr, err)
				continue
			}
			out.Append(addr, v)
			addr += 4

		case directiveFloat:
			v, err := encodeFloat(tail)
			if err != nil {
				fail(ln, addr, err)
				continue
			}
			out.Append(addr, v)
			addr += 4

		default:
			info, ok := opcode.Lookup(keyword)
			if !ok {
				fail(ln, addr, fmt.Errorf("unknown mnemonic %q", keyword))
				continue
			}
			ops := splitOperands(tail)
			words, err := encodeMnemonic(info, lowerKeyword, ops, addr, labels)
			if err != nil {
				fail(ln, addr, err)
				continue
			}
			for _, w := range words {
				out.Append(addr, w)
				addr += 4
			}
		}
	}

	return diags
}

// encodePrintWords packs s, already ISO-8859-1 encoded one byte per
// character by parsePrintString, into little-endian 32-bit words, zero-
// padding the final partial word.
func encodePrintWords(s string) []uint32 {
	n := printWordCount(len(s))
	words := make([]uint32, n)
	for i := 0; i < len(s); i++ {
		words[i/4] |= uint32(byte(s[i])) << (8 * uint(i%4))
	}
	return words
}

func encodeFloat(arg string) (uint32, error) {
	arg = strings.TrimSpace(arg)
	arg = strings.TrimPrefix(arg, "$")
	f, err := strconv.ParseFloat(arg, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q: %v", arg, err)
	}
	return math.Float32bits(float32(f)), nil
}
