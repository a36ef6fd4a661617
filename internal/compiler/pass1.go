package compiler

import (
	"strings"

	"github.com/eeasm/ps2masm/internal/source"
)

// runPass1 walks the preprocessed line sequence once, assigning addresses
// to labels and to every emitting statement, collecting pass-1 diagnostics
// (invalid address value, malformed print syntax, duplicate label) along
// the way. It never touches the opcode table: ordinary instructions and the
// hexcode/float/setreg-adjacent directives all advance the address by their
// fixed size without needing to be decoded.
func runPass1(lines []source.Line) (*labelTable, []Diagnostic) {
	labels := newLabelTable()
	var diags []Diagnostic
	var addr uint32
	stripper := source.NewStripper()

	for _, ln := range lines {
		stripped := stripper.Strip(ln.Text)
		if stripped == "" {
			continue
		}
		st := parseStatement(stripped)

		if st.label != "" {
			if err := labels.Define(st.label, addr); err != nil {
				diags = append(diags, Diagnostic{
					File: ln.File, Line: ln.LineNo, GlobalIndex: ln.Index,
					Message: err.Error(), SourceText: ln.Text, FromMain: ln.FromMain,
				})
			}
		}
		if st.rest == "" {
			continue
		}

		keyword, tail := splitKeyword(st.rest)
		switch strings.ToLower(keyword) {
		case directiveAddress:
			v, err := parseAddressValue(tail)
			if err != nil {
				diags = append(diags, Diagnostic{
					File: ln.File, Line: ln.LineNo, GlobalIndex: ln.Index,
					Message: err.Error(), SourceText: ln.Text, FromMain: ln.FromMain,
				})
				continue
			}
			addr = v
		case directivePrint:
			s, err := parsePrintString(tail)
			if err != nil {
				diags = append(diags, Diagnostic{
					File: ln.File, Line: ln.LineNo, GlobalIndex: ln.Index,
					Message: err.Error(), SourceText: ln.Text, FromMain: ln.FromMain,
				})
				continue
			}
			addr += uint32(printWordCount(len(s))) * 4
		default:
			if strings.EqualFold(keyword, "setreg") {
				addr += 8
			} else {
				addr += 4
			}
		}
	}

	return labels, diags
}
