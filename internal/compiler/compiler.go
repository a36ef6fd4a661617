// Package compiler is the two-pass driver: pass 1 assigns addresses and
// populates the label table, pass 2 encodes every statement against that
// table and emits the selected textual format. Grounded on the teacher's
// IE64Assembler.Assemble two-pass structure (ie64asm.go) — firstPass for
// label/address bookkeeping, secondPass for encoding — generalised from its
// single flat error list into this dialect's richer per-line diagnostic
// record and main-file/import distinction.
package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eeasm/ps2masm/internal/output"
	"github.com/eeasm/ps2masm/internal/source"
)

// Diagnostic is one compile-time error record: where it happened, what
// address it would have consumed, what (if anything) was attempted, and
// whether the offending line came from the top-level input or an import.
type Diagnostic struct {
	File         string
	Line         int
	GlobalIndex  int
	Address      uint32
	AddressValid bool
	Data         string
	Message      string
	SourceText   string
	FromMain     bool
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}

// Result is the outcome of one Compile call.
type Result struct {
	Success            bool
	Output             string
	Diagnostics        []Diagnostic
	MainFileErrorLines []int
}

// Driver owns nothing across calls except its text-I/O collaborator; every
// Compile gets its own label table, diagnostics list, and output buffer.
type Driver struct {
	IO source.TextIO
}

// NewDriver returns a Driver that reads imported files through io.
func NewDriver(io source.TextIO) *Driver {
	return &Driver{IO: io}
}

// Compile runs both passes over inputLines and returns the combined result.
// currentFilePath names the top-level input for error origin and relative
// import resolution; it may be empty.
func (d *Driver) Compile(inputLines []string, currentFilePath string, mode output.Mode, addressFormatChar string) Result {
	fileName := currentFilePath
	if fileName == "" {
		fileName = "<input>"
	}
	dir := "."
	if currentFilePath != "" {
		dir = filepath.Dir(currentFilePath)
	}

	pre := source.NewPreprocessor(d.IO)
	lines, err := pre.Expand(inputLines, fileName, dir)
	if err != nil {
		return Result{
			Success: false,
			Diagnostics: []Diagnostic{{
				File: fileName, Message: err.Error(), FromMain: true,
			}},
		}
	}

	labels, pass1Diags := runPass1(lines)
	if len(pass1Diags) > 0 {
		return Result{
			Success:            false,
			Diagnostics:        pass1Diags,
			MainFileErrorLines: mainFileErrorLines(pass1Diags),
		}
	}

	builder := output.NewBuilder(mode, addressFormatChar)
	pass2Diags := runPass2(lines, labels, builder)

	return Result{
		Success:            len(pass2Diags) == 0,
		Output:             builder.String(),
		Diagnostics:        pass2Diags,
		MainFileErrorLines: mainFileErrorLines(pass2Diags),
	}
}

// LeadingAddressDirective reports whether lines sets its own starting
// address (an "address" directive) before its first instruction, ignoring
// other directives and blank/comment-only lines. A caller that injects a
// synthetic "address" line for a "-base"-style flag should only do so when
// this returns false, so it never shifts the user's own line numbers when
// the source already establishes its own starting address.
func LeadingAddressDirective(lines []string) bool {
	s := source.NewStripper()
	for _, raw := range lines {
		stripped := s.Strip(raw)
		if stripped == "" {
			continue
		}
		st := parseStatement(stripped)
		if st.rest == "" {
			continue
		}
		keyword, _ := splitKeyword(st.rest)
		if strings.EqualFold(keyword, directiveAddress) {
			return true
		}
		if !isDirective(keyword) {
			return false
		}
	}
	return false
}

// mainFileErrorLines extracts the deduplicated, first-encounter-order list
// of top-level-input line numbers that produced a diagnostic.
func mainFileErrorLines(diags []Diagnostic) []int {
	var lines []int
	seen := make(map[int]bool)
	for _, d := range diags {
		if !d.FromMain || seen[d.Line] {
			continue
		}
		seen[d.Line] = true
		lines = append(lines, d.Line)
	}
	return lines
}
