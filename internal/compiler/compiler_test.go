package compiler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eeasm/ps2masm/internal/output"
)

// noopIO is a text-I/O collaborator with nothing to read; these tests never
// exercise "import", so every lookup can fail.
type noopIO struct{}

func (noopIO) ReadAllLines(path, encoding string) ([]string, error) {
	return nil, errors.New("no such file")
}
func (noopIO) Exists(path string) bool { return false }

func compileLines(t *testing.T, lines []string, mode output.Mode, formatChar string) Result {
	t.Helper()
	return NewDriver(noopIO{}).Compile(lines, "", mode, formatChar)
}

func TestCompileAddiu(t *testing.T) {
	res := compileLines(t, []string{
		"address $00100000",
		"addiu s0, v0, 0x10",
	}, output.PS2, "-")
	if !res.Success {
		t.Fatalf("compile failed: %+v", res.Diagnostics)
	}
	if res.Output != "00100000 24500010" {
		t.Errorf("got %q", res.Output)
	}
}

func TestCompileLuiOri(t *testing.T) {
	res := compileLines(t, []string{
		"address $00100000",
		"lui t0, $1234",
		"ori t0, t0, $5678",
	}, output.PS2, "-")
	if !res.Success {
		t.Fatalf("compile failed: %+v", res.Diagnostics)
	}
	want := "00100000 3C081234\n00100004 35085678"
	if res.Output != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestCompileSetreg(t *testing.T) {
	res := compileLines(t, []string{
		"address $00100000",
		"setreg t0, $DEADBEEF",
	}, output.PS2, "-")
	if !res.Success {
		t.Fatalf("compile failed: %+v", res.Diagnostics)
	}
	want := "00100000 3C08DEAD\n00100004 3508BEEF"
	if res.Output != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestCompilePseudoBranchToLoop(t *testing.T) {
	res := compileLines(t, []string{
		"address $00100000",
		"loop:",
		"nop",
		"b :loop",
		"nop",
	}, output.PS2, "-")
	if !res.Success {
		t.Fatalf("compile failed: %+v", res.Diagnostics)
	}
	want := "00100000 00000000\n00100004 1000FFFF\n00100008 00000000"
	if res.Output != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestCompileNopPnachWithFormatChar(t *testing.T) {
	res := compileLines(t, []string{
		"address $00100000",
		"nop",
	}, output.PNACH, "2")
	if !res.Success {
		t.Fatalf("compile failed: %+v", res.Diagnostics)
	}
	want := "patch=1,EE,20100000,extended,00000000"
	if res.Output != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestCompilePrintString(t *testing.T) {
	res := compileLines(t, []string{
		`address $00100000`,
		`print "AB"`,
	}, output.PS2, "-")
	if !res.Success {
		t.Fatalf("compile failed: %+v", res.Diagnostics)
	}
	want := "00100000 00004241"
	if res.Output != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestCompileDuplicateLabel(t *testing.T) {
	res := compileLines(t, []string{
		"foo:",
		"nop",
		"foo:",
		"nop",
	}, output.PS2, "-")
	if res.Success {
		t.Fatal("expected failure for duplicate label")
	}
	if res.Output != "" {
		t.Errorf("expected no output after a pass-1 failure, got %q", res.Output)
	}
	found := false
	for _, d := range res.Diagnostics {
		if strings.Contains(d.Message, "foo") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic naming %q, got %+v", "foo", res.Diagnostics)
	}
}

func TestCompileOutOfRangeBranchContinues(t *testing.T) {
	lines := []string{"address $00100000", "b :target"}
	// Push "target" far enough away that the pseudo-branch's offset
	// overflows a signed 16-bit field.
	lines = append(lines, "address $00140000", "target:", "nop")

	res := compileLines(t, lines, output.PS2, "-")
	if res.Success {
		t.Fatal("expected failure for out-of-range branch")
	}
	foundRangeErr := false
	for _, d := range res.Diagnostics {
		if strings.Contains(d.Message, "out of range") {
			foundRangeErr = true
		}
	}
	if !foundRangeErr {
		t.Errorf("expected an out-of-range diagnostic, got %+v", res.Diagnostics)
	}
	// Compilation must continue past the bad branch and still encode the
	// trailing nop.
	if !strings.Contains(res.Output, "00140000 00000000") {
		t.Errorf("expected compilation to continue past the error, got %q", res.Output)
	}
}

func TestCompileUnknownMnemonic(t *testing.T) {
	res := compileLines(t, []string{"address $00100000", "frobnicate t0, t1"}, output.PS2, "-")
	if res.Success {
		t.Fatal("expected failure for unknown mnemonic")
	}
}

func TestCompileSqrtSameRegisterSpecialCase(t *testing.T) {
	res := compileLines(t, []string{"address $00100000", "sqrt.s f4, f4"}, output.PS2, "-")
	if !res.Success {
		t.Fatalf("compile failed: %+v", res.Diagnostics)
	}
	// fd=fs=4: per the special case ft<-4, fs<-0, fd<-4, funct 0x04.
	// (0x11<<26)|(0x10<<21)|(4<<16 ft)|(0<<11 fs)|(4<<6 fd)|0x04
	want := "00100000 46040104"
	if res.Output != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestCompileAsync(t *testing.T) {
	d := NewDriver(noopIO{})
	res, err := d.CompileAsync(context.Background(), []string{"address $00100000", "nop"}, "", output.PS2, "-")
	if err != nil {
		t.Fatalf("CompileAsync error: %v", err)
	}
	if !res.Success || res.Output != "00100000 00000000" {
		t.Errorf("got %+v", res)
	}
}
