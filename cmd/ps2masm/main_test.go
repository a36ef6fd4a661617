package main

import (
	"context"
	"testing"

	"github.com/eeasm/ps2masm/internal/compiler"
	"github.com/eeasm/ps2masm/internal/output"
)

type noopIO struct{}

func (noopIO) Exists(string) bool { return false }
func (noopIO) ReadAllLines(string, string) ([]string, error) {
	return nil, nil
}

func TestUndoInjectedLineShiftFixesMainFileLines(t *testing.T) {
	d := compiler.NewDriver(noopIO{})
	base := "$00100000"
	rawLines := []string{"frobnicate t0, t1"}

	injected := !compiler.LeadingAddressDirective(rawLines)
	if !injected {
		t.Fatal("expected injection when the source has no address directive")
	}
	inputLines := append([]string{"address " + base}, rawLines...)

	result := d.Compile(inputLines, "bad.asm", output.PS2, "-")
	undoInjectedLineShift(&result)

	if result.Success {
		t.Fatal("expected failure for an unknown mnemonic")
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(result.Diagnostics))
	}
	if got := result.Diagnostics[0].Line; got != 1 {
		t.Errorf("diagnostic line = %d, want 1 (the real line in bad.asm)", got)
	}
	if len(result.MainFileErrorLines) != 1 || result.MainFileErrorLines[0] != 1 {
		t.Errorf("MainFileErrorLines = %v, want [1]", result.MainFileErrorLines)
	}
}

func TestLeadingAddressDirectiveSkipsInjection(t *testing.T) {
	rawLines := []string{"address $00100000", "frobnicate t0, t1"}
	if !compiler.LeadingAddressDirective(rawLines) {
		t.Fatal("expected source's own address directive to be detected")
	}

	d := compiler.NewDriver(noopIO{})
	result := d.Compile(rawLines, "bad.asm", output.PS2, "-")
	if got := result.Diagnostics[0].Line; got != 2 {
		t.Errorf("diagnostic line = %d, want 2 (no injection, no shift needed)", got)
	}
}

func TestCompileAsyncStillWorksThroughDriver(t *testing.T) {
	d := compiler.NewDriver(noopIO{})
	res, err := d.CompileAsync(context.Background(), []string{"address $00100000", "nop"}, "", output.PS2, "-")
	if err != nil {
		t.Fatalf("CompileAsync error: %v", err)
	}
	if !res.Success || res.Output != "00100000 00000000" {
		t.Errorf("unexpected result: %+v", res)
	}
}
