package source

import "testing"

type fakeTextIO struct {
	files map[string][]string
}

func (f fakeTextIO) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f fakeTextIO) ReadAllLines(path, encoding string) ([]string, error) {
	return f.files[path], nil
}

func TestExpandNoImports(t *testing.T) {
	io := fakeTextIO{files: map[string][]string{}}
	p := NewPreprocessor(io)
	lines, err := p.Expand([]string{"nop", "nop"}, "main.asm", ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0].LineNo != 1 || lines[1].LineNo != 2 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	if !lines[0].FromMain || !lines[1].FromMain {
		t.Error("top-level lines should be FromMain")
	}
	if lines[0].Index != 0 || lines[1].Index != 1 {
		t.Error("expected monotonically increasing global index")
	}
}

func TestExpandImportsRecursively(t *testing.T) {
	io := fakeTextIO{files: map[string][]string{
		"lib.asm": {"addiu t0, t0, 1"},
	}}
	p := NewPreprocessor(io)
	lines, err := p.Expand([]string{`import "lib.asm"`, "nop"}, "main.asm", ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 expanded lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Text != "addiu t0, t0, 1" || lines[0].FromMain {
		t.Errorf("imported line wrong: %+v", lines[0])
	}
	if lines[1].Text != "nop" || !lines[1].FromMain {
		t.Errorf("main line wrong: %+v", lines[1])
	}
}

func TestExpandMissingImportEmitsPlaceholder(t *testing.T) {
	io := fakeTextIO{files: map[string][]string{}}
	p := NewPreprocessor(io)
	lines, err := p.Expand([]string{`import "missing.asm"`}, "main.asm", ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != `// Import failed (not found): missing.asm` {
		t.Errorf("got %q", lines[0].Text)
	}
	if !lines[0].FromMain {
		t.Error("placeholder line should keep the caller's FromMain")
	}
}

func TestExpandDepthLimitExceeded(t *testing.T) {
	files := map[string][]string{}
	for i := 0; i < 12; i++ {
		name := depthFile(i)
		next := depthFile(i + 1)
		files[name] = []string{`import "` + next + `"`}
	}
	io := fakeTextIO{files: files}
	p := NewPreprocessor(io)
	_, err := p.Expand([]string{`import "` + depthFile(0) + `"`}, "main.asm", ".")
	if err == nil {
		t.Fatal("expected an error for exceeding max import depth")
	}
}

func depthFile(n int) string {
	digits := "0123456789abcdefghijklmnop"
	return "d" + string(digits[n%len(digits)]) + ".asm"
}
