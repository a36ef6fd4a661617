package source

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// TextIO is the thin read/exists collaborator the import preprocessor
// depends on instead of the filesystem directly (see internal/textio for
// the OS-backed implementation). A test can substitute an in-memory fake
// satisfying the same two methods.
type TextIO interface {
	ReadAllLines(path, encoding string) ([]string, error)
	Exists(path string) bool
}

// Line is one logical input line after import expansion: its text, where it
// came from, and its position in both that file and the overall sequence.
type Line struct {
	Text     string
	File     string
	LineNo   int // 1-based within File
	Index    int // 0-based global position in the expanded sequence
	FromMain bool
}

// maxImportDepth bounds recursive "import" nesting; exceeding it aborts the
// whole compile rather than looping forever on a self-importing file.
const maxImportDepth = 10

// importEncoding is the fixed encoding imported files are read with,
// regardless of what encoding the top-level input arrived in.
const importEncoding = "ISO-8859-1"

var importRe = regexp.MustCompile(`(?i)^\s*import\s+"([^"]+)"`)

// Preprocessor expands import directives into a flat, origin-tagged
// sequence of Lines. Create one per Compile call — its running global
// index is call-scoped, not shared across compiles.
type Preprocessor struct {
	io          TextIO
	globalIndex int
}

// NewPreprocessor returns a Preprocessor reading imported files through io.
func NewPreprocessor(io TextIO) *Preprocessor {
	return &Preprocessor{io: io}
}

// Expand flattens lines (the raw lines of fileName, located in dir) into
// the ordered sequence of expanded Lines, recursively following import
// directives. The top-level call always has fromMain=true; recursive calls
// for imported files pass fromMain=false so error records downstream can
// distinguish "in the file the caller handed us" from "in something it
// pulled in".
func (p *Preprocessor) Expand(lines []string, fileName, dir string) ([]Line, error) {
	p.globalIndex = 0
	return p.expand(lines, fileName, dir, true, 0)
}

func (p *Preprocessor) expand(lines []string, fileName, dir string, fromMain bool, depth int) ([]Line, error) {
	var out []Line
	for i, raw := range lines {
		localLine := i + 1

		m := importRe.FindStringSubmatch(raw)
		if m == nil {
			out = append(out, Line{
				Text:     raw,
				File:     fileName,
				LineNo:   localLine,
				Index:    p.globalIndex,
				FromMain: fromMain,
			})
			p.globalIndex++
			continue
		}

		if depth+1 > maxImportDepth {
			return nil, fmt.Errorf("%s:%d: maximum import depth (%d) exceeded while importing %q", fileName, localLine, maxImportDepth, m[1])
		}

		rawPath := strings.ReplaceAll(m[1], "\\", string(filepath.Separator))
		resolveDir := dir
		if resolveDir == "" {
			resolveDir = "."
		}
		path := filepath.Join(resolveDir, rawPath)

		if !p.io.Exists(path) {
			out = append(out, Line{
				Text:     fmt.Sprintf("// Import failed (not found): %s", m[1]),
				File:     fileName,
				LineNo:   localLine,
				Index:    p.globalIndex,
				FromMain: fromMain,
			})
			p.globalIndex++
			continue
		}

		subLines, err := p.io.ReadAllLines(path, importEncoding)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: import %q: %v", fileName, localLine, m[1], err)
		}
		expanded, err := p.expand(subLines, path, filepath.Dir(path), false, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
