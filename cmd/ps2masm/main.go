// Command ps2masm compiles a PS2 Emotion Engine assembly source file into a
// raw PS2 "address hex" listing or a PCSX2 pnach patch listing. Grounded on
// the teacher's cmd/ie32to64 CLI shape (stdlib flag, a custom flag.Usage,
// errors printed to stderr with a non-zero exit) and its terminal_host.go
// use of golang.org/x/term to tell an interactive terminal from a redirected
// pipe.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/eeasm/ps2masm/internal/compiler"
	"github.com/eeasm/ps2masm/internal/output"
	"github.com/eeasm/ps2masm/internal/textio"
)

func main() {
	mode := flag.String("mode", "ps2", "output mode: ps2 or pnach")
	format := flag.String("format", "-", "address format character, or \"-\" for no override")
	outPath := flag.String("o", "", "output file (default: stdout)")
	base := flag.String("base", "$00000000", "starting address, used only when the source sets no address before its first instruction")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ps2masm [options] input.asm\n\nCompiles a PS2 Emotion Engine assembly source file.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	outputMode, err := parseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	io := textio.New()
	rawLines, err := io.ReadAllLines(inputPath, textio.Windows1252)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	// Only inject the -base line when the source doesn't set its own
	// starting address: prepending it unconditionally would push every
	// real line in the file one line later than its true position in
	// every diagnostic.
	injected := !compiler.LeadingAddressDirective(rawLines)
	inputLines := rawLines
	if injected {
		inputLines = append([]string{"address " + *base}, rawLines...)
	}

	driver := compiler.NewDriver(io)
	result := driver.Compile(inputLines, inputPath, outputMode, *format)
	if injected {
		undoInjectedLineShift(&result)
	}

	if err := writeOutput(*outPath, result.Output); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}

	if len(result.Diagnostics) > 0 {
		reportDiagnostics(os.Stderr, result.Diagnostics)
	}
	if !result.Success {
		fmt.Fprintln(os.Stderr, "*** Compilation failed ***")
		os.Exit(1)
	}
}

// undoInjectedLineShift corrects for the synthetic "-base" line this CLI
// prepends to the top-level input: every main-file line number the driver
// reports is one greater than the user's real line, so shift them back.
// The synthetic line itself (line 1) is left alone; it can't come from the
// user's file.
func undoInjectedLineShift(result *compiler.Result) {
	for i := range result.Diagnostics {
		if result.Diagnostics[i].FromMain && result.Diagnostics[i].Line > 1 {
			result.Diagnostics[i].Line--
		}
	}
	for i := range result.MainFileErrorLines {
		if result.MainFileErrorLines[i] > 1 {
			result.MainFileErrorLines[i]--
		}
	}
}

func parseMode(s string) (output.Mode, error) {
	switch strings.ToLower(s) {
	case "ps2":
		return output.PS2, nil
	case "pnach":
		return output.PNACH, nil
	default:
		return 0, fmt.Errorf("unknown -mode %q, expected ps2 or pnach", s)
	}
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := fmt.Println(text)
		return err
	}
	return textio.New().WriteString(path, text, textio.ISO88591)
}

// reportDiagnostics prints one line per diagnostic. A real terminal gets a
// blank separator before the list; a redirected pipe does not, so piped
// output stays easy to grep.
func reportDiagnostics(w *os.File, diags []compiler.Diagnostic) {
	if term.IsTerminal(int(w.Fd())) {
		fmt.Fprintln(w)
	}
	for _, d := range diags {
		fmt.Fprintln(w, d.String())
	}
}
