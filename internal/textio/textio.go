// Package textio is the thin text-I/O collaborator described in the core
// compiler's external interfaces: read a file as a string using a named
// character encoding, write a string using a named encoding, report
// existence. Everything above this package — the import preprocessor, the
// CLI — depends only on the narrow interface it implements, never on os
// directly, grounded on the teacher's own seam-through-an-interface pattern
// (file_io.go's FileIODevice sits between the VM bus and the real
// filesystem the same way OSTextIO sits between the compiler and disk).
package textio

import (
	"fmt"
	"os"
	"strings"
)

// Supported encoding names, matched case-insensitively.
const (
	ISO88591    = "ISO-8859-1"
	Windows1252 = "Windows-1252"
)

// OSTextIO implements source.TextIO (and the CLI's own read/write needs)
// directly over the host filesystem.
type OSTextIO struct{}

// New returns an OS-backed text I/O collaborator.
func New() OSTextIO { return OSTextIO{} }

// Exists reports whether path names a file or directory on disk.
func (OSTextIO) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadAllLines reads path and splits it into lines, decoding its bytes with
// the named encoding. Trailing "\r" from CRLF line endings is stripped so
// imported Windows-authored sources behave the same as Unix ones.
func (OSTextIO) ReadAllLines(path, encoding string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data, encoding)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

// WriteString writes s to path, encoding it with the named encoding.
func (OSTextIO) WriteString(path, s, encoding string) error {
	data, err := Encode(s, encoding)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Decode converts raw bytes into a string per the named single-byte
// encoding. ISO-8859-1 and Windows-1252 agree everywhere except the 0x80-
// 0x9F range, where cp1252 assigns printable characters (smart quotes,
// the euro sign, etc.) to codepoints ISO-8859-1 treats as C1 controls.
func Decode(data []byte, encoding string) (string, error) {
	switch normalize(encoding) {
	case normalize(ISO88591), "":
		return decodeLatin1(data), nil
	case normalize(Windows1252):
		return decodeCP1252(data), nil
	default:
		return "", fmt.Errorf("textio: unsupported encoding %q", encoding)
	}
}

// Encode converts s back into raw bytes per the named single-byte
// encoding. A rune outside the encoding's representable range is an error.
func Encode(s string, encoding string) ([]byte, error) {
	switch normalize(encoding) {
	case normalize(ISO88591), "":
		return encodeLatin1(s)
	case normalize(Windows1252):
		return encodeCP1252(s)
	default:
		return nil, fmt.Errorf("textio: unsupported encoding %q", encoding)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// decodeLatin1 exploits the fact that ISO-8859-1 is the identity mapping
// from byte value to Unicode codepoint for 0x00-0xFF.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

func encodeLatin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("textio: rune %U not representable in ISO-8859-1", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// cp1252HighRange holds the Windows-1252 interpretation of bytes 0x80-0x9F;
// ISO-8859-1 treats the same bytes as the C1 control codes 0x80-0x9F.
var cp1252HighRange = [0x20]rune{
	0x20AC, 0x0081, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x008D, 0x017D, 0x008F,
	0x0090, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x009D, 0x017E, 0x0178,
}

func decodeCP1252(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		if b >= 0x80 && b <= 0x9F {
			runes[i] = cp1252HighRange[b-0x80]
		} else {
			runes[i] = rune(b)
		}
	}
	return string(runes)
}

func encodeCP1252(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r <= 0xFF && !(r >= 0x80 && r <= 0x9F) {
			out = append(out, byte(r))
			continue
		}
		found := false
		for i, cr := range cp1252HighRange {
			if cr == r {
				out = append(out, byte(0x80+i))
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("textio: rune %U not representable in Windows-1252", r)
		}
	}
	return out, nil
}
