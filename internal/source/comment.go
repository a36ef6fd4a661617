package source

import "strings"

// Stripper removes comments from successive lines of one compile, threading
// block-comment state across line boundaries the way a multi-line /* ... */
// spanning several lines must. Create one per pass — pass 1 and pass 2 each
// get their own Stripper so a comment opened in pass 1 can't leak state into
// pass 2's independent scan of the same source.
type Stripper struct {
	inBlock bool
}

// NewStripper returns a Stripper starting outside any block comment.
func NewStripper() *Stripper {
	return &Stripper{}
}

// Strip removes // , # , and /* ... */ comments from line, honouring double-
// quoted string literals (a '#' inside a string is literal text, not a
// comment starter) and block comments that may continue from, or into, an
// adjacent line. The returned text has its surrounding whitespace trimmed.
func (s *Stripper) Strip(line string) string {
	var out strings.Builder
	i := 0
	n := len(line)

	for i < n {
		if s.inBlock {
			idx := strings.Index(line[i:], "*/")
			if idx < 0 {
				i = n
				break
			}
			i += idx + 2
			s.inBlock = false
			continue
		}

		start, isBlock := findComment(line[i:])
		if start < 0 {
			out.WriteString(line[i:])
			i = n
			break
		}
		out.WriteString(line[i : i+start])
		if isBlock {
			s.inBlock = true
			i += start + 2
			continue
		}
		// "//" or a string-respecting "#": the rest of the line is gone.
		i = n
	}

	return strings.TrimSpace(out.String())
}

// findComment scans rest for the earliest comment starter outside a quoted
// string and reports its byte offset and whether it opens a block comment
// (as opposed to a line comment, "//" or "#"). It returns -1 when rest
// contains no comment starter.
func findComment(rest string) (offset int, isBlock bool) {
	inQuote := false
	j := 0
	n := len(rest)
	for j < n {
		c := rest[j]
		if inQuote && c == '\\' && j+1 < n {
			j += 2
			continue
		}
		if c == '"' {
			inQuote = !inQuote
			j++
			continue
		}
		if !inQuote {
			if c == '/' && j+1 < n && rest[j+1] == '*' {
				return j, true
			}
			if c == '/' && j+1 < n && rest[j+1] == '/' {
				return j, false
			}
			if c == '#' {
				return j, false
			}
		}
		j++
	}
	return -1, false
}
