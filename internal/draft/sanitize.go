package draft

import "strings"

// Sanitize cleans raw model output:
//   - CRLF and CR line endings become LF
//   - surrounding whitespace is trimmed
//   - a leading fence line (``` or ~~~, optionally with a language tag) is
//     dropped, together with a bare closing fence on the last line
//   - one layer of matching outer quotes (" or ') is removed
//
// The steps repeat until the text stops changing, so Sanitize is
// idempotent. An empty result means the output held no message.
func Sanitize(raw string) string {
	s := raw
	for {
		next := sanitizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func sanitizeOnce(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSpace(s)

	s = strings.TrimSpace(stripFence(s))
	s = strings.TrimSpace(stripQuotes(s))
	return s
}

// stripFence removes an opening fence line and, if present, the closing one.
func stripFence(s string) string {
	lines := strings.Split(s, "\n")
	if !isFenceOpen(lines[0]) {
		return s
	}

	lines = lines[1:]
	if n := len(lines); n > 0 && isFenceClose(lines[n-1]) {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '"' && first != '\'') {
		return s
	}
	return s[1 : len(s)-1]
}

// fenceRun reports the fence character and run length at the start of line,
// or 0 when the line does not start with three backticks or tildes.
func fenceRun(line string) (byte, int) {
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return 0, 0
	}
	c := line[0]
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0
	}
	return c, n
}

// isFenceOpen matches a fence optionally followed by a single language tag.
func isFenceOpen(line string) bool {
	line = strings.TrimSpace(line)
	c, n := fenceRun(line)
	if n == 0 {
		return false
	}
	tag := strings.TrimSpace(line[n:])
	return !strings.ContainsAny(tag, " \t") && !strings.ContainsRune(tag, rune(c))
}

func isFenceClose(line string) bool {
	line = strings.TrimSpace(line)
	_, n := fenceRun(line)
	return n > 0 && n == len(line)
}
