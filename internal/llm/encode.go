package llm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// EnsureUTF8 returns s as valid UTF-8. Each invalid line is first decoded
// as EUC-KR (CP949); if that does not yield clean text, the offending bytes
// are replaced with U+FFFD. Valid lines pass through untouched.
func EnsureUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		if utf8.ValidString(line) {
			continue
		}
		lines[i] = recoverLine(line)
	}
	return strings.Join(lines, "")
}

// recoverLine relies on EUC-KR having no mapping for U+FFFD: the decoder
// only emits it for an invalid sequence.
func recoverLine(line string) string {
	decoded, err := korean.EUCKR.NewDecoder().String(line)
	if err == nil && !strings.ContainsRune(decoded, utf8.RuneError) {
		return decoded
	}
	return strings.ToValidUTF8(line, string(utf8.RuneError))
}
