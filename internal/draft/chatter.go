package draft

import "strings"

// preamblePatterns are lead-ins models put before the message itself.
// Each is matched as a case-insensitive prefix of a leading line.
var preamblePatterns = []string{
	"here is",
	"here's",
	"sure,",
	"sure!",
	"okay,",
	"certainly",
	"of course",
	"commit message:",
	"suggested commit message",
	"the commit message",
	"based on the diff",
	"based on the staged",
	"looking at the diff",
}

// signoffPatterns are trailing offers appended after the message.
var signoffPatterns = []string{
	"let me know",
	"feel free to",
	"hope this helps",
	"would you like",
	"if you need",
	"if you'd like",
}

// StripChatter removes conversational preamble and sign-off lines.
// At most three leading lines are considered.
func StripChatter(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return content
	}

	content = stripPreamble(content)
	content = stripSignoff(content)

	return strings.TrimSpace(content)
}

func stripPreamble(content string) string {
	lines := strings.SplitN(content, "\n", 5)
	stripped := 0

	for stripped < len(lines) && stripped < 3 {
		line := strings.TrimSpace(lines[stripped])
		if line == "" || matchesAnyPrefix(line, preamblePatterns) {
			stripped++
			continue
		}
		break
	}

	if stripped == 0 {
		return content
	}
	return strings.Join(lines[stripped:], "\n")
}

func stripSignoff(content string) string {
	lines := strings.Split(content, "\n")

	end := len(lines)
	for end > 0 {
		line := strings.TrimSpace(lines[end-1])
		if line == "" || matchesAnyPrefix(line, signoffPatterns) {
			end--
			continue
		}
		break
	}

	if end == len(lines) {
		return content
	}
	return strings.Join(lines[:end], "\n")
}

func matchesAnyPrefix(line string, patterns []string) bool {
	lower := strings.ToLower(line)
	for _, p := range patterns {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
