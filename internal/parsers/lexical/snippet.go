package lexical

import "strings"

// Snippet returns up to n lines of text starting at the 1-based line.
// Lines before the first are clamped to it; a line past the end yields "".
func Snippet(text string, line, n int) string {
	lines := strings.Split(text, "\n")
	start := max(line-1, 0)
	if start >= len(lines) || n <= 0 {
		return ""
	}
	end := min(start+n, len(lines))
	return strings.Join(lines[start:end], "\n")
}
