package pipeline

import (
	"regexp"
	"strings"
)

var (
	thinkBlock   = regexp.MustCompile(`(?s)<think>.*?</think>`)
	openingFence = regexp.MustCompile("^```[A-Za-z0-9_+.-]*[ \t]*\r?\n?")
	closingFence = regexp.MustCompile("\r?\n?[ \t]*```[ \t]*$")
)

// StripFences removes reasoning blocks and a leading/trailing code fence, including a
// language hint on the opening fence.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimSpace(thinkBlock.ReplaceAllString(text, ""))
	text = openingFence.ReplaceAllString(text, "")
	text = closingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// IsolateObject returns the span from the first '{' to the last '}' inclusive, or the
// trimmed text when there is no such span.
func IsolateObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return text[start : end+1]
}

// Sanitize strips formatting wrappers and isolates the object-shaped candidate.
func Sanitize(raw string) string {
	return IsolateObject(StripFences(raw))
}
