package pipeline

import (
	"regexp"
	"strings"

	"studybuddy/internal/domain"
)

var (
	sourcePrefix = regexp.MustCompile(`^(?:export\s+)?(?:async\s+function\b|function\b|def\s+\w+\s*\(|func\b|(?:const|let|var)\s+\w+\s*=\s*(?:async\s*)?(?:\([^)]*\)|\w+)\s*=>)`)
	generateSig  = regexp.MustCompile(`\b(?:function|def|func)\s+generate\w*\s*\(|\b(?:const|let|var)\s+generate\w*\s*=\s*(?:async\s*)?\(`)
	returnObject = regexp.MustCompile(`\breturn\s*\(?\s*\{`)

	questionsAssign = regexp.MustCompile(`\bquestions\s*(?::\s*[\w\[\]<>, ]+)?=\s*\[`)
	topicsAssign    = regexp.MustCompile(`\btopics\s*(?::\s*[\w\[\]<>, ]+)?=\s*\[`)
	areasAssign     = regexp.MustCompile(`\b(?:improvementAreas|improvement_areas)\s*(?::\s*[\w\[\]<>, ]+)?=\s*\[`)

	identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*`)
)

// foreignKeywords maps literal spellings of other languages to JSON.
var foreignKeywords = map[string]string{
	"True":      "true",
	"False":     "false",
	"None":      "null",
	"undefined": "null",
}

// LooksLikeSource reports whether text is function-definition source rather than data.
// It expects fence-stripped text; object isolation would cut the signature away.
// A generate-named signature only counts outside double-quoted strings.
func LooksLikeSource(text string) bool {
	trimmed := strings.TrimSpace(text)
	if sourcePrefix.MatchString(trimmed) {
		return true
	}
	for _, loc := range generateSig.FindAllStringIndex(trimmed, -1) {
		if !insideString(trimmed, loc[0]) {
			return true
		}
	}
	return false
}

// Extract pulls the embedded data literal out of function-definition source and
// translates it to JSON syntax. The result is not validated.
func Extract(source string) (string, error) {
	literal, ok := extractReturnLiteral(source)
	if !ok {
		literal, ok = extractAssignments(source)
	}
	if !ok {
		return "", domain.NewExtractionFailedError(nil)
	}
	return translateKeywords(translateQuotes(literal)), nil
}

// extractReturnLiteral captures the object literal of the first `return {` statement.
func extractReturnLiteral(source string) (string, bool) {
	loc := returnObject.FindStringIndex(source)
	if loc == nil {
		return "", false
	}
	start := loc[1] - 1
	if end, ok := matchClosing(source, start, '{', '}'); ok {
		return source[start : end+1], true
	}
	end := strings.LastIndex(source, "}")
	if end <= start {
		return "", false
	}
	return source[start : end+1], true
}

// extractAssignments recombines separate array assignments into one object literal.
func extractAssignments(source string) (string, bool) {
	questions, ok := assignedArray(source, questionsAssign)
	if !ok {
		return "", false
	}
	topics, ok := assignedArray(source, topicsAssign)
	if !ok {
		topics = "[]"
	}
	areas, ok := assignedArray(source, areasAssign)
	if !ok {
		areas = "[]"
	}
	var b strings.Builder
	b.WriteString(`{"questions": `)
	b.WriteString(questions)
	b.WriteString(`, "topics": `)
	b.WriteString(topics)
	b.WriteString(`, "improvementAreas": `)
	b.WriteString(areas)
	b.WriteString("}")
	return b.String(), true
}

func assignedArray(source string, assign *regexp.Regexp) (string, bool) {
	loc := assign.FindStringIndex(source)
	if loc == nil {
		return "", false
	}
	start := loc[1] - 1
	end, ok := matchClosing(source, start, '[', ']')
	if !ok {
		return "", false
	}
	return source[start : end+1], true
}

// matchClosing finds the delimiter closing the one at start. It first scans
// respecting both quote styles; if that never balances (typically an unterminated
// string), it rescans counting delimiters only.
func matchClosing(s string, start int, open, close byte) (int, bool) {
	if end, ok := scanBalanced(s, start, open, close, true); ok {
		return end, true
	}
	return scanBalanced(s, start, open, close, false)
}

func scanBalanced(s string, start int, open, close byte, quoted bool) (int, bool) {
	depth := 0
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			if quoted {
				quote = c
			}
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// translateQuotes rewrites single-quoted strings as double-quoted ones.
func translateQuotes(literal string) string {
	var b strings.Builder
	b.Grow(len(literal))
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		switch c {
		case '"':
			end := skipString(literal, i, '"')
			b.WriteString(literal[i:end])
			i = end - 1
		case '\'':
			b.WriteByte('"')
			j := i + 1
			for ; j < len(literal) && literal[j] != '\''; j++ {
				switch {
				case literal[j] == '\\' && j+1 < len(literal) && literal[j+1] == '\'':
					b.WriteByte('\'')
					j++
				case literal[j] == '\\' && j+1 < len(literal):
					b.WriteString(literal[j : j+2])
					j++
				case literal[j] == '"':
					b.WriteString(`\"`)
				default:
					b.WriteByte(literal[j])
				}
			}
			if j < len(literal) {
				b.WriteByte('"')
			}
			i = j
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// translateKeywords replaces foreign boolean/null spellings outside strings.
func translateKeywords(literal string) string {
	var b strings.Builder
	b.Grow(len(literal))
	for i := 0; i < len(literal); {
		c := literal[i]
		if c == '"' {
			end := skipString(literal, i, '"')
			b.WriteString(literal[i:end])
			i = end
			continue
		}
		if isIdentStart(c) && (i == 0 || !isIdentPart(literal[i-1])) {
			word := identifier.FindString(literal[i:])
			if repl, ok := foreignKeywords[word]; ok {
				b.WriteString(repl)
			} else {
				b.WriteString(word)
			}
			i += len(word)
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// skipString returns the index just past the string starting at s[start].
// An unterminated string runs to the end of s.
func skipString(s string, start int, quote byte) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(s)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
