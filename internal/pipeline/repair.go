package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"studybuddy/internal/domain"
)

// repairRule is one targeted correction for a known defect shape.
type repairRule struct {
	name    string
	pattern *regexp.Regexp
	replace string
	// outsideStrings restricts matches to positions outside string literals.
	outsideStrings bool
}

func (r repairRule) apply(text string) string {
	if !r.outsideStrings {
		return r.pattern.ReplaceAllString(text, r.replace)
	}
	matches := r.pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if insideString(text, m[0]) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.Write(r.pattern.ExpandString(nil, r.replace, text, m))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// repairRules run in order, cumulatively, each followed by a strict parse.
var repairRules = []repairRule{
	{
		name:    "close_last_array_element",
		pattern: regexp.MustCompile(`(\[\s*"[^"]*"\s*,\s*"[^"]*"\s*,\s*"[^"]*"\s*,\s*"[^"\[\]{},]*)(\s*\])`),
		replace: `${1}"${2}`,
	},
	{
		name:    "open_first_array_element",
		pattern: regexp.MustCompile(`\[(\s*)([^"\s\[\]{},][^"\[\]{},]*)"(\s*,\s*"[^"]*"\s*,\s*"[^"]*"\s*,\s*"[^"]*"\s*\])`),
		replace: `[${1}"${2}"${3}`,
	},
	{
		name:           "close_adjacent_token",
		pattern:        regexp.MustCompile(`"([^"\s\[\]{}:,][^"\[\]{}:,]*),\s*"([^"\[\]{}:,]+)"`),
		replace:        `"${1}", "${2}"`,
		outsideStrings: true,
	},
	{
		name:           "quote_bare_keys",
		pattern:        regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`),
		replace:        `${1}"${2}":`,
		outsideStrings: true,
	},
	{
		name:    "comma_between_strings",
		pattern: regexp.MustCompile(`([^\s:\[{,])"(\s+)"`),
		replace: `${1}",${2}"`,
	},
	{
		name:           "comma_between_objects",
		pattern:        regexp.MustCompile(`\}(\s*)\{`),
		replace:        `},${1}{`,
		outsideStrings: true,
	},
	{
		name:           "drop_trailing_commas",
		pattern:        regexp.MustCompile(`,(\s*[}\]])`),
		replace:        `${1}`,
		outsideStrings: true,
	},
}

// unterminatedBeforeBracket is applied once after the rule list is exhausted.
var unterminatedBeforeBracket = repairRule{
	name:    "close_string_before_bracket",
	pattern: regexp.MustCompile(`(,\s*"[^"\[\]{},:]*[^"\s\[\]{},:])(\s*\])`),
	replace: `${1}"${2}`,
}

// RepairResult is repaired text together with the names of the rules that changed it.
type RepairResult struct {
	Text    string
	Applied []string
}

// Repair returns text unchanged when it already parses. Otherwise it applies the
// repair rules in order and returns the first variant that parses.
func Repair(text string) (RepairResult, error) {
	if Valid(text) {
		return RepairResult{Text: text}, nil
	}

	current := text
	var applied []string
	for _, rule := range repairRules {
		next := rule.apply(current)
		if next == current {
			continue
		}
		current = next
		applied = append(applied, rule.name)
		if Valid(current) {
			return RepairResult{Text: current, Applied: applied}, nil
		}
	}

	if next := unterminatedBeforeBracket.apply(current); next != current {
		applied = append(applied, unterminatedBeforeBracket.name)
		if Valid(next) {
			return RepairResult{Text: next, Applied: applied}, nil
		}
	}

	return RepairResult{}, domain.NewSyntaxRepairFailedError(
		fmt.Errorf("no repair produced valid data (applied: %s)", strings.Join(applied, ", ")))
}

// insideString reports whether pos falls inside a double-quoted string literal.
func insideString(text string, pos int) bool {
	in := false
	for i := 0; i < pos && i < len(text); i++ {
		switch text[i] {
		case '\\':
			if in {
				i++
			}
		case '"':
			in = !in
		}
	}
	return in
}
