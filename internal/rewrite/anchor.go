package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// Substitution replaces every match of Pattern with the literal Replacement.
type Substitution struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Literal builds a substitution for a literal token.
func Literal(token, replacement string) Substitution {
	return Substitution{
		Pattern:     regexp.MustCompile(regexp.QuoteMeta(token)),
		Replacement: replacement,
	}
}

// LineRule edits the single line matching Anchor.
//
// The anchor may match anywhere in the file. With exactly one matching line
// that line is edited. With several, the line at Hint (1-based) is edited if
// it is one of them; otherwise nothing is edited and a diagnostic is emitted.
// With none, a diagnostic is emitted.
type LineRule struct {
	Anchor *regexp.Regexp
	Hint   int
	Subs   []Substitution
}

// LiteralRule anchors on token and replaces it with replacement.
func LiteralRule(token, replacement string, hint int) LineRule {
	sub := Literal(token, replacement)
	return LineRule{
		Anchor: sub.Pattern,
		Hint:   hint,
		Subs:   []Substitution{sub},
	}
}

// ApplyLineRules runs rules in order against content. Lines are split on
// "\n" and joined back the same way, so "\r\n" endings survive untouched.
func ApplyLineRules(path string, content []byte, rules []LineRule) ([]byte, Result) {
	var res Result
	lines := strings.Split(string(content), "\n")

	for _, rule := range rules {
		idx, diag := locate(lines, rule)
		if diag != "" {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Path:    path,
				Line:    rule.Hint,
				Message: diag,
			})
			continue
		}

		before := lines[idx]
		after := before
		for _, sub := range rule.Subs {
			after = sub.Pattern.ReplaceAllLiteralString(after, sub.Replacement)
		}
		if after == before {
			continue
		}

		lines[idx] = after
		res.Changes = append(res.Changes, Change{
			Path:   path,
			Line:   idx + 1,
			Before: strings.TrimSpace(before),
			After:  strings.TrimSpace(after),
		})
	}

	return []byte(strings.Join(lines, "\n")), res
}

// locate returns the index of the line rule applies to, or a diagnostic.
func locate(lines []string, rule LineRule) (int, string) {
	var matches []int
	for i, line := range lines {
		if rule.Anchor.MatchString(line) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return -1, fmt.Sprintf("pattern %q not found", rule.Anchor.String())
	case 1:
		return matches[0], ""
	}

	for _, i := range matches {
		if i+1 == rule.Hint {
			return i, ""
		}
	}
	return -1, fmt.Sprintf("pattern %q matches %d lines and none is line %d", rule.Anchor.String(), len(matches), rule.Hint)
}
