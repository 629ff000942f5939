// Package rules implements recal's event-rule engine: parsing rule lines,
// resolving date-rule patterns to concrete dates, and expanding rules
// across a span of years.
package rules

import (
	"strings"
	"unicode"

	"github.com/igorp74/recal/internal/model"
)

// ParseLine parses one line of the events file:
//
//	RULE[;[ [category,fg,bg,emoji] ]DESCRIPTION]
//
// The returned bool is false for blank lines and '#' comments. Parsing
// never fails: malformed metadata degrades to a best-effort description
// with no metadata.
func ParseLine(line string) (model.Rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return model.Rule{}, false
	}

	left, rest, hasMeta := strings.Cut(line, ";")
	rule := model.Rule{Text: strings.TrimSpace(left)}

	if !hasMeta {
		// Lenient fallback for lines without a semicolon: everything
		// after the first whitespace run doubles as the description.
		if i := strings.IndexFunc(rule.Text, unicode.IsSpace); i >= 0 {
			rule.Description = strings.TrimSpace(rule.Text[i:])
		}
		return rule, true
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "[") {
		if end := strings.IndexByte(rest, ']'); end >= 0 {
			fields := strings.Split(rest[1:end], ",")
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			// [category, fg, bg, emoji]; the emoji slot is accepted
			// but unused. Empty fields stay unset.
			if len(fields) > 0 {
				rule.Category = fields[0]
			}
			if len(fields) > 1 {
				rule.FgColor = fields[1]
			}
			if len(fields) > 2 {
				rule.BgColor = fields[2]
			}
			rule.Description = strings.TrimSpace(rest[end+1:])
			return rule, true
		}
		// '[' without a matching ']': keep the whole text as description.
	}
	rule.Description = rest
	return rule, true
}

// ParseLines parses a whole events file, skipping blanks and comments.
func ParseLines(lines []string) []model.Rule {
	out := make([]model.Rule, 0, len(lines))
	for _, line := range lines {
		if r, ok := ParseLine(line); ok {
			out = append(out, r)
		}
	}
	return out
}
