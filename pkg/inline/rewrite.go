// Package inline rewrites a single line of raw markdown into escaped, styled markup.
//
// The rewrite is an ordered cascade of independent pattern replacements:
// escaping first, then code spans, bold+italic, bold, italic and links. Code
// spans are set aside once wrapped, so their content stays literal; every
// other rule sees the output of the rules before it.
package inline

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Rule is one step of the inline cascade.
type Rule struct {
	// Name identifies the rule ("code", "strong-em", "strong", "em", "link").
	Name string

	// Pattern matches the delimited span. Matches are leftmost and non-overlapping.
	Pattern *regexp.Regexp

	// Template is the replacement. It refers to submatches as ${N}.
	Template string

	// AttrGroups lists the submatches that land in attribute values. Their
	// double quotes are written as &quot;.
	AttrGroups []int
}

// htmlEscaper escapes the three characters that can start or break markup.
// Quotes in text are left alone; quotes in link targets are escaped by the
// link rule.
//
//nolint:gochecknoglobals // Read-only replacer.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// rules is the cascade in application order.
//
//nolint:gochecknoglobals // Read-only rule table.
var rules = []Rule{
	{
		Name:     "code",
		Pattern:  regexp.MustCompile("`([^`]+)`"),
		Template: "<code>${1}</code>",
	},
	{
		Name:     "strong-em",
		Pattern:  regexp.MustCompile(`\*\*\*([^*]+)\*\*\*`),
		Template: "<strong><em>${1}</em></strong>",
	},
	{
		Name:     "strong",
		Pattern:  regexp.MustCompile(`\*\*([^*]+)\*\*`),
		Template: "<strong>${1}</strong>",
	},
	{
		Name:     "em",
		Pattern:  regexp.MustCompile(`\*([^*]+)\*`),
		Template: "<em>${1}</em>",
	},
	{
		Name:       "link",
		Pattern:    regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`),
		Template:   `<a href="${2}" target="_blank" rel="noopener noreferrer">${1}</a>`,
		AttrGroups: []int{2},
	},
}

// spanRef matches the placeholders that hold wrapped code spans. Escaped
// text contains no '<', so a placeholder cannot collide with input.
//
//nolint:gochecknoglobals // Read-only pattern.
var spanRef = regexp.MustCompile(`<(\d+)>`)

// Rules returns a copy of the cascade in the order it is applied.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.AttrGroups = slices.Clone(r.AttrGroups)
		out[i] = r
	}
	return out
}

// Apply runs the rule over s.
func (r Rule) Apply(s string) string {
	if len(r.AttrGroups) == 0 {
		return r.Pattern.ReplaceAllString(s, r.Template)
	}

	return r.Pattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := r.Pattern.FindStringSubmatch(match)
		pairs := make([]string, 0, 2*len(sub))
		for i, v := range sub {
			if slices.Contains(r.AttrGroups, i) {
				v = strings.ReplaceAll(v, `"`, "&quot;")
			}
			pairs = append(pairs, "${"+strconv.Itoa(i)+"}", v)
		}
		return strings.NewReplacer(pairs...).Replace(r.Template)
	})
}

// Escape replaces &, < and > with their entities.
// It is not idempotent: "&amp;" becomes "&amp;amp;".
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Rewrite converts one line of raw text into markup-safe text with inline styles applied.
//
// Unterminated or empty delimiters are left as literal text. The cascade is
// not a nested parser; inputs such as "**a*b**c*" produce whatever the
// ordered replacements produce.
func Rewrite(line string) string {
	code := rules[0]

	var spans []string
	out := code.Pattern.ReplaceAllStringFunc(Escape(line), func(match string) string {
		spans = append(spans, code.Apply(match))
		return "<" + strconv.Itoa(len(spans)-1) + ">"
	})

	for _, rule := range rules[1:] {
		out = rule.Apply(out)
	}

	if len(spans) == 0 {
		return out
	}
	return spanRef.ReplaceAllStringFunc(out, func(ref string) string {
		i, err := strconv.Atoi(ref[1 : len(ref)-1])
		if err != nil || i >= len(spans) {
			return ref
		}
		return spans[i]
	})
}
