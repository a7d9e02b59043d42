// internal/render/render.go

// Package render fills page templates. A template is plain text holding
// tokens of the literal form "{{ NAME }}"; there are no loops, conditionals
// or escaping rules.
package render

import (
	"regexp"
	"sort"
	"strings"
)

// Context maps placeholder names to their values. Names are matched after
// upper-casing, so "title" fills "{{ TITLE }}".
type Context map[string]string

// Token returns the placeholder spelling for name.
func Token(name string) string {
	return "{{ " + strings.ToUpper(name) + " }}"
}

// Render replaces every occurrence of each context key's token with its
// value. Each key is substituted in one pass over the template and values are
// never expanded again. Tokens without a context entry are left as they are.
func Render(tmpl string, ctx Context) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		tmpl = strings.ReplaceAll(tmpl, Token(k), ctx[k])
	}
	return tmpl
}

var tokenPattern = regexp.MustCompile(`\{\{ ([A-Z0-9_]+) \}\}`)

// Tokens lists the distinct placeholder names in tmpl, in order of first
// appearance.
func Tokens(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range tokenPattern.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Unfilled returns the placeholders in tmpl that ctx has no value for.
func Unfilled(tmpl string, ctx Context) []string {
	var missing []string
	for _, name := range Tokens(tmpl) {
		found := false
		for k := range ctx {
			if strings.ToUpper(k) == name {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return missing
}
