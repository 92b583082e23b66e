// Package prompt holds template variable handling, the meta-prompts sent
// to the generation provider, and the tolerant parsers for its replies.
package prompt

import "regexp"

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// ExtractVariables returns the {name} placeholders of a template body in
// order of first appearance, deduplicated.
func ExtractVariables(body string) []string {
	seen := make(map[string]struct{})
	var vars []string
	for _, m := range placeholderRe.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		vars = append(vars, name)
	}
	return vars
}

// Render substitutes values into the template. Placeholders without a
// value stay verbatim and are reported in missing, in order of first
// appearance.
func Render(body string, values map[string]string) (rendered string, missing []string) {
	seen := make(map[string]struct{})
	rendered = placeholderRe.ReplaceAllStringFunc(body, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := values[name]; ok {
			return v
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			missing = append(missing, name)
		}
		return m
	})
	return rendered, missing
}
