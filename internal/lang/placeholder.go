package lang

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Template spans like {amount}, {{date}} or <name> must survive
// translation untouched. Protect swaps them for @@PHn@@ tokens before
// the text goes to the model; Restore puts them back afterwards.
var placeholderRE = regexp.MustCompile(`(\{\{[^{}]*\}\}|\{[^{}]*\}|<[^<>]*>)`)

func Protect(text string) (string, map[string]string) {
	mapping := make(map[string]string)
	protected := placeholderRE.ReplaceAllStringFunc(text, func(m string) string {
		key := fmt.Sprintf("@@PH%d@@", len(mapping))
		mapping[key] = m
		return key
	})
	return protected, mapping
}

// Restore replaces tokens longest-first so @@PH10@@ never collides with
// @@PH1@@.
func Restore(text string, mapping map[string]string) string {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		text = strings.ReplaceAll(text, k, mapping[k])
	}
	return text
}
