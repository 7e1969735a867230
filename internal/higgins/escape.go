package higgins

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	"`", "&#x60;",
)

// EscapeHTML escapes & < > " ' / and ` as HTML entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")

// escapeAttr makes s safe inside a double-quoted attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// replaceSubmatches is regexp.ReplaceAllStringFunc with access to groups.
// Groups that did not participate in the match are passed as "".
func replaceSubmatches(src string, locs [][]int, fn func(groups []string) string) string {
	if len(locs) == 0 {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = src[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(src[last:loc[0]])
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String()
}
