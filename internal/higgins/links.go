package higgins

import "regexp"

var wikiLinkPattern = regexp.MustCompile(`(\\)?(\[\[#(.+?)(?:\|(.+?))?\]\])`)

// parseLinks resolves [[#heading]] and [[#heading|label]] to in-page anchors.
// A leading backslash keeps the link text literal.
func parseLinks(src string) string {
	return replaceSubmatches(src, wikiLinkPattern.FindAllStringSubmatchIndex(src, -1), func(g []string) string {
		if g[1] != "" {
			return g[2]
		}

		label := g[4]
		if label == "" {
			label = g[3]
		}
		return `<a href="#` + EscapeHTML(Slug(g[3])) + `">` + label + `</a>`
	})
}
