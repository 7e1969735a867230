package higgins

import (
	"regexp"
	"strings"
)

const backtickPlaceholder = "__{{SELLECK_BACKTICK}}__"

var (
	codeBlockPattern  = regexp.MustCompile("(?m)^[^\\S\\n]*```[^\\S\\n]*(.+?)?$\\s*^([\\s\\S]*?)\\s*^[^\\S\\n]*```[^\\S\\n]*$")
	inlineCodePattern = regexp.MustCompile("`(.+?)`")
	promptPattern     = regexp.MustCompile(`(?m)^([#$][^\S\n]*)`)
	indentPattern     = regexp.MustCompile(`^[^\S\n]+`)
)

// parseCode turns fenced blocks into <pre> elements and inline `spans` into
// <code> elements. Backslash-escaped backticks survive as literal backticks.
func parseCode(src string) string {
	out := strings.ReplaceAll(src, "\\`", backtickPlaceholder)

	out = replaceSubmatches(out, codeBlockPattern.FindAllStringSubmatchIndex(out, -1), func(g []string) string {
		return codeBlock(strings.TrimSpace(g[1]), g[2])
	})

	out = replaceSubmatches(out, inlineCodePattern.FindAllStringSubmatchIndex(out, -1), func(g []string) string {
		return "<code>" + EscapeHTML(g[1]) + "</code>"
	})

	return strings.ReplaceAll(out, backtickPlaceholder, "`")
}

// codeBlock renders one fenced block. The type token selects the classes
// client-side highlighters hook into.
func codeBlock(typ, content string) string {
	classes := []string{"code"}
	content = EscapeHTML(unindent(content))

	switch typ {
	case "", "raw", "nohighlight", "no-highlight":
	case "terminal":
		classes = append(classes, "terminal")
		// Prompts are unselectable so copied commands paste cleanly.
		content = promptPattern.ReplaceAllString(content, `<span class="noselect">${1}</span>`)
	default:
		classes = append(classes, "prettyprint", "lang-"+typ)
	}

	return `<pre class="` + escapeAttr(strings.Join(classes, " ")) + `">` + content + "</pre>\n"
}

// unindent strips the first line's leading whitespace from every line.
func unindent(content string) string {
	indent := indentPattern.FindString(content)
	if indent == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}
	return strings.Join(lines, "\n")
}
