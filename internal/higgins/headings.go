package higgins

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rgrove/selleck/internal/doctree"
	"golang.org/x/net/html"
)

var (
	headingOpenPattern = regexp.MustCompile(`(?i)<h([2-6])(\s[^>]*)?>`)
	noTOCPattern       = regexp.MustCompile(`(?:^|\s)no-toc(?:\s|$)`)

	// Indexed by heading level.
	headingClosePatterns = [7]*regexp.Regexp{
		2: regexp.MustCompile(`(?i)</h2>`),
		3: regexp.MustCompile(`(?i)</h3>`),
		4: regexp.MustCompile(`(?i)</h4>`),
		5: regexp.MustCompile(`(?i)</h5>`),
		6: regexp.MustCompile(`(?i)</h6>`),
	}
)

// parseHeadings anchors every h2-h6 element and adds it to tree. Level-1
// headings are page titles and are left alone, as are headings carrying a
// no-toc class and headings with no content.
func parseHeadings(src string, tree *doctree.Tree) string {
	var b strings.Builder
	b.Grow(len(src))

	pos := 0
	for pos < len(src) {
		loc := headingOpenPattern.FindStringSubmatchIndex(src[pos:])
		if loc == nil {
			break
		}
		start, openEnd := pos+loc[0], pos+loc[1]
		level := int(src[pos+loc[2]] - '0')

		closeLoc := headingClosePatterns[level].FindStringIndex(src[openEnd:])
		if closeLoc == nil || closeLoc[0] == 0 {
			b.WriteString(src[pos:openEnd])
			pos = openEnd
			continue
		}
		inner := src[openEnd : openEnd+closeLoc[0]]
		end := openEnd + closeLoc[1]

		var rawAttrs string
		if loc[4] >= 0 {
			rawAttrs = src[pos+loc[4] : pos+loc[5]]
		}

		b.WriteString(src[pos:start])
		attrs := parseAttrs(rawAttrs)
		if hasNoTOC(attrs) {
			b.WriteString(src[start:end])
		} else {
			b.WriteString(addHeading(tree, level, inner, attrs))
		}
		pos = end
	}
	b.WriteString(src[pos:])

	return b.String()
}

// addHeading registers a heading in tree and returns its rewritten element.
func addHeading(tree *doctree.Tree, level int, inner string, attrs []html.Attribute) string {
	var name string
	rest := make([]html.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == "id" {
			if name == "" {
				name = a.Val
			}
			continue
		}
		rest = append(rest, a)
	}
	if name == "" {
		name = uniqueName(inner, tree)
	}

	tree.Add(level, inner, name)

	tag := "h" + strconv.Itoa(level)
	var b strings.Builder
	b.WriteString("<" + tag + ` id="` + escapeAttr(name) + `"`)
	for _, a := range rest {
		b.WriteString(" " + a.Key + `="` + escapeAttr(a.Val) + `"`)
	}
	b.WriteString(">" + inner + "</" + tag + ">")
	return b.String()
}

// parseAttrs tokenizes the attribute text of an opening heading tag.
func parseAttrs(raw string) []html.Attribute {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	z := html.NewTokenizer(strings.NewReader("<h2" + raw + ">"))
	if z.Next() != html.StartTagToken {
		return nil
	}
	return z.Token().Attr
}

func hasNoTOC(attrs []html.Attribute) bool {
	for _, a := range attrs {
		if a.Key == "class" && noTOCPattern.MatchString(a.Val) {
			return true
		}
	}
	return false
}

// tocList renders the children of the node at idx as nested lists.
func tocList(tree *doctree.Tree, idx int) string {
	var b strings.Builder
	b.WriteString(`<ul class="toc">`)

	for _, c := range tree.Children(idx) {
		n := tree.Node(c)
		b.WriteString("\n<li>\n")
		b.WriteString(`<a href="#` + escapeAttr(n.Name) + `">` + n.HTML + `</a>`)
		if len(n.Children) > 0 {
			b.WriteString("\n" + tocList(tree, c))
		}
		b.WriteString("\n</li>")
	}

	b.WriteString("\n</ul>")
	return b.String()
}
