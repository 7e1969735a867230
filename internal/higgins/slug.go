package higgins

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rgrove/selleck/internal/doctree"
)

var (
	tagPattern        = regexp.MustCompile(`<[\s\S]+?>`)
	entityPattern     = regexp.MustCompile(`&[^\s;]+;?`)
	nonSlugPattern    = regexp.MustCompile(`[^\s\w\-]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Slug derives an anchor name from heading HTML without checking whether the
// name is already in use. Links are resolved with it so they match the name
// minted for the first heading with the same text.
func Slug(text string) string {
	s := strings.ToLower(text)
	s = tagPattern.ReplaceAllString(s, "")
	s = entityPattern.ReplaceAllString(s, "")
	s = nonSlugPattern.ReplaceAllString(s, "")
	return whitespacePattern.ReplaceAllString(s, "-")
}

// uniqueName returns Slug(text), suffixed with 2, 3, ... until it is not yet
// taken in tree.
func uniqueName(text string, tree *doctree.Tree) string {
	base := Slug(text)
	name := base
	for n := 2; tree.Taken(name); n++ {
		name = base + strconv.Itoa(n)
	}
	return name
}
