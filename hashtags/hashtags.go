package hashtags

import (
	"fmt"
	"regexp"
)

// tagPattern matches a '#' followed by ASCII word characters. Tags keep the
// marker everywhere in the index.
var tagPattern = regexp.MustCompile(`#\w+`)

// Extract returns every hashtag token in content in order of appearance.
// Duplicates and case are preserved.
func Extract(content string) []string {
	return tagPattern.FindAllString(content, -1)
}

// LinkTags replaces every hashtag token with an anchor to that tag's page.
// The href drops the marker, the link text keeps it; everything else passes
// through unchanged.
func LinkTags(content string) string {
	return tagPattern.ReplaceAllStringFunc(content, func(tag string) string {
		return fmt.Sprintf(`<a href="/hashtags/%s" class="hashtag-links">%s</a>`, tag[1:], tag)
	})
}
