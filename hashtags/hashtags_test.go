package hashtags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	assert.Equal(t, []string{"#World", "#world2"}, Extract("hello #World and #world2!"))
	assert.Empty(t, Extract("no tags here"))
	assert.Equal(t, []string{"#go", "#go"}, Extract("#go and #go again"))
	// '#' alone or followed by punctuation is not a tag
	assert.Empty(t, Extract("# loose marker, #!"))
}

func TestLinkTags(t *testing.T) {
	assert.Equal(t,
		`hello <a href="/hashtags/World" class="hashtag-links">#World</a>!`,
		LinkTags("hello #World!"))
	assert.Equal(t, "untouched text", LinkTags("untouched text"))
	assert.Equal(t,
		`<a href="/hashtags/a" class="hashtag-links">#a</a> <a href="/hashtags/b" class="hashtag-links">#b</a>`,
		LinkTags("#a #b"))
}
