package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWebPage(t *testing.T) {
	page, err := GenerateWebPage("# Hello\n\nSome *text*.", DefaultOptions())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<html>"))
	assert.Contains(t, page, "<h1")
	assert.Contains(t, page, "Hello</h1>")
	assert.Contains(t, page, "<em>text</em>")
	assert.Contains(t, page, `class="air"`)
	assert.Contains(t, page, ".air{font-size:12px}")
	assert.Contains(t, page, "margin-top:0px;")
	assert.NotContains(t, page, "background:#")
}

func TestGenerateWebPageOptions(t *testing.T) {
	page, err := GenerateWebPage("text", Options{Style: Classic, Head: true, Links: true, Background: "1a2B3c"})
	require.NoError(t, err)

	assert.Contains(t, page, `class="classic"`)
	assert.Contains(t, page, "margin-top:75px;")
	assert.Contains(t, page, "background:#1a2B3c;")
}

func TestGenerateWebPageRejectsBadBackground(t *testing.T) {
	page, err := GenerateWebPage("text", Options{Background: `red;"><script>`})
	require.NoError(t, err)
	assert.Contains(t, page, `<body style="margin-top:0px;padding:20px;"`)
	assert.NotContains(t, page, "background:#")
	assert.NotContains(t, page, "red;")
	assert.NotContains(t, page, "<script>")
}

func TestGenerateWebPageSanitizes(t *testing.T) {
	page, err := GenerateWebPage("hi <script>alert(1)</script> <img src=x onerror=alert(1)>", DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, page, "<script>")
	assert.NotContains(t, page, "onerror")
}

func TestGenerateWebPageStripsLinks(t *testing.T) {
	md := "- fix login [see](https://github.com/x/y) (a1b2c3d)\n- empty ()\n- keep (longer words)\n"

	kept, err := GenerateWebPage(md, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, kept, `href="https://github.com/x/y"`)
	assert.Contains(t, kept, "(a1b2c3d)")

	stripped, err := GenerateWebPage(md, Options{Style: Air, Links: false})
	require.NoError(t, err)
	assert.NotContains(t, stripped, "<a ")
	assert.NotContains(t, stripped, "href=")
	assert.Contains(t, stripped, "see")
	assert.NotContains(t, stripped, "(a1b2c3d)")
	assert.NotContains(t, stripped, "()")
	assert.Contains(t, stripped, "(longer words)")
}

func TestParseStyle(t *testing.T) {
	assert.Equal(t, Classic, ParseStyle(" Classic "))
	assert.Equal(t, Air, ParseStyle("air"))
	assert.Equal(t, Air, ParseStyle("unknown"))
}
