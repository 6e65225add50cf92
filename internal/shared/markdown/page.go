// Package markdown renders markdown pages into standalone, styled HTML documents.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed styles/*.css
var styles embed.FS

// Style selects the page stylesheet.
type Style string

const (
	Air     Style = "air"
	Classic Style = "classic"
)

// HeadMargin is the body top margin when the page sits under a header.
const HeadMargin = 75

var (
	commitRef  = regexp.MustCompile(`\(([a-zA-Z0-9]{7})\)`)
	emptyParen = regexp.MustCompile(`\(\)`)
	hexColor   = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

// Options controls page generation.
type Options struct {
	Style      Style
	Links      bool
	Head       bool
	Background string // hex color, with or without '#'
}

// DefaultOptions returns air style with links kept.
func DefaultOptions() Options {
	return Options{Style: Air, Links: true}
}

// ParseStyle returns the style named s, defaulting to Air.
func ParseStyle(s string) Style {
	if Style(strings.ToLower(strings.TrimSpace(s))) == Classic {
		return Classic
	}
	return Air
}

// Renderer converts markdown to sanitized HTML pages. Safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with GitHub flavored markdown.
func NewRenderer() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

var defaultRenderer = NewRenderer()

// GenerateWebPage renders markdown with the default renderer.
func GenerateWebPage(markdown string, opts Options) (string, error) {
	return defaultRenderer.Render(markdown, opts)
}

// Render turns markdown into a full HTML document.
func (r *Renderer) Render(markdown string, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	body := r.policy.Sanitize(buf.String())

	if !opts.Links {
		stripped, err := stripLinks(body)
		if err != nil {
			return "", err
		}
		body = stripped
	}

	style := opts.Style
	if style != Classic {
		style = Air
	}
	css, err := styles.ReadFile("styles/" + string(style) + ".css")
	if err != nil {
		return "", fmt.Errorf("failed to load style %s: %w", style, err)
	}

	margin := 0
	if opts.Head {
		margin = HeadMargin
	}

	var out strings.Builder
	out.WriteString("<html>\n<head>\n")
	out.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	fmt.Fprintf(&out, "<style>%s</style>\n", strings.TrimSpace(string(css)))
	out.WriteString("</head>\n")
	fmt.Fprintf(&out, `<body style="margin-top:%dpx;%spadding:20px;" class="%s">`, margin, background(opts.Background), style)
	out.WriteString(body)
	out.WriteString("</body>\n</html>\n")
	return out.String(), nil
}

// stripLinks unwraps anchors to their content and drops commit references.
func stripLinks(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		inner, err := s.Html()
		if err != nil {
			inner = s.Text()
		}
		s.ReplaceWithHtml(inner)
	})

	html, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	html = commitRef.ReplaceAllString(html, "")
	return emptyParen.ReplaceAllString(html, ""), nil
}

func background(color string) string {
	if !hexColor.MatchString(color) {
		return ""
	}
	return "background:#" + strings.TrimPrefix(color, "#") + ";"
}
