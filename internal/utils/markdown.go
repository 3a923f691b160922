package utils

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// excerptPolicy is safe for concurrent use once built.
var excerptPolicy = newExcerptPolicy()

func newExcerptPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderMarkdown converts an excerpt written in markdown to sanitized HTML.
// Raw HTML is skipped, links with unsafe schemes lose their href and the
// result goes through a UGC sanitizer before it is trusted by html/template.
func RenderMarkdown(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(text))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.SkipHTML | html.Safelink | html.HrefTargetBlank | html.NofollowLinks,
	})

	return strings.TrimSpace(excerptPolicy.Sanitize(string(markdown.Render(doc, renderer))))
}

// StripMarkdown removes markdown formatting and returns plain text
func StripMarkdown(text string) string {
	if text == "" {
		return ""
	}

	doc := markdown.Parse([]byte(text), nil)

	var buf bytes.Buffer
	collectText(doc, &buf)

	result := strings.TrimSpace(buf.String())
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return result
}

// Excerpt returns plain text truncated to maxRunes, with an ellipsis when cut
func Excerpt(text string, maxRunes int) string {
	plain := StripMarkdown(text)
	r := []rune(plain)
	if maxRunes <= 0 || len(r) <= maxRunes {
		return plain
	}
	return strings.TrimSpace(string(r[:maxRunes])) + "…"
}

func collectText(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Literal)
		return
	case *ast.Code:
		buf.Write(n.Literal)
		return
	case *ast.CodeBlock:
		buf.Write(n.Literal)
		return
	case *ast.Hardbreak:
		buf.WriteString("\n")
		return
	case *ast.Softbreak:
		buf.WriteString(" ")
		return
	case *ast.HTMLBlock, *ast.HTMLSpan:
		return
	}

	container := node.AsContainer()
	if container == nil {
		return
	}

	for _, child := range container.Children {
		collectText(child, buf)
	}

	switch node.(type) {
	case *ast.Paragraph, *ast.Heading:
		buf.WriteString("\n\n")
	case *ast.List, *ast.BlockQuote:
		buf.WriteString("\n")
	}
}
