package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

const snippetMaxLength = 200

type Result struct {
	HTML    string
	Snippet string
}

// Renderer converts post content written in markdown to HTML.
type Renderer interface {
	Render(source string) (Result, error)
}

type rendererImpl struct {
	md goldmark.Markdown
}

func New() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &rendererImpl{md: md}
}

func (r *rendererImpl) Render(source string) (Result, error) {
	src := []byte(source)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return Result{}, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return Result{
		HTML:    buf.String(),
		Snippet: snippet(doc, src),
	}, nil
}

// snippet returns the plain text of the first paragraph, cut on a word boundary.
func snippet(doc ast.Node, src []byte) string {
	var sb strings.Builder

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() != ast.KindParagraph {
			continue
		}

		_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}

			if t, ok := child.(*ast.Text); ok {
				sb.Write(t.Segment.Value(src))

				if t.SoftLineBreak() || t.HardLineBreak() {
					sb.WriteByte(' ')
				}
			}

			return ast.WalkContinue, nil
		})

		break
	}

	result := strings.TrimSpace(sb.String())
	if utf8.RuneCountInString(result) <= snippetMaxLength {
		return result
	}

	result = string([]rune(result)[:snippetMaxLength])
	if lastSpace := strings.LastIndexAny(result, " \t"); lastSpace > 0 {
		result = result[:lastSpace]
	}

	return result + "..."
}
