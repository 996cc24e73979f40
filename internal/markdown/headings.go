package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading represents a markdown heading.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"` // 1-based line number
}

// ExtractHeadings extracts all ATX and setext headings from markdown content.
func ExtractHeadings(content []byte) []Heading {
	return headingsFrom(goldmark.New(), content)
}

func headingsFrom(md goldmark.Markdown, content []byte) []Heading {
	doc := md.Parser().Parse(text.NewReader(content))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		txt := strings.TrimSpace(inlineText(h, content))
		if txt == "" || h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		start := h.Lines().At(0).Start
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  txt,
			Line:  bytes.Count(content[:start], []byte("\n")) + 1,
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// inlineText flattens the text children of n.
func inlineText(n ast.Node, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		case *ast.AutoLink:
			buf.Write(v.Label(source))
		default:
			buf.WriteString(inlineText(c, source))
		}
	}
	return buf.String()
}

// Title returns the text of the first level-1 heading, or "".
func Title(headings []Heading) string {
	for _, h := range headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}
