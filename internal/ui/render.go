package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfassina/folio/internal/catalog"
	"github.com/pfassina/folio/internal/markdown"
)

// RenderArticle writes a terminal summary of a parsed article: its
// front matter, series navigation, references and outline.
func RenderArticle(w io.Writer, a *markdown.Article) error {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(a.Title) + "\n")
	b.WriteString(SubtitleStyle.Render(a.Path) + "\n\n")

	meta := a.Metadata
	if meta == nil {
		b.WriteString(DimText.Render("no metadata") + "\n")
	} else {
		field(&b, "date", meta.Date)
		field(&b, "author", meta.Author)
		field(&b, "category", meta.Category)
		field(&b, "reading time", meta.ReadingTime)
		field(&b, "summary", meta.Summary)
		list(&b, "tags", meta.Tags)
		list(&b, "topics", meta.Topics)
		list(&b, "series", meta.Series)

		if nav := meta.Navigation(); nav.Series != nil || !nav.Empty() {
			b.WriteString("\n")
			field(&b, "in series", nav.Series)
			field(&b, "prev", nav.Prev)
			field(&b, "next", nav.Next)
		}

		if meta.ShowReferences && len(meta.References) > 0 {
			b.WriteString("\n" + LabelStyle.Render("References") + "\n")
			for _, ref := range meta.References {
				fmt.Fprintf(&b, "  %s %s\n", ref.Title, DimText.Render(ref.URL))
				if ref.Description != nil {
					b.WriteString("    " + SubtitleStyle.Render(*ref.Description) + "\n")
				}
			}
		}
	}

	if len(a.Headings) > 0 {
		b.WriteString("\n" + LabelStyle.Render("Outline") + "\n")
		for _, h := range a.Headings {
			indent := strings.Repeat("  ", h.Level)
			fmt.Fprintf(&b, "%s%s %s\n", indent, h.Text, DimText.Render(fmt.Sprintf(":%d", h.Line)))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSeries writes a series overview with its numbered articles.
func RenderSeries(w io.Writer, s catalog.Series) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", TitleStyle.Render(s.Name), DimText.Render(fmt.Sprintf("(%d articles)", s.Total())))
	if s.ShortSummary != nil {
		b.WriteString(SubtitleStyle.Render(*s.ShortSummary) + "\n")
	}
	if s.LongSummary != nil && *s.LongSummary != "" {
		b.WriteString("\n" + *s.LongSummary + "\n")
	}
	b.WriteString("\n")
	for i, a := range s.Articles {
		fmt.Fprintf(&b, "%3d. %s %s\n", i+1, SelectedItem.Render(a.Title), DimText.Render(a.Path))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Warn formats a non-fatal problem for the terminal.
func Warn(msg string) string {
	return WarnText.Render(msg)
}

func field(b *strings.Builder, label string, value *string) {
	if value == nil {
		return
	}
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render(label+":"), *value)
}

func list(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	tags := make([]string, len(values))
	for i, v := range values {
		tags[i] = TagStyle.Render(v)
	}
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render(label+":"), strings.Join(tags, ", "))
}
