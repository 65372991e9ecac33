package editor

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xdrshjr/AIDocMaster/internal/common"
)

// blockSelector matches the text-bearing block elements imported from an
// uploaded rich-text document.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote"

// ParseHTML builds a document from rich-text HTML. Each block element
// becomes one block node; inline formatting is flattened to its text.
// HTML without block elements degrades to one paragraph of body text.
func ParseHTML(htmlContent string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, common.WrapError(err, "failed to parse document HTML")
	}

	doc := &Document{}
	gq.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Nested blocks (li inside li) are handled by their own match.
		if sel.Children().Is(blockSelector) {
			return
		}
		text := strings.TrimSpace(collapseSpaces(sel.Text()))
		if text == "" {
			return
		}
		doc.Blocks = append(doc.Blocks, Block{
			Tag:   goquery.NodeName(sel),
			Spans: []Span{{Text: text}},
		})
	})

	if len(doc.Blocks) == 0 {
		text := strings.TrimSpace(collapseSpaces(gq.Find("body").Text()))
		if text != "" {
			doc.Blocks = append(doc.Blocks, Block{Tag: "p", Spans: []Span{{Text: text}}})
		}
	}

	return doc, nil
}

// RenderHTML serializes the document back to HTML, emitting marked spans
// as inline span elements carrying data attributes for DOM lookup.
func (d *Document) RenderHTML() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		tag := b.Tag
		if tag == "" {
			tag = "p"
		}
		sb.WriteString("<" + tag + ">")
		for _, s := range b.Spans {
			sb.WriteString(renderSpan(s))
		}
		sb.WriteString("</" + tag + ">\n")
	}
	return sb.String()
}

// renderSpan emits one inline span, wrapping marked text in a span element.
func renderSpan(s Span) string {
	escaped := html.EscapeString(s.Text)
	if len(s.Marks) == 0 {
		return escaped
	}

	var attrs []string
	for _, m := range s.Marks {
		keys := make([]string, 0, len(m.Attrs))
		for k := range m.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := m.Attrs[k]
			if k == "color" {
				attrs = append(attrs, fmt.Sprintf(`style="background-color: %s"`, html.EscapeString(v)))
			} else {
				attrs = append(attrs, fmt.Sprintf(`data-%s="%s"`, k, html.EscapeString(v)))
			}
		}
	}
	return fmt.Sprintf("<span %s>%s</span>", strings.Join(attrs, " "), escaped)
}

// collapseSpaces folds runs of whitespace inside extracted HTML text into
// single spaces, keeping the text comparable across formattings.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
