// Package htmlmd converts upstream rich-text HTML into clean Markdown.
//
// The store's rich-text editor leaves empty <p> elements behind, so the
// HTML tree is cleaned before conversion. Output uses ATX headings,
// fenced code blocks and "-" bullets.
package htmlmd

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Converter turns HTML fragments into Markdown. The zero value is not
// usable; construct with New. Safe for concurrent use.
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// Convert converts an HTML fragment to Markdown. Empty input yields an
// empty string. The result is trimmed of leading and trailing
// whitespace.
func (c *Converter) Convert(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	cleaned, err := stripEmptyParagraphs(src)
	if err != nil {
		return "", fmt.Errorf("cleaning html: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("converting html to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// stripEmptyParagraphs removes <p> elements whose rendered text is empty
// or whitespace-only, then re-serializes the tree.
func stripEmptyParagraphs(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", err
	}

	removeEmptyParagraphs(doc)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func removeEmptyParagraphs(n *html.Node) {
	var next *html.Node
	for child := n.FirstChild; child != nil; child = next {
		next = child.NextSibling
		if child.Type == html.ElementNode && child.DataAtom == atom.P && !hasText(child) {
			n.RemoveChild(child)
			continue
		}
		removeEmptyParagraphs(child)
	}
}

// hasText reports whether any descendant text node carries non-blank
// characters. Non-breaking spaces count as blank.
func hasText(n *html.Node) bool {
	if n.Type == html.TextNode {
		trimmed := strings.TrimFunc(n.Data, func(r rune) bool {
			return r == ' ' || r == '\u00a0' || r == '\t' || r == '\n' || r == '\r'
		})
		if trimmed != "" {
			return true
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if hasText(child) {
			return true
		}
	}
	return false
}
