package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/juneandco/third-audience/internal/catalog"
	"github.com/juneandco/third-audience/internal/errors"
	"github.com/juneandco/third-audience/internal/frontmatter"
)

// SitemapMarkdown renders the human-and-agent-readable site overview:
// collections with a one-line description, products grouped by product
// type, then pages. The generated_at stamp is the one intentionally
// non-deterministic field in the whole document set.
func (r *Renderer) SitemapMarkdown(shop catalog.Shop, products []catalog.Product, collections []catalog.Collection, pages []catalog.Page) (Document, error) {
	fm := frontmatter.New().
		Set("type", "sitemap").
		Set("store_name", shop.Name).
		Set("generated_at", r.now().UTC().Format(time.RFC3339)).
		Set("total_products", len(products)).
		Set("total_collections", len(collections)).
		Set("total_pages", len(pages))

	lines := []string{
		fm.Encode(),
		"",
		fmt.Sprintf("# %s - Site Structure", shop.Name),
		"",
		fmt.Sprintf("This document provides an overview of all content available on %s.", shop.Name),
		"",
		"## Collections",
		"",
	}

	for _, c := range collections {
		lines = append(lines, fmt.Sprintf("### [%s](%s)", c.Title, r.aiURL("collections/"+c.Handle+".md")))
		if c.BodyHTML != "" {
			body, err := r.html.Convert(c.BodyHTML)
			if err != nil {
				return Document{}, errors.Render(err, "collection description")
			}
			if desc, _, _ := strings.Cut(body, "\n"); desc != "" {
				lines = append(lines, "> "+desc)
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## All Products", "")

	// Group by product type, preserving first-seen group order.
	byType := map[string][]catalog.Product{}
	var typeOrder []string
	for _, p := range products {
		t := p.ProductType
		if t == "" {
			t = "Other"
		}
		if _, seen := byType[t]; !seen {
			typeOrder = append(typeOrder, t)
		}
		byType[t] = append(byType[t], p)
	}

	for _, t := range typeOrder {
		lines = append(lines, "### "+t, "")
		for _, p := range byType[t] {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", p.Title, r.aiURL("products/"+p.Handle+".md")))
		}
		lines = append(lines, "")
	}

	if len(pages) > 0 {
		lines = append(lines, "## Information Pages", "")
		for _, p := range pages {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", p.Title, r.aiURL("pages/"+p.Handle+".md")))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"---",
		"",
		fmt.Sprintf("*Generated for AI agents. Visit [%s](%s) for the full shopping experience.*", r.baseURL, r.baseURL))

	return markdown(joinLines(lines)), nil
}
