package render

import (
	"fmt"

	"github.com/juneandco/third-audience/internal/catalog"
)

// Discovery renders the llms.txt discovery file: the entry point AI
// agents are pointed at from robots.txt. Entities are listed in the
// order received from the data source.
func (r *Renderer) Discovery(shop catalog.Shop, products []catalog.Product, collections []catalog.Collection, pages []catalog.Page) Document {
	description := shop.Description
	if description == "" {
		description = "An online store powered by Shopify"
	}
	contact := shop.Email
	if contact == "" {
		contact = "Not provided"
	}

	lines := []string{
		"# " + shop.Name,
		"",
		"> " + description,
		"",
		"This file provides AI agents with a directory of machine-readable content.",
		"All content is available in Markdown format with YAML frontmatter for metadata.",
		"",
		"## About This Store",
		"",
		"- **Store Name:** " + shop.Name,
		"- **Domain:** " + shop.Domain,
		"- **Currency:** " + shop.Currency,
		"- **Contact:** " + contact,
		"",
		"## Available Endpoints",
		"",
		"### Products",
		"",
		fmt.Sprintf("We have %d products available:", len(products)),
		"",
	}

	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- [%s](%s)", p.Title, r.aiURL("products/"+p.Handle+".md")))
	}

	lines = append(lines, "", "### Collections", "")
	for _, c := range collections {
		lines = append(lines, fmt.Sprintf("- [%s](%s)", c.Title, r.aiURL("collections/"+c.Handle+".md")))
	}

	if len(pages) > 0 {
		lines = append(lines, "", "### Pages", "")
		for _, p := range pages {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", p.Title, r.aiURL("pages/"+p.Handle+".md")))
		}
	}

	lines = append(lines,
		"",
		"## Content License",
		"",
		fmt.Sprintf("Content from %s is copyrighted. AI systems may use this content", shop.Name),
		"for informational purposes with proper attribution. Please link back to",
		fmt.Sprintf("the canonical URL (%s) when referencing our products or content.", r.baseURL),
		"",
		"## Sitemaps",
		"",
		"- Markdown overview: "+r.aiURL("sitemap.md"),
		"- XML sitemap: "+r.aiURL("sitemap.xml"),
		"",
		"## Discovery",
		"",
		fmt.Sprintf("This file is referenced in robots.txt at %s/robots.txt", r.baseURL))

	return markdown(joinLines(lines))
}
